package log

import (
	"fmt"
	"sync"

	"gopkg.in/Sirupsen/logrus.v0"
)

const maxFields = 16

// EntryZ builds a log line without allocating until it's emitted. A nil
// *EntryZ is a disabled line: every method is a no-op on it, so call sites
// chain freely whatever the module mask.
type EntryZ struct {
	mod Module
	lvl Level
	msg string

	fields [maxFields]field
	n      int
}

var entryPool = sync.Pool{
	New: func() any { return new(EntryZ) },
}

func newEntryZ(mod Module, lvl Level, msg string) *EntryZ {
	z := entryPool.Get().(*EntryZ)
	z.mod, z.lvl, z.msg = mod, lvl, msg
	z.n = 0
	return z
}

// Fields past maxFields are dropped.
func (z *EntryZ) add(f field) *EntryZ {
	if z == nil {
		return nil
	}
	if z.n < len(z.fields) {
		z.fields[z.n] = f
		z.n++
	}
	return z
}

func (z *EntryZ) Bool(key string, b bool) *EntryZ {
	f := field{key: key, kind: kindBool}
	if b {
		f.num = 1
	}
	return z.add(f)
}

func (z *EntryZ) String(key, s string) *EntryZ {
	return z.add(field{key: key, kind: kindString, str: s})
}

func (z *EntryZ) Hex8(key string, v uint8) *EntryZ {
	return z.add(field{key: key, kind: kindHex8, num: int64(v)})
}

func (z *EntryZ) Hex16(key string, v uint16) *EntryZ {
	return z.add(field{key: key, kind: kindHex16, num: int64(v)})
}

func (z *EntryZ) Int(key string, v int) *EntryZ {
	return z.add(field{key: key, kind: kindInt, num: int64(v)})
}

func (z *EntryZ) Int64(key string, v int64) *EntryZ {
	return z.add(field{key: key, kind: kindInt, num: v})
}

func (z *EntryZ) Error(key string, err error) *EntryZ {
	f := field{key: key, kind: kindError}
	if err != nil {
		f.val = err
	}
	return z.add(f)
}

func (z *EntryZ) Stringer(key string, s fmt.Stringer) *EntryZ {
	return z.add(field{key: key, kind: kindStringer, val: s})
}

// End decorates the line with the registered contexts, emits it through
// logrus and recycles the entry.
func (z *EntryZ) End() {
	if z == nil {
		return
	}

	for _, c := range contexts {
		c.AddLogContext(z)
	}

	fields := make(logrus.Fields, z.n+1)
	fields["_mod"] = z.mod.String()
	for i := range z.fields[:z.n] {
		fields[z.fields[i].key] = z.fields[i].format()
	}

	entry := logrus.StandardLogger().WithFields(fields)
	switch z.lvl {
	case DebugLevel:
		entry.Debug(z.msg)
	case InfoLevel:
		entry.Info(z.msg)
	case WarnLevel:
		entry.Warn(z.msg)
	default:
		entry.Error(z.msg)
	}

	z.fields = [maxFields]field{}
	entryPool.Put(z)
}

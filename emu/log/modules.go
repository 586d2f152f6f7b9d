package log

import "strings"

type ModuleMask uint64
type Module uint

const (
	ModuleMaskAll  ModuleMask = 0xFFFFFFFFFFFFFFFF
	ModuleMaskNone ModuleMask = 0
)

// Standard modules. Subsystems needing finer grained control register their
// own through NewModule.
const (
	ModEmu Module = iota + 1
	ModCPU
	ModMem
	ModHwIo

	endStandardMods
)

var modCount = endStandardMods

var modDebugMask ModuleMask = 0

var modNames = []string{
	"<error>", "emu", "cpu", "mem", "hwio",
}

// NewModule must be called at init time.
func NewModule(name string) Module {
	mod := modCount
	modCount++
	modNames = append(modNames, name)
	return mod
}

func ModuleByName(name string) (Module, bool) {
	for idx, s := range modNames {
		if idx != 0 && s == name {
			return Module(idx), true
		}
	}
	return Module(0xFFFFFFFF), false
}

// ModuleNames returns the names of all registered modules, sorted by
// registration order.
func ModuleNames() []string {
	return append([]string(nil), modNames[1:]...)
}

// ParseModuleMask converts a comma separated list of module names into a
// mask. "all" and "no" are accepted as special values.
func ParseModuleMask(s string) (ModuleMask, bool) {
	var mask ModuleMask
	for _, name := range strings.Split(s, ",") {
		switch name = strings.TrimSpace(name); name {
		case "":
		case "all":
			mask = ModuleMaskAll
		case "no":
			mask = ModuleMaskNone
		default:
			mod, ok := ModuleByName(name)
			if !ok {
				return 0, false
			}
			mask |= mod.Mask()
		}
	}
	return mask, true
}

func EnableDebugModules(mask ModuleMask) {
	modDebugMask |= mask
}

func DisableDebugModules(mask ModuleMask) {
	modDebugMask &^= mask
}

func (mod Module) String() string {
	if int(mod) < len(modNames) {
		return modNames[mod]
	}
	return "<invalid>"
}

func (mod Module) Mask() ModuleMask {
	return 1 << ModuleMask(mod)
}

// Enabled reports whether a line at the given level would be emitted. Warnings
// and more severe levels are always enabled.
func (mod Module) Enabled(level Level) bool {
	return level <= WarnLevel || modDebugMask&mod.Mask() != 0
}

func (mod Module) logz(lvl Level, msg string) *EntryZ {
	if !mod.Enabled(lvl) {
		return nil
	}
	return newEntryZ(mod, lvl, msg)
}

func (mod Module) DebugZ(msg string) *EntryZ { return mod.logz(DebugLevel, msg) }
func (mod Module) InfoZ(msg string) *EntryZ  { return mod.logz(InfoLevel, msg) }
func (mod Module) WarnZ(msg string) *EntryZ  { return mod.logz(WarnLevel, msg) }
func (mod Module) ErrorZ(msg string) *EntryZ { return mod.logz(ErrorLevel, msg) }

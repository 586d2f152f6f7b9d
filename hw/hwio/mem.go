package hwio

import (
	"famicore/emu/log"
)

// mem is the BankIO8 adaptor for linear memory, built from a Mem by BankIO8.
type mem struct {
	name string
	buf  []byte
	mask uint16
	wcb  func(uint16, uint8)
	ro   MemFlags
}

func newMem(name string, buf []byte, wcb func(uint16, uint8), roflag MemFlags) *mem {
	if len(buf) == 0 || len(buf)&(len(buf)-1) != 0 {
		panic("memory buffer size is not pow2")
	}
	return &mem{
		name: name,
		buf:  buf,
		mask: uint16(len(buf) - 1),
		wcb:  wcb,
		ro:   roflag,
	}
}

func (m *mem) FetchPointer(addr uint16) []uint8 {
	return m.buf[addr&m.mask:]
}

func (m *mem) Read8(addr uint16) uint8 {
	return m.buf[addr&m.mask]
}

func (m *mem) Peek8(addr uint16) uint8 {
	return m.buf[addr&m.mask]
}

func (m *mem) Write8(addr uint16, val uint8) {
	if m.wcb != nil {
		m.wcb(addr, val)
		return
	}

	switch {
	case m.ro&MemFlagNoROLog != 0:
		return
	case m.ro&MemFlag8ReadOnly != 0:
		log.ModHwIo.ErrorZ("Write8 to readonly memory").
			String("area", m.name).
			Hex8("val", val).
			Hex16("addr", addr).
			End()
	default:
		m.buf[addr&m.mask] = val
	}
}

type MemFlags int

const (
	MemFlagReadWrite MemFlags = 0
	MemFlag8ReadOnly MemFlags = (1 << iota) // read-only accesses
	MemFlagNoROLog                          // silently drop writes to read-only memory
)

// Mem is a linear memory area that can be mapped into a Table.
//
// Mem does not implement BankIO8 directly: BankIO8 creates an adaptor that
// bakes the flags in, so that the access path doesn't inspect them.
type Mem struct {
	Name    string              // name of the memory area (for debugging)
	Data    []byte              // actual memory buffer, len must be a power of 2
	VSize   int                 // mapped size, mirrors Data when bigger
	Flags   MemFlags            // access flags
	WriteCb func(uint16, uint8) // if set, called instead of writing
}

func (m *Mem) BankIO8() BankIO8 {
	return newMem(m.Name, m.Data, m.WriteCb, m.Flags)
}

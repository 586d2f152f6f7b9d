package hwio

import (
	"fmt"

	"famicore/emu/log"
)

// BankIO8 is implemented by everything that can be mapped into a Table.
type BankIO8 interface {
	Read8(addr uint16) uint8
	// Peek8 reads a byte without side effects (tracing, disassembly).
	Peek8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// Bus8 is the minimal byte-wide bus capability.
type Bus8 interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

func Read16(b Bus8, addr uint16) uint16 {
	lo := b.Read8(addr)
	hi := b.Read8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func Write16(b Bus8, addr uint16, val uint16) {
	b.Write8(addr, uint8(val))
	b.Write8(addr+1, uint8(val>>8))
}

// Inc8 increments the byte at addr and returns the new value.
func Inc8(b Bus8, addr uint16) uint8 {
	v := b.Read8(addr) + 1
	b.Write8(addr, v)
	return v
}

// Dec8 decrements the byte at addr and returns the new value.
func Dec8(b Bus8, addr uint16) uint8 {
	v := b.Read8(addr) - 1
	b.Write8(addr, v)
	return v
}

type page [256]BankIO8

// Table dispatches bus accesses to the devices mapped into a 16-bit address
// space. Lookup is two-level: a page index, then a per-address slot.
//
// Reads from unmapped addresses return 0, writes to them are dropped.
type Table struct {
	Name string

	pages [256]*page
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

func (t *Table) Reset() {
	t.pages = [256]*page{}
}

func (t *Table) mapBus8(begin, end uint16, io BankIO8) {
	for a := uint32(begin); a <= uint32(end); a++ {
		p := t.pages[a>>8]
		if p == nil {
			p = new(page)
			t.pages[a>>8] = p
		}
		p[a&0xFF] = io
	}
}

func (t *Table) MapReg8(addr uint16, io *Reg8) {
	t.mapBus8(addr, addr, io)
}

// MapMem maps mem at addr, mirroring its buffer over VSize bytes. Memory is
// indexed by the low bits of the bus address, so addr must be aligned on the
// buffer size.
func (t *Table) MapMem(addr uint16, mem *Mem) {
	if n := len(mem.Data); n == 0 || int(addr)%n != 0 {
		panic(fmt.Sprintf("hwio: %s: $%04X not aligned on buffer size %#x", mem.Name, addr, n))
	}
	log.ModHwIo.DebugZ("mapping mem").
		Hex16("addr", addr).
		Hex16("size", uint16(mem.VSize)).
		String("area", mem.Name).
		String("bus", t.Name).
		End()

	t.mapBus8(addr, addr+uint16(mem.VSize-1), mem.BankIO8())
}

func (t *Table) search(addr uint16) BankIO8 {
	if p := t.pages[addr>>8]; p != nil {
		return p[addr&0xFF]
	}
	return nil
}

// Read8 forwards the read to the device mapped at addr.
func (t *Table) Read8(addr uint16) uint8 {
	if io := t.search(addr); io != nil {
		return io.Read8(addr)
	}
	return 0
}

// Peek8 is like Read8 but never triggers device side effects.
func (t *Table) Peek8(addr uint16) uint8 {
	if io := t.search(addr); io != nil {
		return io.Peek8(addr)
	}
	return 0
}

func (t *Table) Write8(addr uint16, val uint8) {
	if io := t.search(addr); io != nil {
		io.Write8(addr, val)
	}
}

// FetchPointer returns the memory slice backing addr, up to the end of the
// underlying buffer, or nil if addr is not backed by linear memory.
func (t *Table) FetchPointer(addr uint16) []uint8 {
	if m, ok := t.search(addr).(*mem); ok {
		return m.FetchPointer(addr)
	}
	return nil
}

package hwio

import (
	"fmt"

	"famicore/emu/log"
)

// RWFlags restricts the accesses a register accepts.
type RWFlags uint8

const (
	ReadWriteFlag RWFlags = 0
	ReadOnlyFlag  RWFlags = (1 << iota)
	WriteOnlyFlag
)

// rejected logs an access refused by a register's flags. Programs routinely
// read back write-only registers, so it's a debug line.
func rejected(msg, name string, addr uint16) {
	log.ModHwIo.DebugZ(msg).
		String("reg", name).
		Hex16("addr", addr).
		End()
}

// Reg8 is an 8-bit memory-mapped register. Bits set in RoMask are driven by
// the hardware and keep their value on CPU writes.
//
// ReadCb sees the current value and returns the byte put on the bus. PeekCb
// does the same for side-effect free accesses; without it, Peek8 returns
// Value, write-only registers included.
type Reg8 struct {
	Name   string
	Value  uint8
	RoMask uint8
	Flags  RWFlags

	ReadCb  func(val uint8) uint8
	PeekCb  func(val uint8) uint8
	WriteCb func(old, val uint8)
}

func (reg Reg8) String() string {
	return fmt.Sprintf("%s=%02X", reg.Name, reg.Value)
}

func (reg *Reg8) Bit(n uint) bool { return GetBit8(reg.Value, n) }
func (reg *Reg8) SetBit(n uint)   { SetBit8(&reg.Value, n) }
func (reg *Reg8) ClearBit(n uint) { ClearBit8(&reg.Value, n) }

func (reg *Reg8) Read8(addr uint16) uint8 {
	switch {
	case reg.Flags&WriteOnlyFlag != 0:
		rejected("Read8 from write-only register", reg.Name, addr)
		return 0
	case reg.ReadCb != nil:
		return reg.ReadCb(reg.Value)
	}
	return reg.Value
}

func (reg *Reg8) Peek8(addr uint16) uint8 {
	if reg.PeekCb != nil {
		return reg.PeekCb(reg.Value)
	}
	return reg.Value
}

// Write8 stores val, RoMask bits excepted, then calls WriteCb with the
// previous and the new value.
func (reg *Reg8) Write8(addr uint16, val uint8) {
	if reg.Flags&ReadOnlyFlag != 0 {
		rejected("Write8 to read-only register", reg.Name, addr)
		return
	}
	old := reg.Value
	reg.Value = old&reg.RoMask | val&^reg.RoMask
	if reg.WriteCb != nil {
		reg.WriteCb(old, reg.Value)
	}
}

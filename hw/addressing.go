package hw

//go:generate go tool stringer -type=Mode,Penalty,State -linecomment -output=enums_string.go

// Mode is an addressing mode.
type Mode uint8

const (
	Implied         Mode = iota // imp
	Accumulator                 // acc
	Immediate                   // imm
	ZeroPage                    // zpg
	ZeroPageX                   // zpx
	ZeroPageY                   // zpy
	Absolute                    // abs
	AbsoluteX                   // abx
	AbsoluteY                   // aby
	IndexedIndirect             // izx
	IndirectIndexed             // izy
	Indirect                    // ind
	Relative                    // rel
)

// Size returns the length in bytes of an instruction using this mode.
func (m Mode) Size() uint8 {
	switch m {
	case Implied, Accumulator:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	}
	return 2
}

// operand is the result of addressing mode resolution.
type operand struct {
	mode Mode
	addr uint16 // effective address, or branch/jump target
	imm  uint8  // immediate value
}

func pageCrossed(a, b uint16) bool {
	return a&0xFF00 != b&0xFF00
}

// zpRead16 reads a little-endian pointer from the zero page, the high byte
// wrapping to $00 when the low byte is at $FF.
func (c *CPU) zpRead16(zp uint8) uint16 {
	lo := c.Read8(uint16(zp))
	hi := c.Read8(uint16(zp + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// resolve computes the operand of an instruction whose operand bytes start
// at pc. Indexed modes that cross a page set c.crossed.
func (c *CPU) resolve(mode Mode, pc uint16) operand {
	oper := operand{mode: mode}

	switch mode {
	case Implied, Accumulator:
	case Immediate:
		oper.imm = c.Read8(pc)
	case ZeroPage:
		oper.addr = uint16(c.Read8(pc))
	case ZeroPageX:
		oper.addr = uint16(c.Read8(pc) + c.X)
	case ZeroPageY:
		oper.addr = uint16(c.Read8(pc) + c.Y)
	case Absolute:
		oper.addr = c.Read16(pc)
	case AbsoluteX:
		base := c.Read16(pc)
		oper.addr = base + uint16(c.X)
		c.crossed = pageCrossed(base, oper.addr)
	case AbsoluteY:
		base := c.Read16(pc)
		oper.addr = base + uint16(c.Y)
		c.crossed = pageCrossed(base, oper.addr)
	case IndexedIndirect:
		oper.addr = c.zpRead16(c.Read8(pc) + c.X)
	case IndirectIndexed:
		base := c.zpRead16(c.Read8(pc))
		oper.addr = base + uint16(c.Y)
		c.crossed = pageCrossed(base, oper.addr)
	case Indirect:
		// The pointer's high byte is fetched without carrying into the page
		// number: JMP ($10FF) reads $10FF and $1000.
		ptr := c.Read16(pc)
		lo := c.Read8(ptr)
		hi := c.Read8(ptr&0xFF00 | uint16(uint8(ptr)+1))
		oper.addr = uint16(hi)<<8 | uint16(lo)
	case Relative:
		off := int8(c.Read8(pc))
		oper.addr = pc + 1 + uint16(off)
	}
	return oper
}

// load returns the value designated by the operand.
func (c *CPU) load(oper operand) uint8 {
	switch oper.mode {
	case Immediate:
		return oper.imm
	case Accumulator:
		return c.A
	}
	return c.Read8(oper.addr)
}

// store writes val to the location designated by the operand.
func (c *CPU) store(oper operand, val uint8) {
	if oper.mode == Accumulator {
		c.A = val
		return
	}
	c.Write8(oper.addr, val)
}

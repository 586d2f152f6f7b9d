package hw

// opfunc is the semantics of an operation. The same function serves every
// addressing mode variant of an opcode; the dispatcher has already set PC to
// the next instruction when it runs.
type opfunc func(c *CPU, oper operand)

// loads and stores

func lda(c *CPU, oper operand) { c.A = c.load(oper); c.setNZ(c.A) }
func ldx(c *CPU, oper operand) { c.X = c.load(oper); c.setNZ(c.X) }
func ldy(c *CPU, oper operand) { c.Y = c.load(oper); c.setNZ(c.Y) }
func sta(c *CPU, oper operand) { c.store(oper, c.A) }
func stx(c *CPU, oper operand) { c.store(oper, c.X) }
func sty(c *CPU, oper operand) { c.store(oper, c.Y) }

// transfers

func tax(c *CPU, _ operand) { c.X = c.A; c.setNZ(c.X) }
func tay(c *CPU, _ operand) { c.Y = c.A; c.setNZ(c.Y) }
func txa(c *CPU, _ operand) { c.A = c.X; c.setNZ(c.A) }
func tya(c *CPU, _ operand) { c.A = c.Y; c.setNZ(c.A) }
func tsx(c *CPU, _ operand) { c.X = c.SP; c.setNZ(c.X) }
func txs(c *CPU, _ operand) { c.SP = c.X }

// stack

func pha(c *CPU, _ operand) { c.push8(c.A) }
func php(c *CPU, _ operand) { c.pushFlags() }
func pla(c *CPU, _ operand) { c.A = c.pull8(); c.setNZ(c.A) }
func plp(c *CPU, _ operand) { c.pullFlags() }

// logic

func and(c *CPU, oper operand) { c.A &= c.load(oper); c.setNZ(c.A) }
func ora(c *CPU, oper operand) { c.A |= c.load(oper); c.setNZ(c.A) }
func eor(c *CPU, oper operand) { c.A ^= c.load(oper); c.setNZ(c.A) }

func bit(c *CPU, oper operand) {
	val := c.load(oper)
	c.P.Z = c.A&val == 0
	c.P.V = val&0x40 != 0
	c.P.N = val&0x80 != 0
}

// arithmetic

// addWithCarry adds val and the carry to A. Carry comes from the widened
// unsigned sum, overflow from comparing the widened signed sum with its
// truncation to 8 bits.
func (c *CPU) addWithCarry(val uint8) {
	carry := b2u8(c.P.C)
	usum := uint16(c.A) + uint16(val) + uint16(carry)
	ssum := int16(int8(c.A)) + int16(int8(val)) + int16(carry)
	res := uint8(usum)

	c.P.C = usum > 0xFF
	c.P.V = ssum != int16(int8(res))
	c.A = res
	c.setNZ(res)
}

// subWithBorrow subtracts val and the borrow (inverted carry) from A.
func (c *CPU) subWithBorrow(val uint8) {
	borrow := 1 - b2u8(c.P.C)
	udiff := int16(c.A) - int16(val) - int16(borrow)
	sdiff := int16(int8(c.A)) - int16(int8(val)) - int16(borrow)
	res := uint8(udiff)

	c.P.C = udiff >= 0
	c.P.V = sdiff != int16(int8(res))
	c.A = res
	c.setNZ(res)
}

func adc(c *CPU, oper operand) { c.addWithCarry(c.load(oper)) }
func sbc(c *CPU, oper operand) { c.subWithBorrow(c.load(oper)) }

func (c *CPU) compare(reg, val uint8) {
	c.P.C = reg >= val
	c.setNZ(reg - val)
}

func cpa(c *CPU, oper operand) { c.compare(c.A, c.load(oper)) }
func cpx(c *CPU, oper operand) { c.compare(c.X, c.load(oper)) }
func cpy(c *CPU, oper operand) { c.compare(c.Y, c.load(oper)) }

// increments and decrements

func inc(c *CPU, oper operand) {
	val := c.load(oper) + 1
	c.store(oper, val)
	c.setNZ(val)
}

func dec(c *CPU, oper operand) {
	val := c.load(oper) - 1
	c.store(oper, val)
	c.setNZ(val)
}

func inx(c *CPU, _ operand) { c.X++; c.setNZ(c.X) }
func iny(c *CPU, _ operand) { c.Y++; c.setNZ(c.Y) }
func dex(c *CPU, _ operand) { c.X--; c.setNZ(c.X) }
func dey(c *CPU, _ operand) { c.Y--; c.setNZ(c.Y) }

// shifts and rotates, on memory or on the accumulator

func asl(c *CPU, oper operand) {
	val := c.load(oper)
	c.P.C = val&0x80 != 0
	val <<= 1
	c.store(oper, val)
	c.setNZ(val)
}

func lsr(c *CPU, oper operand) {
	val := c.load(oper)
	c.P.C = val&0x01 != 0
	val >>= 1
	c.store(oper, val)
	c.setNZ(val)
}

func rol(c *CPU, oper operand) {
	val := c.load(oper)
	carry := b2u8(c.P.C)
	c.P.C = val&0x80 != 0
	val = val<<1 | carry
	c.store(oper, val)
	c.setNZ(val)
}

func ror(c *CPU, oper operand) {
	val := c.load(oper)
	carry := b2u8(c.P.C)
	c.P.C = val&0x01 != 0
	val = val>>1 | carry<<7
	c.store(oper, val)
	c.setNZ(val)
}

// flags

func clc(c *CPU, _ operand) { c.P.C = false }
func cld(c *CPU, _ operand) { c.P.D = false }
func cli(c *CPU, _ operand) { c.P.I = false }
func clv(c *CPU, _ operand) { c.P.V = false }
func sec(c *CPU, _ operand) { c.P.C = true }
func sed(c *CPU, _ operand) { c.P.D = true }
func sei(c *CPU, _ operand) { c.P.I = true }

// control flow

// branch jumps to the target when taken, costing one more cycle, or two when
// the target is in another page than the next instruction.
func (c *CPU) branch(oper operand, taken bool) {
	if !taken {
		return
	}
	c.extra = 1
	if pageCrossed(c.PC, oper.addr) {
		c.extra = 2
	}
	c.PC = oper.addr
}

func bcc(c *CPU, oper operand) { c.branch(oper, !c.P.C) }
func bcs(c *CPU, oper operand) { c.branch(oper, c.P.C) }
func bne(c *CPU, oper operand) { c.branch(oper, !c.P.Z) }
func beq(c *CPU, oper operand) { c.branch(oper, c.P.Z) }
func bpl(c *CPU, oper operand) { c.branch(oper, !c.P.N) }
func bmi(c *CPU, oper operand) { c.branch(oper, c.P.N) }
func bvc(c *CPU, oper operand) { c.branch(oper, !c.P.V) }
func bvs(c *CPU, oper operand) { c.branch(oper, c.P.V) }

func jmp(c *CPU, oper operand) { c.PC = oper.addr }

// jsr pushes the address of its own last byte.
func jsr(c *CPU, oper operand) {
	c.push16(c.PC - 1)
	c.PC = oper.addr
}

func rts(c *CPU, _ operand) { c.PC = c.pull16() + 1 }

func rti(c *CPU, _ operand) {
	c.pullFlags()
	c.PC = c.pull16()
}

// brk skips its padding byte: the pushed return address is the opcode
// address plus two.
func brk(c *CPU, _ operand) {
	c.push16(c.PC + 1)
	c.pushFlags()
	c.P.I = true
	c.PC = c.Read16(IRQVector)
}

// nop reads its operand, if any, and discards it.
func nop(c *CPU, oper operand) {
	switch oper.mode {
	case Implied, Immediate:
	default:
		c.load(oper)
	}
}

// Unofficial opcodes. The combined ones run their two constituent
// operations in sequence on the same operand.

func lax(c *CPU, oper operand) { lda(c, oper); tax(c, oper) }
func dcp(c *CPU, oper operand) { dec(c, oper); cpa(c, oper) }
func isc(c *CPU, oper operand) { inc(c, oper); sbc(c, oper) }
func slo(c *CPU, oper operand) { asl(c, oper); ora(c, oper) }
func rla(c *CPU, oper operand) { rol(c, oper); and(c, oper) }
func sre(c *CPU, oper operand) { lsr(c, oper); eor(c, oper) }
func rra(c *CPU, oper operand) { ror(c, oper); adc(c, oper) }

func sax(c *CPU, oper operand) { c.store(oper, c.A&c.X) }

var accumulator = operand{mode: Accumulator}

// anc is AND, then N copied into C.
func anc(c *CPU, oper operand) {
	and(c, oper)
	c.P.C = c.P.N
}

// alr is AND, then LSR A.
func alr(c *CPU, oper operand) {
	and(c, oper)
	lsr(c, accumulator)
}

// arr is AND, then ROR A, with C and V taken from bits 6 and 5 of the result.
func arr(c *CPU, oper operand) {
	and(c, oper)
	ror(c, accumulator)
	c.P.C = c.A&0x40 != 0
	c.P.V = (c.A>>6)&1 != (c.A>>5)&1
}

// sbx sets X to (A AND X) minus the operand, without borrow.
func sbx(c *CPU, oper operand) {
	val := c.load(oper)
	ax := c.A & c.X
	c.P.C = ax >= val
	c.X = ax - val
	c.setNZ(c.X)
}

// las sets A, X and SP to the operand AND SP.
func las(c *CPU, oper operand) {
	val := c.load(oper) & c.SP
	c.A, c.X, c.SP = val, val, val
	c.setNZ(val)
}

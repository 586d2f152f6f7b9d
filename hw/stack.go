package hw

const stackBase = 0x0100

// The stack pointer wraps within page 1 in both directions.

func (c *CPU) push8(val uint8) {
	c.Write8(stackBase|uint16(c.SP), val)
	c.SP--
}

func (c *CPU) pull8() uint8 {
	c.SP++
	return c.Read8(stackBase | uint16(c.SP))
}

func (c *CPU) push16(val uint16) {
	c.push8(uint8(val >> 8))
	c.push8(uint8(val))
}

func (c *CPU) pull16() uint16 {
	lo := c.pull8()
	hi := c.pull8()
	return uint16(hi)<<8 | uint16(lo)
}

// pushFlags pushes P with B and U set in the pushed copy (PHP, BRK).
func (c *CPU) pushFlags() {
	p := c.P
	p.B = true
	p.U = true
	c.push8(p.Pack())
}

// pushInterruptFlags pushes P with B clear, as hardware interrupts do.
func (c *CPU) pushInterruptFlags() {
	p := c.P
	p.B = false
	p.U = true
	c.push8(p.Pack())
}

// pullFlags restores P from the stack (PLP, RTI). B is dropped and U forced.
func (c *CPU) pullFlags() {
	c.P.Unpack(c.pull8())
	c.P.B = false
	c.P.U = true
}

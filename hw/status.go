package hw

// Bit positions of the processor flags in the packed status byte.
const (
	Carry uint8 = 1 << iota
	Zero
	Interrupt
	Decimal
	Break
	Unused
	Overflow
	Negative
)

// P is the processor status register. The flags are kept as independent
// booleans, Pack and Unpack convert to and from the byte seen on the stack.
// Decimal is stored but never honored by arithmetic.
type P struct {
	C, Z, I, D, B, U, V, N bool
}

func b2u8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// Pack returns the status byte.
func (p P) Pack() uint8 {
	return b2u8(p.C) |
		b2u8(p.Z)<<1 |
		b2u8(p.I)<<2 |
		b2u8(p.D)<<3 |
		b2u8(p.B)<<4 |
		b2u8(p.U)<<5 |
		b2u8(p.V)<<6 |
		b2u8(p.N)<<7
}

// Unpack sets all eight flags from the status byte v.
func (p *P) Unpack(v uint8) {
	p.C = v&Carry != 0
	p.Z = v&Zero != 0
	p.I = v&Interrupt != 0
	p.D = v&Decimal != 0
	p.B = v&Break != 0
	p.U = v&Unused != 0
	p.V = v&Overflow != 0
	p.N = v&Negative != 0
}

// UnpackP returns the P value corresponding to the status byte v.
func UnpackP(v uint8) P {
	var p P
	p.Unpack(v)
	return p
}

// String returns the flags as "nvubdizc", set flags in uppercase.
func (p P) String() string {
	const lc, uc = "nvubdizc", "NVUBDIZC"
	v := p.Pack()
	var buf [8]byte
	for i := range 8 {
		if v&(0x80>>i) != 0 {
			buf[i] = uc[i]
		} else {
			buf[i] = lc[i]
		}
	}
	return string(buf[:])
}

func (c *CPU) setNZ(val uint8) {
	c.P.Z = val == 0
	c.P.N = val&0x80 != 0
}

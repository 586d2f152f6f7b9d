package hw

// Penalty is the class of extra cycles an instruction may take on top of its
// base cycle count.
type Penalty uint8

const (
	PenaltyNone   Penalty = iota // none
	PenaltyPage                  // page
	PenaltyBranch                // branch
)

// Instruction is the immutable description of an opcode.
type Instruction struct {
	Opcode     uint8
	Name       string
	Mode       Mode
	Size       uint8 // in bytes, opcode included
	Cycles     uint8 // base cycle count, penalties excluded
	Penalty    Penalty
	Unofficial bool

	exec opfunc
}

// Defined reports whether the opcode can be executed. Fetching an undefined
// opcode stops the CPU.
func (in Instruction) Defined() bool {
	return in.exec != nil
}

func def(name string, mode Mode, cycles uint8, pen Penalty, fn opfunc) Instruction {
	return Instruction{Name: name, Mode: mode, Size: mode.Size(), Cycles: cycles, Penalty: pen, exec: fn}
}

func undoc(name string, mode Mode, cycles uint8, pen Penalty, fn opfunc) Instruction {
	in := def(name, mode, cycles, pen, fn)
	in.Unofficial = true
	return in
}

// undefined describes the opcodes that jam the processor, and the unstable
// ones whose result depends on analog effects.
func undefined(name string, mode Mode) Instruction {
	return Instruction{Name: name, Mode: mode, Size: mode.Size(), Unofficial: true}
}

// Lookup returns the description of an opcode.
func Lookup(opcode uint8) Instruction {
	return opcodes[opcode]
}

// opcodes is built once at package initialization and never modified.
var opcodes = func() [256]Instruction {
	t := [256]Instruction{
		0x00: def("BRK", Implied, 7, PenaltyNone, brk),
		0x01: def("ORA", IndexedIndirect, 6, PenaltyNone, ora),
		0x02: undefined("JAM", Implied),
		0x03: undoc("SLO", IndexedIndirect, 8, PenaltyNone, slo),
		0x04: undoc("NOP", ZeroPage, 3, PenaltyNone, nop),
		0x05: def("ORA", ZeroPage, 3, PenaltyNone, ora),
		0x06: def("ASL", ZeroPage, 5, PenaltyNone, asl),
		0x07: undoc("SLO", ZeroPage, 5, PenaltyNone, slo),
		0x08: def("PHP", Implied, 3, PenaltyNone, php),
		0x09: def("ORA", Immediate, 2, PenaltyNone, ora),
		0x0A: def("ASL", Accumulator, 2, PenaltyNone, asl),
		0x0B: undoc("ANC", Immediate, 2, PenaltyNone, anc),
		0x0C: undoc("NOP", Absolute, 4, PenaltyNone, nop),
		0x0D: def("ORA", Absolute, 4, PenaltyNone, ora),
		0x0E: def("ASL", Absolute, 6, PenaltyNone, asl),
		0x0F: undoc("SLO", Absolute, 6, PenaltyNone, slo),
		0x10: def("BPL", Relative, 2, PenaltyBranch, bpl),
		0x11: def("ORA", IndirectIndexed, 5, PenaltyPage, ora),
		0x12: undefined("JAM", Implied),
		0x13: undoc("SLO", IndirectIndexed, 8, PenaltyNone, slo),
		0x14: undoc("NOP", ZeroPageX, 4, PenaltyNone, nop),
		0x15: def("ORA", ZeroPageX, 4, PenaltyNone, ora),
		0x16: def("ASL", ZeroPageX, 6, PenaltyNone, asl),
		0x17: undoc("SLO", ZeroPageX, 6, PenaltyNone, slo),
		0x18: def("CLC", Implied, 2, PenaltyNone, clc),
		0x19: def("ORA", AbsoluteY, 4, PenaltyPage, ora),
		0x1A: undoc("NOP", Implied, 2, PenaltyNone, nop),
		0x1B: undoc("SLO", AbsoluteY, 7, PenaltyNone, slo),
		0x1C: undoc("NOP", AbsoluteX, 4, PenaltyPage, nop),
		0x1D: def("ORA", AbsoluteX, 4, PenaltyPage, ora),
		0x1E: def("ASL", AbsoluteX, 7, PenaltyNone, asl),
		0x1F: undoc("SLO", AbsoluteX, 7, PenaltyNone, slo),
		0x20: def("JSR", Absolute, 6, PenaltyNone, jsr),
		0x21: def("AND", IndexedIndirect, 6, PenaltyNone, and),
		0x22: undefined("JAM", Implied),
		0x23: undoc("RLA", IndexedIndirect, 8, PenaltyNone, rla),
		0x24: def("BIT", ZeroPage, 3, PenaltyNone, bit),
		0x25: def("AND", ZeroPage, 3, PenaltyNone, and),
		0x26: def("ROL", ZeroPage, 5, PenaltyNone, rol),
		0x27: undoc("RLA", ZeroPage, 5, PenaltyNone, rla),
		0x28: def("PLP", Implied, 4, PenaltyNone, plp),
		0x29: def("AND", Immediate, 2, PenaltyNone, and),
		0x2A: def("ROL", Accumulator, 2, PenaltyNone, rol),
		0x2B: undoc("ANC", Immediate, 2, PenaltyNone, anc),
		0x2C: def("BIT", Absolute, 4, PenaltyNone, bit),
		0x2D: def("AND", Absolute, 4, PenaltyNone, and),
		0x2E: def("ROL", Absolute, 6, PenaltyNone, rol),
		0x2F: undoc("RLA", Absolute, 6, PenaltyNone, rla),
		0x30: def("BMI", Relative, 2, PenaltyBranch, bmi),
		0x31: def("AND", IndirectIndexed, 5, PenaltyPage, and),
		0x32: undefined("JAM", Implied),
		0x33: undoc("RLA", IndirectIndexed, 8, PenaltyNone, rla),
		0x34: undoc("NOP", ZeroPageX, 4, PenaltyNone, nop),
		0x35: def("AND", ZeroPageX, 4, PenaltyNone, and),
		0x36: def("ROL", ZeroPageX, 6, PenaltyNone, rol),
		0x37: undoc("RLA", ZeroPageX, 6, PenaltyNone, rla),
		0x38: def("SEC", Implied, 2, PenaltyNone, sec),
		0x39: def("AND", AbsoluteY, 4, PenaltyPage, and),
		0x3A: undoc("NOP", Implied, 2, PenaltyNone, nop),
		0x3B: undoc("RLA", AbsoluteY, 7, PenaltyNone, rla),
		0x3C: undoc("NOP", AbsoluteX, 4, PenaltyPage, nop),
		0x3D: def("AND", AbsoluteX, 4, PenaltyPage, and),
		0x3E: def("ROL", AbsoluteX, 7, PenaltyNone, rol),
		0x3F: undoc("RLA", AbsoluteX, 7, PenaltyNone, rla),
		0x40: def("RTI", Implied, 6, PenaltyNone, rti),
		0x41: def("EOR", IndexedIndirect, 6, PenaltyNone, eor),
		0x42: undefined("JAM", Implied),
		0x43: undoc("SRE", IndexedIndirect, 8, PenaltyNone, sre),
		0x44: undoc("NOP", ZeroPage, 3, PenaltyNone, nop),
		0x45: def("EOR", ZeroPage, 3, PenaltyNone, eor),
		0x46: def("LSR", ZeroPage, 5, PenaltyNone, lsr),
		0x47: undoc("SRE", ZeroPage, 5, PenaltyNone, sre),
		0x48: def("PHA", Implied, 3, PenaltyNone, pha),
		0x49: def("EOR", Immediate, 2, PenaltyNone, eor),
		0x4A: def("LSR", Accumulator, 2, PenaltyNone, lsr),
		0x4B: undoc("ALR", Immediate, 2, PenaltyNone, alr),
		0x4C: def("JMP", Absolute, 3, PenaltyNone, jmp),
		0x4D: def("EOR", Absolute, 4, PenaltyNone, eor),
		0x4E: def("LSR", Absolute, 6, PenaltyNone, lsr),
		0x4F: undoc("SRE", Absolute, 6, PenaltyNone, sre),
		0x50: def("BVC", Relative, 2, PenaltyBranch, bvc),
		0x51: def("EOR", IndirectIndexed, 5, PenaltyPage, eor),
		0x52: undefined("JAM", Implied),
		0x53: undoc("SRE", IndirectIndexed, 8, PenaltyNone, sre),
		0x54: undoc("NOP", ZeroPageX, 4, PenaltyNone, nop),
		0x55: def("EOR", ZeroPageX, 4, PenaltyNone, eor),
		0x56: def("LSR", ZeroPageX, 6, PenaltyNone, lsr),
		0x57: undoc("SRE", ZeroPageX, 6, PenaltyNone, sre),
		0x58: def("CLI", Implied, 2, PenaltyNone, cli),
		0x59: def("EOR", AbsoluteY, 4, PenaltyPage, eor),
		0x5A: undoc("NOP", Implied, 2, PenaltyNone, nop),
		0x5B: undoc("SRE", AbsoluteY, 7, PenaltyNone, sre),
		0x5C: undoc("NOP", AbsoluteX, 4, PenaltyPage, nop),
		0x5D: def("EOR", AbsoluteX, 4, PenaltyPage, eor),
		0x5E: def("LSR", AbsoluteX, 7, PenaltyNone, lsr),
		0x5F: undoc("SRE", AbsoluteX, 7, PenaltyNone, sre),
		0x60: def("RTS", Implied, 6, PenaltyNone, rts),
		0x61: def("ADC", IndexedIndirect, 6, PenaltyNone, adc),
		0x62: undefined("JAM", Implied),
		0x63: undoc("RRA", IndexedIndirect, 8, PenaltyNone, rra),
		0x64: undoc("NOP", ZeroPage, 3, PenaltyNone, nop),
		0x65: def("ADC", ZeroPage, 3, PenaltyNone, adc),
		0x66: def("ROR", ZeroPage, 5, PenaltyNone, ror),
		0x67: undoc("RRA", ZeroPage, 5, PenaltyNone, rra),
		0x68: def("PLA", Implied, 4, PenaltyNone, pla),
		0x69: def("ADC", Immediate, 2, PenaltyNone, adc),
		0x6A: def("ROR", Accumulator, 2, PenaltyNone, ror),
		0x6B: undoc("ARR", Immediate, 2, PenaltyNone, arr),
		0x6C: def("JMP", Indirect, 5, PenaltyNone, jmp),
		0x6D: def("ADC", Absolute, 4, PenaltyNone, adc),
		0x6E: def("ROR", Absolute, 6, PenaltyNone, ror),
		0x6F: undoc("RRA", Absolute, 6, PenaltyNone, rra),
		0x70: def("BVS", Relative, 2, PenaltyBranch, bvs),
		0x71: def("ADC", IndirectIndexed, 5, PenaltyPage, adc),
		0x72: undefined("JAM", Implied),
		0x73: undoc("RRA", IndirectIndexed, 8, PenaltyNone, rra),
		0x74: undoc("NOP", ZeroPageX, 4, PenaltyNone, nop),
		0x75: def("ADC", ZeroPageX, 4, PenaltyNone, adc),
		0x76: def("ROR", ZeroPageX, 6, PenaltyNone, ror),
		0x77: undoc("RRA", ZeroPageX, 6, PenaltyNone, rra),
		0x78: def("SEI", Implied, 2, PenaltyNone, sei),
		0x79: def("ADC", AbsoluteY, 4, PenaltyPage, adc),
		0x7A: undoc("NOP", Implied, 2, PenaltyNone, nop),
		0x7B: undoc("RRA", AbsoluteY, 7, PenaltyNone, rra),
		0x7C: undoc("NOP", AbsoluteX, 4, PenaltyPage, nop),
		0x7D: def("ADC", AbsoluteX, 4, PenaltyPage, adc),
		0x7E: def("ROR", AbsoluteX, 7, PenaltyNone, ror),
		0x7F: undoc("RRA", AbsoluteX, 7, PenaltyNone, rra),
		0x80: undoc("NOP", Immediate, 2, PenaltyNone, nop),
		0x81: def("STA", IndexedIndirect, 6, PenaltyNone, sta),
		0x82: undoc("NOP", Immediate, 2, PenaltyNone, nop),
		0x83: undoc("SAX", IndexedIndirect, 6, PenaltyNone, sax),
		0x84: def("STY", ZeroPage, 3, PenaltyNone, sty),
		0x85: def("STA", ZeroPage, 3, PenaltyNone, sta),
		0x86: def("STX", ZeroPage, 3, PenaltyNone, stx),
		0x87: undoc("SAX", ZeroPage, 3, PenaltyNone, sax),
		0x88: def("DEY", Implied, 2, PenaltyNone, dey),
		0x89: undoc("NOP", Immediate, 2, PenaltyNone, nop),
		0x8A: def("TXA", Implied, 2, PenaltyNone, txa),
		0x8B: undefined("XAA", Immediate),
		0x8C: def("STY", Absolute, 4, PenaltyNone, sty),
		0x8D: def("STA", Absolute, 4, PenaltyNone, sta),
		0x8E: def("STX", Absolute, 4, PenaltyNone, stx),
		0x8F: undoc("SAX", Absolute, 4, PenaltyNone, sax),
		0x90: def("BCC", Relative, 2, PenaltyBranch, bcc),
		0x91: def("STA", IndirectIndexed, 6, PenaltyNone, sta),
		0x92: undefined("JAM", Implied),
		0x93: undefined("SHA", IndirectIndexed),
		0x94: def("STY", ZeroPageX, 4, PenaltyNone, sty),
		0x95: def("STA", ZeroPageX, 4, PenaltyNone, sta),
		0x96: def("STX", ZeroPageY, 4, PenaltyNone, stx),
		0x97: undoc("SAX", ZeroPageY, 4, PenaltyNone, sax),
		0x98: def("TYA", Implied, 2, PenaltyNone, tya),
		0x99: def("STA", AbsoluteY, 5, PenaltyNone, sta),
		0x9A: def("TXS", Implied, 2, PenaltyNone, txs),
		0x9B: undefined("TAS", AbsoluteY),
		0x9C: undefined("SHY", AbsoluteX),
		0x9D: def("STA", AbsoluteX, 5, PenaltyNone, sta),
		0x9E: undefined("SHX", AbsoluteY),
		0x9F: undefined("SHA", AbsoluteY),
		0xA0: def("LDY", Immediate, 2, PenaltyNone, ldy),
		0xA1: def("LDA", IndexedIndirect, 6, PenaltyNone, lda),
		0xA2: def("LDX", Immediate, 2, PenaltyNone, ldx),
		0xA3: undoc("LAX", IndexedIndirect, 6, PenaltyNone, lax),
		0xA4: def("LDY", ZeroPage, 3, PenaltyNone, ldy),
		0xA5: def("LDA", ZeroPage, 3, PenaltyNone, lda),
		0xA6: def("LDX", ZeroPage, 3, PenaltyNone, ldx),
		0xA7: undoc("LAX", ZeroPage, 3, PenaltyNone, lax),
		0xA8: def("TAY", Implied, 2, PenaltyNone, tay),
		0xA9: def("LDA", Immediate, 2, PenaltyNone, lda),
		0xAA: def("TAX", Implied, 2, PenaltyNone, tax),
		0xAB: undefined("LXA", Immediate),
		0xAC: def("LDY", Absolute, 4, PenaltyNone, ldy),
		0xAD: def("LDA", Absolute, 4, PenaltyNone, lda),
		0xAE: def("LDX", Absolute, 4, PenaltyNone, ldx),
		0xAF: undoc("LAX", Absolute, 4, PenaltyNone, lax),
		0xB0: def("BCS", Relative, 2, PenaltyBranch, bcs),
		0xB1: def("LDA", IndirectIndexed, 5, PenaltyPage, lda),
		0xB2: undefined("JAM", Implied),
		0xB3: undoc("LAX", IndirectIndexed, 5, PenaltyPage, lax),
		0xB4: def("LDY", ZeroPageX, 4, PenaltyNone, ldy),
		0xB5: def("LDA", ZeroPageX, 4, PenaltyNone, lda),
		0xB6: def("LDX", ZeroPageY, 4, PenaltyNone, ldx),
		0xB7: undoc("LAX", ZeroPageY, 4, PenaltyNone, lax),
		0xB8: def("CLV", Implied, 2, PenaltyNone, clv),
		0xB9: def("LDA", AbsoluteY, 4, PenaltyPage, lda),
		0xBA: def("TSX", Implied, 2, PenaltyNone, tsx),
		0xBB: undoc("LAS", AbsoluteY, 4, PenaltyPage, las),
		0xBC: def("LDY", AbsoluteX, 4, PenaltyPage, ldy),
		0xBD: def("LDA", AbsoluteX, 4, PenaltyPage, lda),
		0xBE: def("LDX", AbsoluteY, 4, PenaltyPage, ldx),
		0xBF: undoc("LAX", AbsoluteY, 4, PenaltyPage, lax),
		0xC0: def("CPY", Immediate, 2, PenaltyNone, cpy),
		0xC1: def("CMP", IndexedIndirect, 6, PenaltyNone, cpa),
		0xC2: undoc("NOP", Immediate, 2, PenaltyNone, nop),
		0xC3: undoc("DCP", IndexedIndirect, 8, PenaltyNone, dcp),
		0xC4: def("CPY", ZeroPage, 3, PenaltyNone, cpy),
		0xC5: def("CMP", ZeroPage, 3, PenaltyNone, cpa),
		0xC6: def("DEC", ZeroPage, 5, PenaltyNone, dec),
		0xC7: undoc("DCP", ZeroPage, 5, PenaltyNone, dcp),
		0xC8: def("INY", Implied, 2, PenaltyNone, iny),
		0xC9: def("CMP", Immediate, 2, PenaltyNone, cpa),
		0xCA: def("DEX", Implied, 2, PenaltyNone, dex),
		0xCB: undoc("SBX", Immediate, 2, PenaltyNone, sbx),
		0xCC: def("CPY", Absolute, 4, PenaltyNone, cpy),
		0xCD: def("CMP", Absolute, 4, PenaltyNone, cpa),
		0xCE: def("DEC", Absolute, 6, PenaltyNone, dec),
		0xCF: undoc("DCP", Absolute, 6, PenaltyNone, dcp),
		0xD0: def("BNE", Relative, 2, PenaltyBranch, bne),
		0xD1: def("CMP", IndirectIndexed, 5, PenaltyPage, cpa),
		0xD2: undefined("JAM", Implied),
		0xD3: undoc("DCP", IndirectIndexed, 8, PenaltyNone, dcp),
		0xD4: undoc("NOP", ZeroPageX, 4, PenaltyNone, nop),
		0xD5: def("CMP", ZeroPageX, 4, PenaltyNone, cpa),
		0xD6: def("DEC", ZeroPageX, 6, PenaltyNone, dec),
		0xD7: undoc("DCP", ZeroPageX, 6, PenaltyNone, dcp),
		0xD8: def("CLD", Implied, 2, PenaltyNone, cld),
		0xD9: def("CMP", AbsoluteY, 4, PenaltyPage, cpa),
		0xDA: undoc("NOP", Implied, 2, PenaltyNone, nop),
		0xDB: undoc("DCP", AbsoluteY, 7, PenaltyNone, dcp),
		0xDC: undoc("NOP", AbsoluteX, 4, PenaltyPage, nop),
		0xDD: def("CMP", AbsoluteX, 4, PenaltyPage, cpa),
		0xDE: def("DEC", AbsoluteX, 7, PenaltyNone, dec),
		0xDF: undoc("DCP", AbsoluteX, 7, PenaltyNone, dcp),
		0xE0: def("CPX", Immediate, 2, PenaltyNone, cpx),
		0xE1: def("SBC", IndexedIndirect, 6, PenaltyNone, sbc),
		0xE2: undoc("NOP", Immediate, 2, PenaltyNone, nop),
		0xE3: undoc("ISC", IndexedIndirect, 8, PenaltyNone, isc),
		0xE4: def("CPX", ZeroPage, 3, PenaltyNone, cpx),
		0xE5: def("SBC", ZeroPage, 3, PenaltyNone, sbc),
		0xE6: def("INC", ZeroPage, 5, PenaltyNone, inc),
		0xE7: undoc("ISC", ZeroPage, 5, PenaltyNone, isc),
		0xE8: def("INX", Implied, 2, PenaltyNone, inx),
		0xE9: def("SBC", Immediate, 2, PenaltyNone, sbc),
		0xEA: def("NOP", Implied, 2, PenaltyNone, nop),
		0xEB: undoc("SBC", Immediate, 2, PenaltyNone, sbc),
		0xEC: def("CPX", Absolute, 4, PenaltyNone, cpx),
		0xED: def("SBC", Absolute, 4, PenaltyNone, sbc),
		0xEE: def("INC", Absolute, 6, PenaltyNone, inc),
		0xEF: undoc("ISC", Absolute, 6, PenaltyNone, isc),
		0xF0: def("BEQ", Relative, 2, PenaltyBranch, beq),
		0xF1: def("SBC", IndirectIndexed, 5, PenaltyPage, sbc),
		0xF2: undefined("JAM", Implied),
		0xF3: undoc("ISC", IndirectIndexed, 8, PenaltyNone, isc),
		0xF4: undoc("NOP", ZeroPageX, 4, PenaltyNone, nop),
		0xF5: def("SBC", ZeroPageX, 4, PenaltyNone, sbc),
		0xF6: def("INC", ZeroPageX, 6, PenaltyNone, inc),
		0xF7: undoc("ISC", ZeroPageX, 6, PenaltyNone, isc),
		0xF8: def("SED", Implied, 2, PenaltyNone, sed),
		0xF9: def("SBC", AbsoluteY, 4, PenaltyPage, sbc),
		0xFA: undoc("NOP", Implied, 2, PenaltyNone, nop),
		0xFB: undoc("ISC", AbsoluteY, 7, PenaltyNone, isc),
		0xFC: undoc("NOP", AbsoluteX, 4, PenaltyPage, nop),
		0xFD: def("SBC", AbsoluteX, 4, PenaltyPage, sbc),
		0xFE: def("INC", AbsoluteX, 7, PenaltyNone, inc),
		0xFF: undoc("ISC", AbsoluteX, 7, PenaltyNone, isc),
	}
	for i := range t {
		t[i].Opcode = uint8(i)
	}
	return t
}()

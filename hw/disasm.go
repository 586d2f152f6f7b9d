package hw

import (
	"fmt"
)

// Peeker reads memory without side effects.
type Peeker interface {
	Peek8(addr uint16) uint8
}

type DisasmOp struct {
	Opcode string
	Oper   string
	Buf    []byte
	PC     uint16
}

func (d DisasmOp) String() string {
	return string(d.Bytes())
}

// Size returns the number of bytes of the instruction.
func (d DisasmOp) Size() int {
	return len(d.Buf)
}

// Bytes returns the nestest style rendition of the instruction, padded to 48
// bytes for the execution tracer.
func (d DisasmOp) Bytes() []byte {
	const totalLen = 48
	buf := make([]byte, 0, totalLen)

	buf = append(buf, hexDigits[d.PC>>12], hexDigits[(d.PC>>8)&0xF], hexDigits[(d.PC>>4)&0xF], hexDigits[d.PC&0xF], ' ', ' ')
	for _, b := range d.Buf {
		buf = append(buf, hexDigits[b>>4], hexDigits[b&0xF], ' ')
	}
	for len(buf) < 16 {
		buf = append(buf, ' ')
	}
	// Unofficial mnemonics carry a '*' prefix, which eats one column.
	if len(d.Opcode) > 3 {
		buf = buf[:15]
	}
	buf = append(buf, d.Opcode...)
	buf = append(buf, ' ')
	buf = append(buf, d.Oper...)
	for len(buf) < totalLen {
		buf = append(buf, ' ')
	}
	return buf
}

const hexDigits = "0123456789ABCDEF"

// Disasm disassembles the instruction at pc, reading memory through p.
func Disasm(p Peeker, pc uint16) DisasmOp {
	in := opcodes[p.Peek8(pc)]
	d := DisasmOp{
		Opcode: in.Name,
		PC:     pc,
		Buf:    make([]byte, in.Size),
	}
	for i := range d.Buf {
		d.Buf[i] = p.Peek8(pc + uint16(i))
	}
	if in.Unofficial {
		d.Opcode = "*" + in.Name
	}

	var op8 uint8
	var op16 uint16
	if in.Size > 1 {
		op8 = d.Buf[1]
		op16 = uint16(op8)
	}
	if in.Size > 2 {
		op16 |= uint16(d.Buf[2]) << 8
	}

	switch in.Mode {
	case Implied:
	case Accumulator:
		d.Oper = "A"
	case Immediate:
		d.Oper = fmt.Sprintf("#$%02X", op8)
	case ZeroPage:
		d.Oper = fmt.Sprintf("$%02X", op8)
	case ZeroPageX:
		d.Oper = fmt.Sprintf("$%02X,X", op8)
	case ZeroPageY:
		d.Oper = fmt.Sprintf("$%02X,Y", op8)
	case Absolute:
		d.Oper = formatAddr(op16)
	case AbsoluteX:
		d.Oper = formatAddr(op16) + ",X"
	case AbsoluteY:
		d.Oper = formatAddr(op16) + ",Y"
	case IndexedIndirect:
		d.Oper = fmt.Sprintf("($%02X,X)", op8)
	case IndirectIndexed:
		d.Oper = fmt.Sprintf("($%02X),Y", op8)
	case Indirect:
		d.Oper = fmt.Sprintf("($%04X)", op16)
	case Relative:
		d.Oper = fmt.Sprintf("$%04X", pc+2+uint16(int8(op8)))
	}
	return d
}

// busPeeker adapts a Bus with no side-effect free access.
type busPeeker struct{ Bus }

func (b busPeeker) Peek8(addr uint16) uint8 { return b.Read8(addr) }

// Disasm disassembles the instruction at pc from the CPU bus. Reads go
// through Peek8 when the bus provides it.
func (c *CPU) Disasm(pc uint16) DisasmOp {
	if p, ok := c.bus.(Peeker); ok {
		return Disasm(p, pc)
	}
	return Disasm(busPeeker{c.bus}, pc)
}

var addressLabels = map[uint16]string{
	0x2000: "PpuControl_2000",
	0x2001: "PpuMask_2001",
	0x2002: "PpuStatus_2002",
	0x2003: "OamAddr_2003",
	0x2004: "OamData_2004",
	0x2005: "PpuScroll_2005",
	0x2006: "PpuAddr_2006",
	0x2007: "PpuData_2007",
	0x4010: "DmcFreq_4010",
	0x4014: "SpriteDma_4014",
	0x4015: "ApuStatus_4015",
	0x4016: "Ctrl1_4016",
	0x4017: "Ctrl2_FrameCtr_4017",
}

func formatAddr(addr uint16) string {
	if label, ok := addressLabels[addr]; ok {
		return label
	}
	return fmt.Sprintf("$%04X", addr)
}

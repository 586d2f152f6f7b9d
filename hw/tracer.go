package hw

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-faster/jx"
)

// TraceFormat selects the layout of execution trace lines.
type TraceFormat uint8

const (
	TraceText TraceFormat = iota // nestest-like columns
	TraceJSON                    // one JSON object per line
)

func ParseTraceFormat(s string) (TraceFormat, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return TraceText, nil
	case "json":
		return TraceJSON, nil
	}
	return 0, fmt.Errorf("unknown trace format %q", s)
}

// cpuState is the CPU state before an instruction executes.
type cpuState struct {
	A, X, Y uint8
	P       uint8
	SP      uint8
	PC      uint16

	Clock int64
}

func (c *CPU) snapshot() cpuState {
	return cpuState{
		A:     c.A,
		X:     c.X,
		Y:     c.Y,
		P:     c.P.Pack(),
		SP:    c.SP,
		PC:    c.PC,
		Clock: c.Cycles - 1,
	}
}

type disasmer interface {
	Disasm(pc uint16) DisasmOp
}

type tracer struct {
	d      disasmer
	w      io.Writer
	format TraceFormat

	enc jx.Encoder
}

func hexEncode(dst []byte, v byte) {
	dst[0] = hexDigits[v>>4]
	dst[1] = hexDigits[v&0x0f]
}

func (t *tracer) write(state cpuState) {
	dis := t.d.Disasm(state.PC)
	if t.format == TraceJSON {
		t.writeJSON(state, dis)
		return
	}

	buf := dis.Bytes()
	for _, reg := range [...]struct {
		name string
		val  uint8
	}{
		{"A", state.A}, {"X", state.X}, {"Y", state.Y}, {"P", state.P}, {"SP", state.SP},
	} {
		buf = append(buf, reg.name...)
		buf = append(buf, ':', 0, 0, ' ')
		hexEncode(buf[len(buf)-3:], reg.val)
	}
	buf = fmt.Appendf(buf, "CYC:%d\n", state.Clock)
	t.w.Write(buf)
}

func (t *tracer) writeJSON(state cpuState, dis DisasmOp) {
	e := &t.enc
	e.Reset()
	e.ObjStart()
	e.FieldStart("pc")
	e.UInt16(state.PC)
	e.FieldStart("op")
	e.Str(strings.TrimSpace(dis.Opcode + " " + dis.Oper))
	e.FieldStart("bytes")
	e.ArrStart()
	for _, b := range dis.Buf {
		e.UInt8(b)
	}
	e.ArrEnd()
	e.FieldStart("a")
	e.UInt8(state.A)
	e.FieldStart("x")
	e.UInt8(state.X)
	e.FieldStart("y")
	e.UInt8(state.Y)
	e.FieldStart("p")
	e.UInt8(state.P)
	e.FieldStart("sp")
	e.UInt8(state.SP)
	e.FieldStart("cyc")
	e.Int64(state.Clock)
	e.ObjEnd()

	t.w.Write(append(e.Bytes(), '\n'))
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-faster/jx"

	"famicore/hw"
)

func opcodesMain(w io.Writer, args Opcodes) error {
	if args.JSON {
		return writeOpcodesJSON(w)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OP\tNAME\tMODE\tSIZE\tCYCLES\tPENALTY\tKIND")
	for i := range 256 {
		in := hw.Lookup(uint8(i))
		fmt.Fprintf(tw, "%02X\t%s\t%s\t%d\t%d\t%s\t%s\n",
			i, in.Name, in.Mode, in.Size, in.Cycles, in.Penalty, opcodeKind(in))
	}
	return tw.Flush()
}

func opcodeKind(in hw.Instruction) string {
	switch {
	case !in.Defined():
		return "undefined"
	case in.Unofficial:
		return "unofficial"
	}
	return "official"
}

func writeOpcodesJSON(w io.Writer) error {
	var e jx.Encoder
	e.SetIdent(2)
	e.ArrStart()
	for i := range 256 {
		in := hw.Lookup(uint8(i))
		e.ObjStart()
		e.FieldStart("opcode")
		e.UInt8(uint8(i))
		e.FieldStart("name")
		e.Str(in.Name)
		e.FieldStart("mode")
		e.Str(in.Mode.String())
		e.FieldStart("size")
		e.UInt8(in.Size)
		e.FieldStart("cycles")
		e.UInt8(in.Cycles)
		e.FieldStart("penalty")
		e.Str(in.Penalty.String())
		e.FieldStart("kind")
		e.Str(opcodeKind(in))
		e.ObjEnd()
	}
	e.ArrEnd()
	_, err := w.Write(append(e.Bytes(), '\n'))
	return err
}

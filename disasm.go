package main

import (
	"bytes"
	"fmt"
	"io"

	"famicore/emu"
	"famicore/hw"
)

// disasmMain disassembles args.Count instructions of an image, loaded in a
// powered up machine.
func disasmMain(w io.Writer, args Disasm, cfg emu.Config) error {
	img, err := emu.OpenImage(args.ImagePath, cfg.Machine)
	if err != nil {
		return err
	}
	e, err := emu.Launch(img, cfg)
	if err != nil {
		return err
	}

	pc := e.NES.CPU.PC
	if args.Start != "" {
		if pc, err = parseAddr(args.Start); err != nil {
			return err
		}
	}

	for range args.Count {
		d := hw.Disasm(e.NES.Bus, pc)
		if _, err := fmt.Fprintf(w, "%s\n", bytes.TrimRight(d.Bytes(), " ")); err != nil {
			return err
		}
		pc += uint16(d.Size())
	}
	return nil
}

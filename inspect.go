package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"famicore/hw"
	"famicore/hw/snapshot"
)

// inspectMain prints a machine state dump written by run --dump-state.
func inspectMain(w io.Writer, args Inspect) error {
	buf, err := os.ReadFile(args.DumpPath)
	if err != nil {
		return err
	}
	s, err := snapshot.Unmarshal(buf)
	if err != nil {
		return fmt.Errorf("%s: %w", args.DumpPath, err)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	c := s.CPU
	fmt.Fprintf(tw, "cpu\tPC:%04X A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
		c.PC, c.A, c.X, c.Y, c.P, c.SP, c.Cycles)
	fmt.Fprintf(tw, "\tflags %s\n", hw.UnpackP(c.P))
	fmt.Fprintf(tw, "\t%s, opcode %02X at %04X, %d cycles elapsed, %d stolen\n",
		hw.State(c.State), c.Opcode, c.OpPC, c.Elapsed, c.Stolen)
	fmt.Fprintf(tw, "\tnmi line=%t pending=%t servicing=%t\n", c.NMILine, c.NMIPending, c.InNMI)
	fmt.Fprintf(tw, "\tirq sources=%s servicing=%t\n", hw.IRQSource(c.IRQFlag), c.InIRQ)

	v := s.Video
	fmt.Fprintf(tw, "video\tframe %d, scanline %d, dot %d\n", v.Frame, v.Scanline, v.Dot)
	fmt.Fprintf(tw, "\tPPUCTRL:%02X PPUSTATUS:%02X OAMADDR:%02X\n", v.PPUCTRL, v.PPUSTATUS, v.OAMADDR)

	a := s.APU
	fmt.Fprintf(tw, "apu\tframe cycle %d, step %d, mode %d, inhibit=%t irq=%t\n",
		a.FrameCycle, a.FrameStep, a.FrameMode, a.FrameInhibit, a.FrameIRQ)
	fmt.Fprintf(tw, "\tdmc $%04X, %d bytes left, timer %d, irq=%t\n",
		a.DMCAddr, a.DMCRemaining, a.DMCTimer, a.DMCIRQ)

	fmt.Fprintf(tw, "dma\t%d OAM transfers, %d DMC fetches\n", s.DMA.OAMTransfers, s.DMA.DMCFetches)
	if err := tw.Flush(); err != nil {
		return err
	}

	if args.RAM {
		_, err = fmt.Fprintf(w, "\nram:\n%s", hex.Dump(s.RAM[:]))
	}
	return err
}

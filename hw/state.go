package hw

import "famicore/hw/snapshot"

// DumpState fills s with the CPU state, in-flight instruction and interrupt
// latches included.
func (c *CPU) DumpState(s *snapshot.CPU) {
	*s = snapshot.CPU{
		PC:         c.PC,
		SP:         c.SP,
		P:          c.P.Pack(),
		A:          c.A,
		X:          c.X,
		Y:          c.Y,
		Cycles:     c.Cycles,
		State:      uint8(c.state),
		Opcode:     c.opcode,
		OpPC:       c.opPC,
		Elapsed:    c.elapsed,
		Stolen:     c.stolen,
		NMILine:    c.nmiLine,
		NMIPending: c.nmiPending,
		InNMI:      c.inNMI,
		IRQFlag:    uint8(c.irqFlag),
		InIRQ:      c.inIRQ,
	}
}

func (v *Video) DumpState(s *snapshot.Video) {
	*s = snapshot.Video{
		PPUCTRL:   v.PPUCTRL.Value,
		PPUSTATUS: v.PPUSTATUS.Value,
		OAMADDR:   v.OAMADDR.Value,
		OAM:       v.OAM,
		Scanline:  v.Scanline,
		Dot:       v.Dot,
		Frame:     v.Frame,
	}
}

func (apu *APU) DumpState(s *snapshot.APU) {
	*s = snapshot.APU{
		FrameCycle:   apu.frame.cycle,
		FrameStep:    apu.frame.step,
		FrameMode:    apu.frame.mode,
		FrameInhibit: apu.frame.inhibit,
		FrameIRQ:     apu.frame.irqFlag,
		DMCFREQ:      apu.DMCFREQ.Value,
		DMCADDR:      apu.DMCADDR.Value,
		DMCLEN:       apu.DMCLEN.Value,
		DMCAddr:      apu.dmc.addr,
		DMCRemaining: apu.dmc.remaining,
		DMCTimer:     apu.dmc.timer,
		DMCIRQ:       apu.dmc.irqFlag,
	}
}

func (dma *DMA) DumpState(s *snapshot.DMA) {
	s.OAMTransfers = dma.OAMTransfers
	s.DMCFetches = dma.DMCFetches
}

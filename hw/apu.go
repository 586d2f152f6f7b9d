package hw

import (
	"famicore/emu/log"
	"famicore/hw/hwio"
)

var modAPU = log.NewModule("apu")

// Frame sequencer step boundaries, in CPU cycles, for the 4-step and 5-step
// modes.
var stepCycles = [2][6]int32{
	{7457, 14913, 22371, 29828, 29829, 29830},
	{7457, 14913, 22371, 29829, 37281, 37282},
}

// DMC output rates (NTSC), in CPU cycles per sample bit.
var dmcRates = [16]int32{
	428, 380, 340, 320, 286, 254, 226, 214, 190, 160, 142, 128, 106, 84, 72, 54,
}

const (
	status4015DMCActive = 4
	status4015FrameIRQ  = 6
	status4015DMCIRQ    = 7

	frameCounterMode    = 7 // bit in $4017
	frameCounterInhibit = 6 // bit in $4017

	dmcIRQEnable = 7 // bit in $4010
	dmcLoop      = 6 // bit in $4010
)

// APU is the timing half of the audio unit. Channels are not synthesized; what
// remains is what the CPU can observe: the frame sequencer IRQ, and the DMC
// sample reader which steals cycles and raises its own IRQ.
type APU struct {
	cpu *CPU
	dma *DMA

	DMCFREQ  hwio.Reg8 `hwio:"offset=0x10,writeonly,wcb"`
	DMCRAW   hwio.Reg8 `hwio:"offset=0x11,writeonly"`
	DMCADDR  hwio.Reg8 `hwio:"offset=0x12,writeonly"`
	DMCLEN   hwio.Reg8 `hwio:"offset=0x13,writeonly"`
	STATUS   hwio.Reg8 `hwio:"offset=0x15,rcb,pcb,wcb"`
	FRAMECNT hwio.Reg8 `hwio:"offset=0x17,wcb"`

	frame frameSequencer
	dmc   dmcReader
}

type frameSequencer struct {
	cycle    int32
	step     int
	mode     int // 0: 4-step, 1: 5-step
	inhibit  bool
	irqFlag  bool
	sequence int64 // completed sequences
}

type dmcReader struct {
	addr      uint16
	remaining int
	timer     int32
	irqFlag   bool
}

// NewAPU returns a reset APU driving the IRQ lines of cpu. DMC sample fetches
// go through dma.
func NewAPU(cpu *CPU, dma *DMA) *APU {
	apu := &APU{cpu: cpu, dma: dma}
	hwio.MustInitRegs(apu)
	apu.Reset()
	return apu
}

func (apu *APU) Reset() {
	apu.frame = frameSequencer{}
	apu.dmc = dmcReader{}
	apu.cpu.ClearIRQSource(IRQFrameCounter | IRQDMC)
}

// status returns the $4015 value, channel length counters read as 0.
func (apu *APU) status() uint8 {
	var val uint8
	if apu.dmc.remaining > 0 {
		hwio.SetBit8(&val, status4015DMCActive)
	}
	if apu.frame.irqFlag {
		hwio.SetBit8(&val, status4015FrameIRQ)
	}
	if apu.dmc.irqFlag {
		hwio.SetBit8(&val, status4015DMCIRQ)
	}
	return val
}

// ReadSTATUS handles $4015 reads, which acknowledge the frame IRQ.
func (apu *APU) ReadSTATUS(_ uint8) uint8 {
	val := apu.status()
	apu.frame.irqFlag = false
	apu.cpu.ClearIRQSource(IRQFrameCounter)
	return val
}

func (apu *APU) PeekSTATUS(_ uint8) uint8 {
	return apu.status()
}

// WriteSTATUS handles $4015 writes: bit 4 starts or stops the DMC reader,
// and any write acknowledges the DMC IRQ.
func (apu *APU) WriteSTATUS(_, val uint8) {
	apu.dmc.irqFlag = false
	apu.cpu.ClearIRQSource(IRQDMC)

	if !hwio.GetBit8(val, status4015DMCActive) {
		apu.dmc.remaining = 0
		return
	}
	if apu.dmc.remaining == 0 {
		apu.restartSample()
	}
}

func (apu *APU) WriteDMCFREQ(_, val uint8) {
	if !hwio.GetBit8(val, dmcIRQEnable) {
		apu.dmc.irqFlag = false
		apu.cpu.ClearIRQSource(IRQDMC)
	}
	apu.dmc.timer = apu.samplePeriod()
}

// WriteFRAMECNT handles $4017: bit 7 selects the 5-step mode, bit 6 inhibits
// and acknowledges the frame IRQ. The sequencer restarts.
func (apu *APU) WriteFRAMECNT(_, val uint8) {
	fs := &apu.frame
	fs.mode = 0
	if hwio.GetBit8(val, frameCounterMode) {
		fs.mode = 1
	}
	fs.inhibit = hwio.GetBit8(val, frameCounterInhibit)
	if fs.inhibit {
		fs.irqFlag = false
		apu.cpu.ClearIRQSource(IRQFrameCounter)
	}
	fs.cycle = 0
	fs.step = 0
	modAPU.DebugZ("frame counter").Int("mode", fs.mode).Bool("inhibit", fs.inhibit).End()
}

func (apu *APU) restartSample() {
	apu.dmc.addr = 0xC000 | uint16(apu.DMCADDR.Value)<<6
	apu.dmc.remaining = int(apu.DMCLEN.Value)<<4 | 1
	apu.dmc.timer = apu.samplePeriod()
}

// samplePeriod returns the number of CPU cycles between sample byte fetches.
func (apu *APU) samplePeriod() int32 {
	return dmcRates[apu.DMCFREQ.Value&0x0F] * 8
}

// Tick advances the APU by one CPU cycle.
func (apu *APU) Tick() {
	apu.tickFrameSequencer()
	apu.tickDMC()
}

func (apu *APU) tickFrameSequencer() {
	fs := &apu.frame
	fs.cycle++
	if fs.cycle < stepCycles[fs.mode][fs.step] {
		return
	}

	// The IRQ flag is raised during the last 3 cycles of the 4-step sequence.
	if fs.mode == 0 && fs.step >= 3 && !fs.inhibit {
		if !fs.irqFlag {
			modAPU.DebugZ("frame IRQ").Int64("sequence", fs.sequence).End()
		}
		fs.irqFlag = true
		apu.cpu.SetIRQSource(IRQFrameCounter)
	}

	fs.step++
	if fs.step == len(stepCycles[fs.mode]) {
		fs.step = 0
		fs.cycle = 0
		fs.sequence++
	}
}

func (apu *APU) tickDMC() {
	dmc := &apu.dmc
	if dmc.remaining == 0 {
		return
	}
	if dmc.timer--; dmc.timer > 0 {
		return
	}
	dmc.timer = apu.samplePeriod()

	apu.dma.FetchSample(dmc.addr)
	dmc.addr++
	if dmc.addr == 0 {
		dmc.addr = 0x8000
	}
	dmc.remaining--
	if dmc.remaining > 0 {
		return
	}

	switch {
	case apu.DMCFREQ.Bit(dmcLoop):
		apu.restartSample()
	case apu.DMCFREQ.Bit(dmcIRQEnable):
		dmc.irqFlag = true
		apu.cpu.SetIRQSource(IRQDMC)
	}
}

// MapRegisters maps the registers at $4000-$401F.
func (apu *APU) MapRegisters(bus *hwio.Table) {
	bus.MapBank(0x4000, apu, 0)
}

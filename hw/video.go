package hw

import (
	"famicore/emu/log"
	"famicore/hw/hwio"
)

var modVideo = log.NewModule("video")

const (
	DotsPerScanline   = 341
	ScanlinesPerFrame = 262
	DotsPerFrame      = DotsPerScanline * ScanlinesPerFrame

	vblankScanline    = 241
	preRenderScanline = 261
)

const (
	ctrlNMIEnable  = 7 // bit in $2000
	statusVBlank   = 7 // bit in $2002
	statusRegsSize = 8 // registers are mirrored every 8 bytes
)

// Video is the timing half of the picture unit: it counts dots and scanlines
// and drives the NMI line at the start of vertical blank. It produces no
// pixels. It also holds sprite memory, the destination of OAM DMA.
type Video struct {
	cpu *CPU

	PPUCTRL   hwio.Reg8 `hwio:"offset=0x0,writeonly,wcb"`
	PPUSTATUS hwio.Reg8 `hwio:"offset=0x2,readonly,rcb"`
	OAMADDR   hwio.Reg8 `hwio:"offset=0x3,writeonly"`
	OAMDATA   hwio.Reg8 `hwio:"offset=0x4,rcb,wcb,pcb"`

	OAM [256]byte

	Scanline int
	Dot      int
	Frame    int64
}

// NewVideo returns a reset video unit raising NMIs on cpu.
func NewVideo(cpu *CPU) *Video {
	v := &Video{cpu: cpu}
	hwio.MustInitRegs(v)
	v.Reset()
	return v
}

// MapRegisters maps the registers at $2000-$3FFF.
func (v *Video) MapRegisters(bus *hwio.Table) {
	for addr := 0x2000; addr < 0x4000; addr += statusRegsSize {
		bus.MapBank(uint16(addr), v, 0)
	}
}

func (v *Video) Reset() {
	v.PPUCTRL.Value = 0
	v.PPUSTATUS.Value = 0
	v.Scanline = 0
	v.Dot = 0
	v.updateNMI()
}

func (v *Video) nmiOutput() bool {
	return v.PPUCTRL.Bit(ctrlNMIEnable) && v.PPUSTATUS.Bit(statusVBlank)
}

func (v *Video) updateNMI() {
	v.cpu.SetNMILine(v.nmiOutput())
}

// WritePPUCTRL handles $2000. Enabling NMI during vertical blank raises an
// edge immediately.
func (v *Video) WritePPUCTRL(_, _ uint8) {
	v.updateNMI()
}

// ReadPPUSTATUS handles $2002. Reading clears the vertical blank flag.
func (v *Video) ReadPPUSTATUS(val uint8) uint8 {
	v.PPUSTATUS.ClearBit(statusVBlank)
	v.updateNMI()
	return val
}

func (v *Video) ReadOAMDATA(_ uint8) uint8 {
	return v.OAM[v.OAMADDR.Value]
}

func (v *Video) PeekOAMDATA(_ uint8) uint8 {
	return v.OAM[v.OAMADDR.Value]
}

func (v *Video) WriteOAMDATA(_, val uint8) {
	v.OAM[v.OAMADDR.Value] = val
	v.OAMADDR.Value++
}

// InVBlank reports whether the vertical blank flag is set.
func (v *Video) InVBlank() bool {
	return v.PPUSTATUS.Bit(statusVBlank)
}

// Tick advances by one dot. It returns true on the last dot of a frame.
func (v *Video) Tick() bool {
	if v.Dot == 1 {
		switch v.Scanline {
		case vblankScanline:
			v.PPUSTATUS.SetBit(statusVBlank)
			modVideo.DebugZ("vblank start").Int64("frame", v.Frame).End()
			v.updateNMI()
		case preRenderScanline:
			v.PPUSTATUS.ClearBit(statusVBlank)
			v.updateNMI()
		}
	}

	v.Dot++
	if v.Dot < DotsPerScanline {
		return false
	}
	v.Dot = 0
	v.Scanline++
	if v.Scanline < ScanlinesPerFrame {
		return false
	}
	v.Scanline = 0
	v.Frame++
	return true
}

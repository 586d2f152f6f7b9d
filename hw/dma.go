package hw

import (
	"famicore/emu/log"
	"famicore/hw/hwio"
)

var modDMA = log.NewModule("dma")

const (
	// An OAM transfer takes 513 cycles, plus one alignment cycle when it
	// starts on an odd CPU cycle.
	oamDMACycles = 513

	// A DMC sample fetch stalls the CPU for 4 cycles.
	dmcFetchCycles = 4

	oamDataPort = 0x2004
)

// DMA implements the transfers that halt the CPU: OAM DMA to the sprite
// memory port, and DMC sample fetches.
type DMA struct {
	cpu *CPU
	bus Bus

	OAMDMA hwio.Reg8 `hwio:"offset=0x00,writeonly,wcb"`

	// Statistics.
	OAMTransfers int
	DMCFetches   int
}

// NewDMA returns a DMA unit reading from bus and stalling cpu.
func NewDMA(cpu *CPU, bus Bus) *DMA {
	dma := &DMA{cpu: cpu, bus: bus}
	hwio.MustInitRegs(dma)
	return dma
}

// WriteOAMDMA copies page val to the sprite memory port.
func (dma *DMA) WriteOAMDMA(_, val uint8) {
	cycles := oamDMACycles
	if dma.cpu.Cycles&1 != 0 {
		cycles++
	}
	modDMA.DebugZ("OAM DMA transfer").
		Hex8("page", val).
		Int("cycles", cycles).
		End()

	base := uint16(val) << 8
	for i := range uint16(256) {
		dma.bus.Write8(oamDataPort, dma.bus.Read8(base|i))
	}
	dma.OAMTransfers++
	dma.cpu.StealCycles(cycles)
}

// FetchSample reads a DMC sample byte, stalling the CPU.
func (dma *DMA) FetchSample(addr uint16) uint8 {
	modDMA.DebugZ("DMC fetch").Hex16("addr", addr).End()
	dma.DMCFetches++
	dma.cpu.StealCycles(dmcFetchCycles)
	return dma.bus.Read8(addr)
}

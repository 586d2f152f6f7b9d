package emu

import (
	"famicore/hw/snapshot"
)

func (nes *NES) snapshot() *snapshot.NES {
	s := &snapshot.NES{Version: snapshot.Version, Divider: nes.dot}
	nes.CPU.DumpState(&s.CPU)
	nes.Video.DumpState(&s.Video)
	nes.APU.DumpState(&s.APU)
	nes.DMA.DumpState(&s.DMA)
	copy(s.RAM[:], nes.Mem.RAM.Data)
	copy(s.WRAM[:], nes.Mem.WRAM.Data)
	return s
}

// DumpState returns the machine state, JSON-encoded. Program memory is not
// part of it.
func (nes *NES) DumpState() []byte {
	return snapshot.Marshal(nes.snapshot())
}

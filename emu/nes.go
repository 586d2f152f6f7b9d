package emu

import (
	"context"
	"fmt"

	"famicore/emu/log"
	"famicore/hw"
	"famicore/hw/hwio"
)

const (
	// CPU clock divider, in video dots.
	dotsPerCPUCycle = 3

	oamDMAAddr = 0x4014
)

// NES is the machine: the CPU and its timing collaborators wired on one bus.
type NES struct {
	Bus   *hwio.Table
	CPU   *hw.CPU
	Video *hw.Video
	APU   *hw.APU
	DMA   *hw.DMA
	Mem   memoryMap

	// Coverage records the address of every executed instruction.
	Coverage hwio.Bitset

	img *Image
	dot int
}

type memoryMap struct {
	RAM  hwio.Mem `hwio:"offset=0x0000,size=0x800,vsize=0x2000"`
	WRAM hwio.Mem `hwio:"offset=0x6000,size=0x2000"`
	PRG  hwio.Mem `hwio:"offset=0x8000,size=0x8000,readonly"`
}

func powerUp(img *Image, cfg MachineConfig) (*NES, error) {
	bus := hwio.NewTable("cpu")
	cpu := hw.NewCPU(bus)
	video := hw.NewVideo(cpu)
	dma := hw.NewDMA(cpu, bus)
	apu := hw.NewAPU(cpu, dma)

	nes := &NES{
		Bus:   bus,
		CPU:   cpu,
		Video: video,
		APU:   apu,
		DMA:   dma,
		img:   img,
	}
	cpu.Coverage = &nes.Coverage

	if err := hwio.InitRegs(&nes.Mem); err != nil {
		return nil, err
	}
	// Programs commonly write to ROM to control mappers.
	nes.Mem.PRG.Flags |= hwio.MemFlagNoROLog

	bus.MapBank(0x0000, &nes.Mem, 0)
	video.MapRegisters(bus)
	apu.MapRegisters(bus)
	bus.MapBank(oamDMAAddr, dma, 0)

	if err := nes.load(img, cfg.ResetVector); err != nil {
		return nil, err
	}

	nes.PowerUp()
	return nes, nil
}

// load copies the image into memory, then patches the reset vector if
// resetVector is not zero.
func (nes *NES) load(img *Image, resetVector uint16) error {
	addr := uint32(img.LoadAddr)
	for range img.Mirror {
		data := img.Data
		for len(data) > 0 {
			if addr > 0xFFFF {
				return fmt.Errorf("image overflows address space")
			}
			dst := nes.Bus.FetchPointer(uint16(addr))
			if dst == nil {
				return fmt.Errorf("no memory at $%04X", addr)
			}
			n := copy(dst, data)
			data = data[n:]
			addr += uint32(n)
		}
	}

	log.ModEmu.InfoZ("Image loaded").
		String("name", img.Name).
		Hex16("addr", img.LoadAddr).
		Int("size", len(img.Data)*img.Mirror).
		End()

	if resetVector != 0 {
		vec := nes.Bus.FetchPointer(hw.ResetVector)
		if len(vec) < 2 {
			return fmt.Errorf("reset vector is not in memory")
		}
		vec[0] = uint8(resetVector)
		vec[1] = uint8(resetVector >> 8)
		log.ModEmu.InfoZ("Reset vector overridden").Hex16("pc", resetVector).End()
	}
	return nil
}

// PowerUp puts every component in its power-on state.
func (nes *NES) PowerUp() {
	nes.dot = 0
	nes.Video.Reset()
	nes.APU.Reset()
	nes.CPU.PowerUp()
}

// Reset presses the reset button. Memory is preserved.
func (nes *NES) Reset() {
	nes.dot = 0
	nes.Video.Reset()
	nes.APU.Reset()
	nes.CPU.Reset()
}

// RunOneFrame runs the machine for one video frame. The CPU and APU are
// clocked every third dot, the APU first so that the interrupt lines it
// drives are sampled by the CPU in the same cycle.
//
// A CPU contract violation panics with a *hw.FatalError, see RunFrames.
func (nes *NES) RunOneFrame() {
	for {
		end := nes.Video.Tick()
		if nes.dot++; nes.dot == dotsPerCPUCycle {
			nes.dot = 0
			nes.APU.Tick()
			nes.CPU.Tick()
		}
		if end {
			return
		}
	}
}

// RunFrames runs n frames, or until ctx is done if n is zero. A CPU contract
// violation stops the machine and is returned as a *hw.FatalError.
func (nes *NES) RunFrames(ctx context.Context, n int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*hw.FatalError)
			if !ok {
				panic(r)
			}
			err = fe
		}
	}()

	for i := 0; n == 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		nes.RunOneFrame()
	}
	return nil
}

package emu

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"

	"famicore/emu/log"
	"famicore/hw"
)

// Emulator runs a machine and accepts control requests (stop, reset,
// restart) from other goroutines.
type Emulator struct {
	NES *NES
	cfg Config

	// These are accessed concurrently by the emulator loop and its
	// controller (signal handler, debugger).
	quit    atomic.Bool
	reset   atomic.Bool
	restart atomic.Bool

	dumpPath string
}

// Launch powers the machine up with the given image. It doesn't start the
// emulation loop, call Run for that.
func Launch(img *Image, cfg Config) (*Emulator, error) {
	nes, err := powerUp(img, cfg.Machine)
	if err != nil {
		return nil, fmt.Errorf("power up failed: %s", err)
	}

	// CPU execution trace setup.
	if cfg.TraceOut != nil {
		cfg.Trace.Check()
		nes.CPU.SetTraceOutput(cfg.TraceOut, cfg.Trace.TraceFormat())
	}

	return &Emulator{
		NES: nes,
		cfg: cfg,
	}, nil
}

// Run runs the emulation loop until the configured number of frames is
// reached, ctx is done, Stop is called or the CPU halts.
func (e *Emulator) Run(ctx context.Context) error {
	log.AddContext(e.NES.CPU)
	defer log.RemoveContext(e.NES.CPU)

	err := e.loop(ctx)
	log.ModEmu.InfoZ("Emulation loop exited").
		Int64("frame", e.NES.Video.Frame).
		Int64("cycles", e.NES.CPU.Cycles).
		Int("coverage", e.NES.Coverage.Count()).
		End()

	if e.dumpPath != "" {
		e.dump()
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (e *Emulator) loop(ctx context.Context) error {
	frames := e.cfg.Machine.Frames
	for i := 0; frames == 0 || i < frames; i++ {
		if e.shouldStop() {
			return nil
		}
		if err := e.NES.RunFrames(ctx, 1); err != nil {
			var fe *hw.FatalError
			if errors.As(err, &fe) {
				log.ModEmu.ErrorZ("CPU halted").Error("err", err).End()
			}
			return err
		}
		e.handleReset()
	}
	return nil
}

func (e *Emulator) dump() {
	state := e.NES.DumpState()
	if err := os.WriteFile(e.dumpPath, state, 0644); err != nil {
		log.ModEmu.WarnZ("Failed to dump state").String("path", e.dumpPath).Error("err", err).End()
		return
	}
	log.ModEmu.InfoZ("State dumped").String("path", e.dumpPath).Int("size", len(state)).End()
}

// SetDumpPath sets the file the machine state is written to when the loop
// exits.
func (e *Emulator) SetDumpPath(path string) { e.dumpPath = path }

// Stop, Reset and Restart allow to control the emulator loop in a
// concurrent-safe way.

func (e *Emulator) Reset()   { e.reset.Store(true) }
func (e *Emulator) Restart() { e.restart.Store(true) }
func (e *Emulator) Stop()    { e.quit.Store(true) }

func (e *Emulator) shouldStop() bool {
	return e.quit.Load()
}

func (e *Emulator) handleReset() {
	if e.reset.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("Performing soft reset").End()
		e.NES.Reset()
	} else if e.restart.CompareAndSwap(true, false) {
		log.ModEmu.InfoZ("Performing hard reset").End()
		e.NES.PowerUp()
	}
}

// RunTestImage powers up a machine with img and runs it as a test program.
func RunTestImage(ctx context.Context, img *Image, cfg Config) (TestResult, error) {
	nes, err := powerUp(img, cfg.Machine)
	if err != nil {
		return TestResult{}, err
	}
	cfg.Check.Check()
	return nes.RunTest(ctx, cfg.Check)
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/pprof"

	"famicore/emu"
	"famicore/emu/debugger"
	"famicore/emu/rpc"
)

// runMain runs the emulator with the given image.
func runMain(ctx context.Context, args Run, cfg emu.Config) error {
	img, err := emu.OpenImage(args.ImagePath, cfg.Machine)
	if err != nil {
		return err
	}

	var traceout io.WriteCloser
	if args.Trace != nil {
		traceout = args.Trace
		defer traceout.Close()
	}
	cfg.TraceOut = traceout
	if args.TraceFormat != "" {
		cfg.Trace.Format = args.TraceFormat
	}
	if args.Frames >= 0 {
		cfg.Machine.Frames = args.Frames
	}

	emulator, err := emu.Launch(img, cfg)
	if err != nil {
		return fmt.Errorf("failed to start emulator: %w", err)
	}
	if args.DumpState != "" {
		emulator.SetDumpPath(args.DumpState)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if args.Debug != "" {
		dbg := debugger.New(emulator.NES.CPU, emulator.NES.Bus)
		if args.Pause {
			dbg.Pause()
		}
		server, err := rpc.NewServer(args.Debug, emulator, dbg)
		if err != nil {
			return fmt.Errorf("RPC error: %w", err)
		}
		defer server.Close()

		// A paused CPU would never see the cancellation.
		go func() {
			<-ctx.Done()
			dbg.Detach()
		}()
	}

	if args.CPUProfile != "" {
		f, err := os.Create(args.CPUProfile)
		checkf(err, "failed to create cpu profile file")
		checkf(pprof.StartCPUProfile(f), "failed to start cpu profile")
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
			fmt.Println("CPU profile written to", args.CPUProfile)
		}()
	}

	return emulator.Run(ctx)
}

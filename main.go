package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"famicore/emu"
)

func main() {
	args := parseArgs(os.Args[1:])

	switch args.mode {
	case versionMode:
		fmt.Println("famicore", version())
		return
	case opcodesMode:
		checkf(opcodesMain(os.Stdout, args.Opcodes), "failed to print opcodes")
		return
	case inspectMode:
		checkf(inspectMain(os.Stdout, args.Inspect), "failed to inspect state dump")
		return
	}

	cfg, err := emu.LoadConfigOrDefault(args.Config)
	checkf(err, "failed to load configuration")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch args.mode {
	case runMode:
		checkf(runMain(ctx, args.Run, cfg), "emulation failed")
	case checkMode:
		failed, err := checkMain(ctx, os.Stdout, args.Check, cfg)
		checkf(err, "check failed")
		if failed > 0 {
			stop()
			os.Exit(1)
		}
	case disasmMode:
		checkf(disasmMain(os.Stdout, args.Disasm, cfg), "failed to disassemble")
	}
}

func version() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" {
		return "(devel)"
	}
	return bi.Main.Version
}

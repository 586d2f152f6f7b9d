// Package rpc exposes emulator control and the debugger over net/rpc.
package rpc

import "famicore/emu/log"

var modRPC = log.NewModule("rpc")

// Breakpoint is the argument of the SetBreakpoint call.
type Breakpoint struct {
	Addr uint16
	Set  bool
}

// Package debugger implements a CPU debugger: call stack tracking,
// breakpoints and instruction stepping. It is driven remotely through the rpc
// package.
package debugger

import (
	"strings"
	"sync"

	"famicore/emu/log"
	"famicore/hw"
)

var modDbg = log.NewModule("dbg")

type status uint8

const (
	running status = iota
	paused
	stepping
	detached
)

func (s status) String() string {
	switch s {
	case running:
		return "running"
	case paused:
		return "paused"
	case stepping:
		return "stepping"
	case detached:
		return "detached"
	}
	return "unknown"
}

const (
	opJSR = 0x20
	opRTI = 0x40
	opRTS = 0x60
)

// State is a view of the debugger and the CPU, taken when the CPU is paused.
// When running, only Status is filled.
type State struct {
	Status string
	PC     uint16
	Disasm string
	Stack  []Frame
}

// A Debugger monitors a CPU. In order to be able to debug a program at any
// moment, it keeps track of the call stack even when no breakpoint is set.
//
// The CPU side (Trace, Interrupt) runs in the emulation goroutine, everything
// else can be called concurrently.
type Debugger struct {
	cpu *hw.CPU
	mem hw.Peeker

	mu          sync.Mutex
	resumed     *sync.Cond
	status      status
	breakpoints map[uint16]struct{}

	pc         uint16
	prevPC     uint16
	prevOpcode uint8
	cstack     callStack
}

// New attaches a debugger to cpu. mem is used to read opcodes without side
// effects.
func New(cpu *hw.CPU, mem hw.Peeker) *Debugger {
	dbg := &Debugger{
		cpu:         cpu,
		mem:         mem,
		breakpoints: make(map[uint16]struct{}),
	}
	dbg.resumed = sync.NewCond(&dbg.mu)
	cpu.SetDebugger(dbg)
	return dbg
}

// Trace is called before each opcode is executed. It blocks while the CPU is
// paused.
func (d *Debugger) Trace(pc uint16) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.updateStack(pc)
	d.pc = pc
	d.prevPC = pc
	d.prevOpcode = d.mem.Peek8(pc)

	switch d.status {
	case running:
		if _, ok := d.breakpoints[pc]; !ok {
			return
		}
		modDbg.InfoZ("breakpoint hit").Hex16("pc", pc).End()
		d.status = paused
	case stepping:
		d.status = paused
	case detached:
		return
	}

	for d.status == paused {
		d.resumed.Wait()
	}
}

func (d *Debugger) updateStack(dst uint16) {
	switch d.prevOpcode {
	case opJSR:
		d.cstack.push(d.prevPC, dst, d.prevPC+3, frameCall)
	case opRTS, opRTI:
		d.cstack.pop()
	}
}

func (d *Debugger) Interrupt(prevpc, curpc uint16, isNMI bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	kind := frameIRQ
	if isNMI {
		kind = frameNMI
	}
	// The instruction before the interrupt may have changed the stack.
	d.updateStack(prevpc)
	d.prevOpcode = 0xFF
	d.cstack.push(prevpc, curpc, prevpc, kind)
}

func (d *Debugger) WatchRead(addr uint16)              {}
func (d *Debugger) WatchWrite(addr uint16, val uint16) {}

// ResetStack forgets the call stack, after a reset.
func (d *Debugger) ResetStack() {
	d.mu.Lock()
	d.cstack.reset()
	d.prevOpcode = 0xFF
	d.mu.Unlock()
}

// SetBreakpoint sets or clears a breakpoint at addr.
func (d *Debugger) SetBreakpoint(addr uint16, set bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if set {
		d.breakpoints[addr] = struct{}{}
	} else {
		delete(d.breakpoints, addr)
	}
}

// Pause stops the CPU before the next instruction.
func (d *Debugger) Pause() {
	d.setStatus(stepping)
}

// Continue resumes execution.
func (d *Debugger) Continue() {
	d.setStatus(running)
}

// Step executes one instruction then pauses again.
func (d *Debugger) Step() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status == paused {
		d.status = stepping
		d.resumed.Broadcast()
	}
}

// Detach resumes execution and disables breakpoints for good. It must be
// called before stopping the emulator.
func (d *Debugger) Detach() {
	d.setStatus(detached)
}

func (d *Debugger) setStatus(s status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.status == detached {
		return
	}
	d.status = s
	d.resumed.Broadcast()
}

func (d *Debugger) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	st := State{Status: d.status.String()}
	if d.status != paused {
		return st
	}
	st.PC = d.pc
	st.Disasm = strings.TrimRight(hw.Disasm(d.mem, d.pc).String(), " ")
	st.Stack = d.cstack.build(d.pc)
	return st
}

package hw

import (
	"io"

	"famicore/emu/log"
	"famicore/hw/hwio"
)

// Locations of interrupt vectors.
const (
	NMIVector   = 0xFFFA
	ResetVector = 0xFFFC
	IRQVector   = 0xFFFE
)

const (
	// interruptCycles is the length of the NMI and IRQ entry sequences.
	interruptCycles = 7

	resetSP = 0xFD
)

// Bus is the memory bus as seen by the CPU. Device routing happens behind it.
type Bus interface {
	Read8(addr uint16) uint8
	Write8(addr uint16, val uint8)
}

// State is what the CPU did during its last cycle.
type State uint8

const (
	Idle         State = iota // idle
	Executing                 // exec
	ServicingNMI              // nmi
	ServicingIRQ              // irq
	Stealing                  // steal
)

// LastInstruction describes the most recently dispatched instruction.
type LastInstruction struct {
	PC      uint16
	Opcode  uint8
	Guessed int   // base cycle count used to pace the instruction
	Cycles  int   // actual cycle count, penalties included
	Cycle   int64 // value of CPU.Cycles on the dispatch cycle
}

// CPU is a cycle-stepped 2A03 core.
type CPU struct {
	bus Bus

	A, X, Y uint8
	SP      uint8
	PC      uint16
	P       P

	// Cycles counts every cycle ticked since creation, stolen ones included.
	Cycles int64

	// Coverage, if set, records the address of every fetched opcode.
	Coverage *hwio.Bitset

	// scheduler
	state   State
	opcode  uint8  // cached across the cycles of the in-flight instruction
	opPC    uint16 // address of the in-flight instruction
	elapsed int    // cycles spent in the current instruction or interrupt
	stolen  int    // cycles to idle before anything else happens
	extra   int    // penalty cycles observed during the last dispatch
	crossed bool   // page crossed during the last operand resolution

	nmiLine    bool // last level seen on the NMI line
	nmiPending bool // NMI edge latched, not yet serviced
	inNMI      bool
	irqFlag    IRQSource
	inIRQ      bool

	last LastInstruction

	tracer *tracer
	dbg    Debugger
}

// NewCPU returns a CPU wired to bus. Call Reset before ticking it.
func NewCPU(bus Bus) *CPU {
	return &CPU{
		bus: bus,
		dbg: nopDebugger{},
	}
}

func (c *CPU) Read8(addr uint16) uint8 {
	c.dbg.WatchRead(addr)
	return c.bus.Read8(addr)
}

func (c *CPU) Write8(addr uint16, val uint8) {
	c.dbg.WatchWrite(addr, uint16(val))
	c.bus.Write8(addr, val)
}

func (c *CPU) Read16(addr uint16) uint16 {
	return hwio.Read16(c, addr)
}

// PowerUp clears the registers, then resets.
func (c *CPU) PowerUp() {
	c.A, c.X, c.Y = 0, 0, 0
	c.P = P{}
	c.irqFlag = 0
	c.nmiLine = false
	c.Reset()
}

// Reset loads PC from the reset vector, sets SP to $FD and sets the I and U
// flags. Other registers are preserved. Any in-flight instruction, interrupt
// sequence or pending steal is abandoned.
func (c *CPU) Reset() {
	c.PC = c.Read16(ResetVector)
	c.SP = resetSP
	c.P.I = true
	c.P.U = true

	c.state = Idle
	c.elapsed = 0
	c.stolen = 0
	c.extra = 0
	c.nmiPending = false
	c.inNMI = false
	c.inIRQ = false

	log.ModCPU.InfoZ("reset").Hex16("pc", c.PC).End()
}

// Tick advances the CPU by one cycle. It returns true on the cycle an
// instruction takes effect, and also on the last cycle of an NMI or IRQ entry
// sequence: State tells the two apart. Stolen and penalty cycles return false.
//
// An instruction takes effect, all at once, on the last of its base cycles.
// Penalty cycles observed during execution are then idled before the next
// fetch, as are cycles stolen by other devices.
func (c *CPU) Tick() bool {
	c.Cycles++

	if c.stolen > 0 {
		c.stolen--
		c.state = Stealing
		return false
	}

	// Interrupts are only acknowledged between instructions.
	if c.inNMI || (c.elapsed == 0 && c.nmiPending) {
		c.inNMI = true
		c.state = ServicingNMI
		if c.elapsed++; c.elapsed < interruptCycles {
			return false
		}
		c.inNMI = false
		c.nmiPending = false
		c.interrupt(NMIVector, true)
		return true
	}

	if c.inIRQ || (c.elapsed == 0 && c.irqFlag != 0 && !c.P.I) {
		c.inIRQ = true
		c.state = ServicingIRQ
		if c.elapsed++; c.elapsed < interruptCycles {
			return false
		}
		c.inIRQ = false
		c.interrupt(IRQVector, false)
		return true
	}

	if c.elapsed == 0 {
		c.fetch()
	}
	c.state = Executing
	c.elapsed++

	in := &opcodes[c.opcode]
	if c.elapsed < int(in.Cycles) {
		return false
	}
	c.dispatch(in)
	return true
}

func (c *CPU) fetch() {
	c.opPC = c.PC
	c.opcode = c.Read8(c.PC)

	if c.Coverage != nil {
		c.Coverage.Set(c.PC)
	}
	c.dbg.Trace(c.PC)
	if c.tracer != nil {
		c.tracer.write(c.snapshot())
	}
	if !opcodes[c.opcode].Defined() {
		c.fatal(UndefinedOpcode, opcodes[c.opcode].Name)
	}
}

// dispatch executes the in-flight instruction and schedules the cycles it
// took beyond its base count.
func (c *CPU) dispatch(in *Instruction) {
	c.crossed = false
	c.extra = 0

	oper := c.resolve(in.Mode, c.opPC+1)
	c.PC = c.opPC + uint16(in.Size)
	in.exec(c, oper)

	if in.Penalty == PenaltyPage && c.crossed {
		c.extra = 1
	}

	guessed := int(in.Cycles)
	actual := guessed + c.extra
	c.last = LastInstruction{
		PC:      c.opPC,
		Opcode:  c.opcode,
		Guessed: guessed,
		Cycles:  actual,
		Cycle:   c.Cycles,
	}

	makeup := actual - guessed
	if makeup < 0 {
		c.fatal(CycleUnderrun, "")
	}
	c.stolen += makeup
	c.elapsed = 0
}

// interrupt runs the last cycle of an interrupt entry sequence: PC then P are
// pushed, I is set and PC is loaded from vector.
func (c *CPU) interrupt(vector uint16, isNMI bool) {
	prevpc := c.PC
	c.push16(c.PC)
	c.pushInterruptFlags()
	c.P.I = true
	c.PC = c.Read16(vector)
	c.elapsed = 0

	log.ModCPU.DebugZ("interrupt").
		Bool("nmi", isNMI).
		Stringer("irq", c.irqFlag).
		Hex16("from", prevpc).
		Hex16("to", c.PC).
		End()
	c.dbg.Interrupt(prevpc, c.PC, isNMI)
}

// StealCycles makes the CPU idle for n cycles, on top of any steal already
// pending. Registers are untouched while idling.
func (c *CPU) StealCycles(n int) {
	if n < 0 {
		c.fatal(NegativeSteal, "")
	}
	c.stolen += n
}

// PendingCycles returns the number of cycles still to be idled.
func (c *CPU) PendingCycles() int {
	return c.stolen
}

// State returns what the CPU did during its last cycle.
func (c *CPU) State() State {
	return c.state
}

// LastInstruction returns diagnostics about the last dispatched instruction.
func (c *CPU) LastInstruction() LastInstruction {
	return c.last
}

// AtBoundary reports whether the next cycle starts an instruction or an
// interrupt sequence (no pending steal, nothing in flight).
func (c *CPU) AtBoundary() bool {
	return c.elapsed == 0 && c.stolen == 0
}

// SetTraceOutput enables the execution trace, written to w before each
// instruction is executed. A nil w disables it.
func (c *CPU) SetTraceOutput(w io.Writer, format TraceFormat) {
	if w == nil {
		c.tracer = nil
		return
	}
	c.tracer = &tracer{w: w, d: c, format: format}
}

// SetDebugger attaches dbg to the CPU. A nil dbg detaches it.
func (c *CPU) SetDebugger(dbg Debugger) {
	if dbg == nil {
		dbg = nopDebugger{}
	}
	c.dbg = dbg
}

// AddLogContext adds the address of the in-flight instruction and the cycle
// counter to log lines.
func (c *CPU) AddLogContext(z *log.EntryZ) {
	z.Hex16("pc", c.opPC).Int64("cycle", c.Cycles)
}

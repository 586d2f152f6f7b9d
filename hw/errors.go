package hw

import (
	"fmt"

	"famicore/emu/log"
)

// FatalKind classifies the contract violations that stop the CPU.
type FatalKind uint8

const (
	// UndefinedOpcode means an opcode with no entry in the instruction table
	// was fetched.
	UndefinedOpcode FatalKind = iota + 1
	// CycleUnderrun means an instruction completed in fewer cycles than the
	// base count used to pace it.
	CycleUnderrun
	// NegativeSteal means a collaborator asked to steal a negative number of
	// cycles.
	NegativeSteal
)

func (k FatalKind) String() string {
	switch k {
	case UndefinedOpcode:
		return "undefined opcode"
	case CycleUnderrun:
		return "cycle underrun"
	case NegativeSteal:
		return "negative steal"
	}
	return fmt.Sprintf("FatalKind(%d)", uint8(k))
}

// FatalError is the value the CPU panics with when the instruction table or
// the scheduler invariants are violated. It is not recoverable: the emulated
// machine state is undefined after it.
type FatalError struct {
	Kind   FatalKind
	PC     uint16
	Opcode uint8
	Cycle  int64
	Detail string
}

func (e *FatalError) Error() string {
	s := fmt.Sprintf("cpu: %s at $%04X (opcode $%02X, cycle %d)", e.Kind, e.PC, e.Opcode, e.Cycle)
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	return s
}

func (c *CPU) fatal(kind FatalKind, detail string) {
	err := &FatalError{
		Kind:   kind,
		PC:     c.opPC,
		Opcode: c.opcode,
		Cycle:  c.Cycles,
		Detail: detail,
	}
	log.ModCPU.ErrorZ("CPU halted").
		Stringer("kind", kind).
		Hex16("PC", c.opPC).
		Hex8("opcode", c.opcode).
		String("detail", detail).
		End()
	panic(err)
}

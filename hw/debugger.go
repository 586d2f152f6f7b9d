package hw

// A Debugger monitors a CPU.
type Debugger interface {
	// Trace is called before each opcode is executed, with the address of the
	// opcode.
	Trace(pc uint16)

	// Interrupt is called when an interrupt entry sequence completes. prevpc
	// is the address of the instruction that was about to be executed, curpc
	// is the address of the handler.
	Interrupt(prevpc, curpc uint16, isNMI bool)

	// WatchRead/WatchWrite are called before each memory access.
	WatchRead(addr uint16)
	WatchWrite(addr uint16, val uint16)
}

type nopDebugger struct{}

func (nopDebugger) Trace(pc uint16)                            {}
func (nopDebugger) Interrupt(prevpc, curpc uint16, isNMI bool) {}
func (nopDebugger) WatchRead(addr uint16)                      {}
func (nopDebugger) WatchWrite(addr uint16, val uint16)         {}

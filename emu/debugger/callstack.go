package debugger

import (
	"fmt"
	"slices"
)

type frameKind uint8

const (
	frameCall frameKind = iota
	frameNMI
	frameIRQ
)

type stackFrame struct {
	src    uint16
	target uint16
	ret    uint16
	kind   frameKind
}

// Frame describes one level of the call stack: the entry point of the
// routine and the address being executed in it.
type Frame struct {
	Entry string
	PC    string
}

type callStack []stackFrame

func (cs *callStack) push(src, dst, ret uint16, kind frameKind) {
	*cs = append(*cs, stackFrame{
		src:    src,
		target: dst,
		ret:    ret,
		kind:   kind,
	})
}

func (cs *callStack) len() int {
	return len(*cs)
}

func (cs *callStack) pop() {
	if cs.len() == 0 {
		return
	}
	*cs = (*cs)[:cs.len()-1]
}

func (cs *callStack) reset() {
	*cs = (*cs)[:0]
}

// build returns the frames, innermost first, pc being the address executed
// in the innermost one.
func (cs *callStack) build(pc uint16) []Frame {
	frames := make([]Frame, 0, cs.len()+1)
	var curf *stackFrame
	for i, f := range *cs {
		if i > 0 {
			curf = &((*cs)[i-1])
		}
		frames = slices.Insert(frames, 0, Frame{
			Entry: cs.entryPoint(curf),
			PC:    fmt.Sprintf("$%04X", f.src),
		})
	}

	// Current frame
	curf = nil
	if cs.len() > 0 {
		curf = &((*cs)[cs.len()-1])
	}

	return slices.Insert(frames, 0, Frame{
		Entry: cs.entryPoint(curf),
		PC:    fmt.Sprintf("$%04X", pc),
	})
}

func (callStack) entryPoint(f *stackFrame) string {
	if f == nil {
		return "[bottom of stack]"
	}

	str := fmt.Sprintf("%04X", f.target)
	switch f.kind {
	case frameNMI:
		return "[nmi] $" + str
	case frameIRQ:
		return "[irq] $" + str
	default:
		return str
	}
}

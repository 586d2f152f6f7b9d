package hw

import (
	"strings"

	"famicore/emu/log"
)

// IRQSource identifies a device driving the IRQ line. The line is asserted
// as long as at least one source holds it.
type IRQSource uint8

const (
	IRQExternal IRQSource = 1 << iota
	IRQFrameCounter
	IRQDMC
	IRQMapper

	numIRQSources = 4
)

var irqSourceNames = [numIRQSources]string{
	"ext",
	"fcnt",
	"dmc",
	"mapper",
}

func (irq IRQSource) String() string {
	var names []string
	for i := range numIRQSources {
		if irq&(1<<i) != 0 {
			names = append(names, irqSourceNames[i])
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// TriggerNMI latches an NMI edge. It is serviced at the next instruction
// boundary, regardless of the I flag.
func (c *CPU) TriggerNMI() {
	c.nmiPending = true
}

// SetNMILine drives the NMI line. A low to high transition latches an edge.
func (c *CPU) SetNMILine(level bool) {
	if level && !c.nmiLine {
		log.ModCPU.DebugZ("NMI edge").End()
		c.nmiPending = true
	}
	c.nmiLine = level
}

// NMIPending reports whether an NMI edge is latched and not yet serviced.
func (c *CPU) NMIPending() bool {
	return c.nmiPending
}

// SetIRQSource makes src hold the IRQ line.
func (c *CPU) SetIRQSource(src IRQSource) {
	c.irqFlag |= src
}

// ClearIRQSource releases the IRQ line held by src.
func (c *CPU) ClearIRQSource(src IRQSource) {
	c.irqFlag &^= src
}

// HasIRQSource reports whether src currently holds the IRQ line.
func (c *CPU) HasIRQSource(src IRQSource) bool {
	return c.irqFlag&src != 0
}

// IRQLine reports whether the IRQ line is asserted, masked or not.
func (c *CPU) IRQLine() bool {
	return c.irqFlag != 0
}

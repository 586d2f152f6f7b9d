package emu

import (
	"testing"

	"famicore/hw"
)

// prg assembles a test program into a 32k PRG image mapped at $8000.
type prg struct {
	buf [prgSize]byte
	pc  uint16
}

const (
	resetAddr = 0x8000
	nmiAddr   = 0x9000
	irqAddr   = 0x9800
)

func newPRG() *prg {
	p := &prg{pc: resetAddr}
	p.vector(hw.NMIVector, nmiAddr)
	p.vector(hw.ResetVector, resetAddr)
	p.vector(hw.IRQVector, irqAddr)
	return p
}

func (p *prg) vector(vec, addr uint16) {
	p.buf[vec-prgAddr] = uint8(addr)
	p.buf[vec-prgAddr+1] = uint8(addr >> 8)
}

func (p *prg) org(addr uint16) *prg {
	p.pc = addr
	return p
}

func (p *prg) emit(b ...byte) *prg {
	for _, v := range b {
		p.buf[p.pc-prgAddr] = v
		p.pc++
	}
	return p
}

// store emits LDA #val; STA addr.
func (p *prg) store(addr uint16, val uint8) *prg {
	return p.emit(0xA9, val, 0x8D, uint8(addr), uint8(addr>>8))
}

// signature emits the code writing the test status signature.
func (p *prg) signature() *prg {
	return p.store(0x6001, 0xDE).store(0x6002, 0xB0).store(0x6003, 0x61)
}

// text emits the code writing s at $6004.
func (p *prg) text(s string) *prg {
	for i := range len(s) {
		p.store(0x6004+uint16(i), s[i])
	}
	return p.store(0x6004+uint16(len(s)), 0)
}

// halt emits an infinite loop.
func (p *prg) halt() *prg {
	return p.emit(0x4C, uint8(p.pc), uint8(p.pc>>8))
}

func (p *prg) image() *Image {
	return &Image{Name: "test", Data: p.buf[:], LoadAddr: prgAddr, Mirror: 1}
}

func mustPowerUp(t *testing.T, img *Image) *NES {
	t.Helper()

	nes, err := powerUp(img, MachineConfig{})
	if err != nil {
		t.Fatal(err)
	}
	return nes
}

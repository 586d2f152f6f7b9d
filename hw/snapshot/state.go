// Package snapshot defines the JSON dump of the machine state, written for
// inspection by external tools.
package snapshot

// Version is bumped whenever the layout changes.
const Version = 1

type NES struct {
	Version int
	Divider int // dots elapsed since the last CPU cycle
	CPU     CPU
	RAM     [0x800]uint8
	WRAM    [0x2000]uint8
	Video   Video
	APU     APU
	DMA     DMA
}

type CPU struct {
	PC uint16
	SP uint8
	P  uint8
	A  uint8
	X  uint8
	Y  uint8

	Cycles int64

	State   uint8
	Opcode  uint8
	OpPC    uint16
	Elapsed int
	Stolen  int

	NMILine    bool
	NMIPending bool
	InNMI      bool
	IRQFlag    uint8
	InIRQ      bool
}

type Video struct {
	PPUCTRL   uint8
	PPUSTATUS uint8
	OAMADDR   uint8
	OAM       [0x100]uint8

	Scanline int
	Dot      int
	Frame    int64
}

type APU struct {
	FrameCycle   int32
	FrameStep    int
	FrameMode    int
	FrameInhibit bool
	FrameIRQ     bool

	DMCFREQ      uint8
	DMCADDR      uint8
	DMCLEN       uint8
	DMCAddr      uint16
	DMCRemaining int
	DMCTimer     int32
	DMCIRQ       bool
}

type DMA struct {
	OAMTransfers int
	DMCFetches   int
}

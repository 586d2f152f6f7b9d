package emu

import (
	"fmt"
	"os"
	"path/filepath"

	"famicore/ines"
)

const (
	prgAddr = 0x8000
	prgSize = 0x8000
)

// Image is a program ready to be copied into the machine memory.
type Image struct {
	Name     string
	Data     []byte
	LoadAddr uint16
	// Mirror is the number of consecutive copies of Data to load.
	Mirror int
}

// OpenImage reads a program image from path, see DecodeImage.
func OpenImage(path string, cfg MachineConfig) (*Image, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := DecodeImage(buf, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	img.Name = filepath.Base(path)
	return img, nil
}

// DecodeImage accepts iNES roms with no mapper (NROM), whose PRG data is
// mapped at $8000, 16k roms being mirrored at $C000. Any other content is a
// raw binary loaded at cfg.LoadAddr.
func DecodeImage(buf []byte, cfg MachineConfig) (*Image, error) {
	if !ines.IsINES(buf) {
		if len(buf) == 0 {
			return nil, fmt.Errorf("empty image")
		}
		if int(cfg.LoadAddr)+len(buf) > 0x10000 {
			return nil, fmt.Errorf("image too large: %d bytes at $%04X", len(buf), cfg.LoadAddr)
		}
		return &Image{Data: buf, LoadAddr: cfg.LoadAddr, Mirror: 1}, nil
	}

	var rom ines.Rom
	if err := rom.Decode(buf); err != nil {
		return nil, err
	}
	if rom.Mapper() != 0 {
		return nil, fmt.Errorf("unsupported mapper %d", rom.Mapper())
	}

	img := &Image{Data: rom.PRG, LoadAddr: prgAddr}
	switch len(rom.PRG) {
	case ines.PRGBankSize:
		img.Mirror = 2
	case 2 * ines.PRGBankSize:
		img.Mirror = 1
	default:
		return nil, fmt.Errorf("unsupported PRG size %d", len(rom.PRG))
	}
	return img, nil
}

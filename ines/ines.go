// package ines decodes program images in the iNES file format, used for the
// distribution of NES binary programs.
package ines

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	Magic      = "NES\x1a"
	headerSize = 16

	PRGBankSize = 16 << 10
	CHRBankSize = 8 << 10
	trainerSize = 512
)

var ErrNoMagic = errors.New("invalid magic number")

type Rom struct {
	header
	Trainer []byte // 512 bytes if present, or empty
	PRG     []byte // PRG ROM data, multiple of 16k
	CHR     []byte // CHR ROM data, multiple of 8k
}

// IsINES reports whether buf starts with an iNES header.
func IsINES(buf []byte) bool {
	return len(buf) >= headerSize && bytes.HasPrefix(buf, []byte(Magic))
}

// Open loads a rom from file.
func Open(path string) (*Rom, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rom := new(Rom)
	if _, err := rom.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rom, nil
}

// ReadFrom implements io.ReaderFrom.
func (rom *Rom) ReadFrom(r io.Reader) (int64, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	if err := rom.Decode(buf); err != nil {
		return 0, err
	}
	return int64(len(buf)), nil
}

// Decode parses a whole iNES file. Sections alias buf.
func (rom *Rom) Decode(buf []byte) error {
	if err := rom.decode(buf); err != nil {
		return fmt.Errorf("failed to decode header: %w", err)
	}
	off := headerSize

	section := func(name string, size int) ([]byte, error) {
		if len(buf) < off+size {
			return nil, fmt.Errorf("incomplete %s section (%d bytes, want %d)", name, len(buf)-off, size)
		}
		s := buf[off : off+size]
		off += size
		return s, nil
	}

	var err error
	rom.Trainer = nil
	if rom.HasTrainer() {
		if rom.Trainer, err = section("TRAINER", trainerSize); err != nil {
			return err
		}
	}
	if rom.PRG, err = section("PRG", rom.prgsz); err != nil {
		return err
	}
	if rom.CHR, err = section("CHR", rom.chrsz); err != nil {
		return err
	}
	return nil
}

type header struct {
	raw   [headerSize]byte
	prgsz int
	chrsz int
}

func (hdr *header) decode(p []byte) error {
	if len(p) < headerSize {
		return fmt.Errorf("too small, needs %d bytes", headerSize)
	}
	if string(p[:4]) != Magic {
		return ErrNoMagic
	}
	copy(hdr.raw[:], p[:headerSize])

	hdr.prgsz = int(hdr.raw[4]) * PRGBankSize
	hdr.chrsz = int(hdr.raw[5]) * CHRBankSize
	return nil
}

// HasTrainer indicates the presence of a trainer section in the rom.
func (hdr *header) HasTrainer() bool {
	return hdr.raw[6]&0x04 != 0
}

// HasPersistent indicates the presence of battery-backed memory.
func (hdr *header) HasPersistent() bool {
	return hdr.raw[6]&0x02 != 0
}

// Mapper returns the mapper number.
func (hdr *header) Mapper() uint8 {
	return hdr.raw[7]&0xF0 | hdr.raw[6]>>4
}

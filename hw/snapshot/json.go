package snapshot

import (
	"fmt"

	"github.com/go-faster/jx"
)

// Marshal encodes s as JSON.
func Marshal(s *NES) []byte {
	var e jx.Encoder
	s.Encode(&e)
	return e.Bytes()
}

// Unmarshal decodes a JSON snapshot, rejecting other versions.
func Unmarshal(buf []byte) (*NES, error) {
	s := new(NES)
	if err := s.Decode(jx.DecodeBytes(buf)); err != nil {
		return nil, err
	}
	if s.Version != Version {
		return nil, fmt.Errorf("snapshot version %d, want %d", s.Version, Version)
	}
	return s, nil
}

func (s *NES) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("version")
	e.Int(s.Version)
	e.FieldStart("divider")
	e.Int(s.Divider)
	e.FieldStart("cpu")
	s.CPU.Encode(e)
	e.FieldStart("ram")
	e.Base64(s.RAM[:])
	e.FieldStart("wram")
	e.Base64(s.WRAM[:])
	e.FieldStart("video")
	s.Video.Encode(e)
	e.FieldStart("apu")
	s.APU.Encode(e)
	e.FieldStart("dma")
	s.DMA.Encode(e)
	e.ObjEnd()
}

func (s *NES) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "version":
			s.Version, err = d.Int()
		case "divider":
			s.Divider, err = d.Int()
		case "cpu":
			err = s.CPU.Decode(d)
		case "ram":
			err = decodeBytes(d, s.RAM[:])
		case "wram":
			err = decodeBytes(d, s.WRAM[:])
		case "video":
			err = s.Video.Decode(d)
		case "apu":
			err = s.APU.Decode(d)
		case "dma":
			err = s.DMA.Decode(d)
		default:
			err = d.Skip()
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		return nil
	})
}

func (s *CPU) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("pc")
	e.UInt16(s.PC)
	e.FieldStart("sp")
	e.UInt8(s.SP)
	e.FieldStart("p")
	e.UInt8(s.P)
	e.FieldStart("a")
	e.UInt8(s.A)
	e.FieldStart("x")
	e.UInt8(s.X)
	e.FieldStart("y")
	e.UInt8(s.Y)
	e.FieldStart("cycles")
	e.Int64(s.Cycles)
	e.FieldStart("state")
	e.UInt8(s.State)
	e.FieldStart("opcode")
	e.UInt8(s.Opcode)
	e.FieldStart("op_pc")
	e.UInt16(s.OpPC)
	e.FieldStart("elapsed")
	e.Int(s.Elapsed)
	e.FieldStart("stolen")
	e.Int(s.Stolen)
	e.FieldStart("nmi_line")
	e.Bool(s.NMILine)
	e.FieldStart("nmi_pending")
	e.Bool(s.NMIPending)
	e.FieldStart("in_nmi")
	e.Bool(s.InNMI)
	e.FieldStart("irq_flag")
	e.UInt8(s.IRQFlag)
	e.FieldStart("in_irq")
	e.Bool(s.InIRQ)
	e.ObjEnd()
}

func (s *CPU) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "pc":
			s.PC, err = d.UInt16()
		case "sp":
			s.SP, err = d.UInt8()
		case "p":
			s.P, err = d.UInt8()
		case "a":
			s.A, err = d.UInt8()
		case "x":
			s.X, err = d.UInt8()
		case "y":
			s.Y, err = d.UInt8()
		case "cycles":
			s.Cycles, err = d.Int64()
		case "state":
			s.State, err = d.UInt8()
		case "opcode":
			s.Opcode, err = d.UInt8()
		case "op_pc":
			s.OpPC, err = d.UInt16()
		case "elapsed":
			s.Elapsed, err = d.Int()
		case "stolen":
			s.Stolen, err = d.Int()
		case "nmi_line":
			s.NMILine, err = d.Bool()
		case "nmi_pending":
			s.NMIPending, err = d.Bool()
		case "in_nmi":
			s.InNMI, err = d.Bool()
		case "irq_flag":
			s.IRQFlag, err = d.UInt8()
		case "in_irq":
			s.InIRQ, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}

func (s *Video) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("ppuctrl")
	e.UInt8(s.PPUCTRL)
	e.FieldStart("ppustatus")
	e.UInt8(s.PPUSTATUS)
	e.FieldStart("oamaddr")
	e.UInt8(s.OAMADDR)
	e.FieldStart("oam")
	e.Base64(s.OAM[:])
	e.FieldStart("scanline")
	e.Int(s.Scanline)
	e.FieldStart("dot")
	e.Int(s.Dot)
	e.FieldStart("frame")
	e.Int64(s.Frame)
	e.ObjEnd()
}

func (s *Video) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "ppuctrl":
			s.PPUCTRL, err = d.UInt8()
		case "ppustatus":
			s.PPUSTATUS, err = d.UInt8()
		case "oamaddr":
			s.OAMADDR, err = d.UInt8()
		case "oam":
			err = decodeBytes(d, s.OAM[:])
		case "scanline":
			s.Scanline, err = d.Int()
		case "dot":
			s.Dot, err = d.Int()
		case "frame":
			s.Frame, err = d.Int64()
		default:
			err = d.Skip()
		}
		return err
	})
}

func (s *APU) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("frame_cycle")
	e.Int32(s.FrameCycle)
	e.FieldStart("frame_step")
	e.Int(s.FrameStep)
	e.FieldStart("frame_mode")
	e.Int(s.FrameMode)
	e.FieldStart("frame_inhibit")
	e.Bool(s.FrameInhibit)
	e.FieldStart("frame_irq")
	e.Bool(s.FrameIRQ)
	e.FieldStart("dmcfreq")
	e.UInt8(s.DMCFREQ)
	e.FieldStart("dmcaddr")
	e.UInt8(s.DMCADDR)
	e.FieldStart("dmclen")
	e.UInt8(s.DMCLEN)
	e.FieldStart("dmc_addr")
	e.UInt16(s.DMCAddr)
	e.FieldStart("dmc_remaining")
	e.Int(s.DMCRemaining)
	e.FieldStart("dmc_timer")
	e.Int32(s.DMCTimer)
	e.FieldStart("dmc_irq")
	e.Bool(s.DMCIRQ)
	e.ObjEnd()
}

func (s *APU) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "frame_cycle":
			s.FrameCycle, err = d.Int32()
		case "frame_step":
			s.FrameStep, err = d.Int()
		case "frame_mode":
			s.FrameMode, err = d.Int()
		case "frame_inhibit":
			s.FrameInhibit, err = d.Bool()
		case "frame_irq":
			s.FrameIRQ, err = d.Bool()
		case "dmcfreq":
			s.DMCFREQ, err = d.UInt8()
		case "dmcaddr":
			s.DMCADDR, err = d.UInt8()
		case "dmclen":
			s.DMCLEN, err = d.UInt8()
		case "dmc_addr":
			s.DMCAddr, err = d.UInt16()
		case "dmc_remaining":
			s.DMCRemaining, err = d.Int()
		case "dmc_timer":
			s.DMCTimer, err = d.Int32()
		case "dmc_irq":
			s.DMCIRQ, err = d.Bool()
		default:
			err = d.Skip()
		}
		return err
	})
}

func (s *DMA) Encode(e *jx.Encoder) {
	e.ObjStart()
	e.FieldStart("oam_transfers")
	e.Int(s.OAMTransfers)
	e.FieldStart("dmc_fetches")
	e.Int(s.DMCFetches)
	e.ObjEnd()
}

func (s *DMA) Decode(d *jx.Decoder) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "oam_transfers":
			s.OAMTransfers, err = d.Int()
		case "dmc_fetches":
			s.DMCFetches, err = d.Int()
		default:
			err = d.Skip()
		}
		return err
	})
}

func decodeBytes(d *jx.Decoder, dst []byte) error {
	b, err := d.Base64()
	if err != nil {
		return err
	}
	if len(b) != len(dst) {
		return fmt.Errorf("got %d bytes, want %d", len(b), len(dst))
	}
	copy(dst, b)
	return nil
}

package snapshot

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalUnmarshal(t *testing.T) {
	want := &NES{
		Version: Version,
		Divider: 2,
		CPU: CPU{
			PC: 0xC123, SP: 0xFB, P: 0x24, A: 1, X: 2, Y: 3,
			Cycles:  123456789,
			State:   1,
			Opcode:  0x6D,
			OpPC:    0xC120,
			Elapsed: 2,
			Stolen:  513,
			NMILine: true, NMIPending: true,
			IRQFlag: 0x06,
		},
		Video: Video{PPUCTRL: 0x80, PPUSTATUS: 0x80, Scanline: 241, Dot: 2, Frame: 7},
		APU:   APU{FrameCycle: 7457, FrameStep: 1, FrameIRQ: true, DMCAddr: 0xC040, DMCRemaining: 17, DMCTimer: -1},
		DMA:   DMA{OAMTransfers: 3, DMCFetches: 9},
	}
	want.RAM[0x1FD] = 0xAB
	want.WRAM[0] = 0x80
	want.Video.OAM[0xFF] = 0x42

	got, err := Unmarshal(Marshal(want))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		json string
		err  string
	}{
		{"version", `{"version":99}`, "version 99"},
		{"ram size", `{"version":1,"ram":"AAAA"}`, "ram: got 3 bytes"},
		{"syntax", `{"version":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.json))
			if err == nil {
				t.Fatal("want error")
			}
			if !strings.Contains(err.Error(), tt.err) {
				t.Errorf("error %q, want it to contain %q", err, tt.err)
			}
		})
	}
}

func TestUnmarshalSkipsUnknownKeys(t *testing.T) {
	s, err := Unmarshal([]byte(`{"version":1,"extra":{"a":[1,2]},"cpu":{"pc":49152,"foo":true}}`))
	if err != nil {
		t.Fatal(err)
	}
	if s.CPU.PC != 0xC000 {
		t.Errorf("PC = %04x, want c000", s.CPU.PC)
	}
}

package hw

import "testing"

type testSystem struct {
	bus   *testBus
	cpu   *CPU
	video *Video
	apu   *APU
	dma   *DMA
}

// newTestSystem wires the devices over a flat 64k memory.
func newTestSystem(t *testing.T) *testSystem {
	t.Helper()

	bus := newTestBus()
	cpu := NewCPU(bus)
	video := NewVideo(cpu)
	dma := NewDMA(cpu, bus)
	apu := NewAPU(cpu, dma)

	video.MapRegisters(bus.Table)
	apu.MapRegisters(bus.Table)
	bus.MapBank(0x4014, dma, 0)

	cpu.Reset()
	return &testSystem{bus: bus, cpu: cpu, video: video, apu: apu, dma: dma}
}

func TestOAMDMA(t *testing.T) {
	tests := []struct {
		name   string
		cycles int64
		want   int
	}{
		{"even cycle", 10, 513},
		{"odd cycle", 11, 514},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := newTestSystem(t)
			for i := range 256 {
				sys.bus.mem[0x0300+i] = uint8(i) ^ 0xFF
			}
			sys.bus.Write8(0x2003, 0x00)

			sys.cpu.Cycles = tt.cycles
			sys.bus.Write8(0x4014, 0x03)

			if got := sys.cpu.PendingCycles(); got != tt.want {
				t.Errorf("stolen = %d, want %d", got, tt.want)
			}
			for i := range 256 {
				if sys.video.OAM[i] != uint8(i)^0xFF {
					t.Fatalf("OAM[%02X] = %02X, want %02X", i, sys.video.OAM[i], uint8(i)^0xFF)
				}
			}
			if sys.dma.OAMTransfers != 1 {
				t.Errorf("transfers = %d, want 1", sys.dma.OAMTransfers)
			}
		})
	}
}

func TestOAMDMAFromProgram(t *testing.T) {
	sys := newTestSystem(t)
	// LDA #$02; STA $4014; NOP
	copy(sys.bus.mem[0x0600:], []byte{0xA9, 0x02, 0x8D, 0x14, 0x40, 0xEA})
	sys.cpu.PC = 0x0600

	run(sys.cpu, 2+4)
	if sys.cpu.PC != 0x0605 {
		t.Fatalf("PC = %04X, want 0605", sys.cpu.PC)
	}
	// STA completed on cycle 6.
	if got := sys.cpu.PendingCycles(); got != 513 {
		t.Fatalf("stolen = %d, want 513", got)
	}
	run(sys.cpu, 513)
	if !sys.cpu.AtBoundary() || sys.cpu.PC != 0x0605 {
		t.Fatalf("transfer not over: PC=%04X pending=%d", sys.cpu.PC, sys.cpu.PendingCycles())
	}
	run(sys.cpu, 2)
	if sys.cpu.PC != 0x0606 {
		t.Errorf("PC = %04X, want 0606", sys.cpu.PC)
	}
}

func TestDMCFetch(t *testing.T) {
	sys := newTestSystem(t)
	sys.bus.mem[0xC123] = 0x5A

	if got := sys.dma.FetchSample(0xC123); got != 0x5A {
		t.Errorf("FetchSample() = %02X, want 5A", got)
	}
	if got := sys.cpu.PendingCycles(); got != 4 {
		t.Errorf("stolen = %d, want 4", got)
	}
	if sys.dma.DMCFetches != 1 {
		t.Errorf("fetches = %d, want 1", sys.dma.DMCFetches)
	}
}

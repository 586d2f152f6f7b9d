package hw

import (
	"errors"
	"testing"

	"famicore/hw/hwio"
)

func TestPString(t *testing.T) {
	if got := UnpackP(0b00110100).String(); got != "nvUBdIzc" {
		t.Errorf("got P = %s, want %s", got, "nvUBdIzc")
	}
	if got := UnpackP(0b00000100).String(); got != "nvubdIzc" {
		t.Errorf("got P = %s, want %s", got, "nvubdIzc")
	}
}

func TestPPackUnpack(t *testing.T) {
	for v := range 256 {
		if got := UnpackP(uint8(v)).Pack(); got != uint8(v) {
			t.Errorf("UnpackP(%02X).Pack() = %02X", v, got)
		}
	}

	p := P{C: true, N: true}
	if got := p.Pack(); got != Carry|Negative {
		t.Errorf("Pack() = %02X, want %02X", got, Carry|Negative)
	}
}

func TestLDAFlags(t *testing.T) {
	tests := []struct {
		val  uint8
		n, z int
	}{
		{0x00, 0, 1},
		{0x01, 0, 0},
		{0x7F, 0, 0},
		{0x80, 1, 0},
		{0xFF, 1, 0},
	}
	for _, tt := range tests {
		cpu := loadCPUWith(t, "0600: a9 "+hex8(tt.val))
		cpu.PC = 0x0600
		runAndCheckState(t, cpu, 2,
			"A", int(tt.val),
			"Pn", tt.n,
			"Pz", tt.z,
			"PC", 0x0602,
		)
	}
}

func hex8(v uint8) string {
	return string([]byte{hexDigits[v>>4], hexDigits[v&0xF]})
}

func TestCPx(t *testing.T) {
	t.Run("40 - 41", func(t *testing.T) {
		// LDX #$40
		// CPX #$41
		cpu := loadCPUWith(t, `0600: a2 40 e0 41`)
		cpu.PC = 0x0600
		cpu.P = UnpackP(0b00110000)
		runAndCheckState(t, cpu, 4,
			"A", 0x00,
			"X", 0x40,
			"Y", 0x00,
			"P", 0b10110000,
		)
	})
	t.Run("40 - 40", func(t *testing.T) {
		// LDX #$40
		// CPX #$40
		cpu := loadCPUWith(t, `0600: a2 40 e0 40`)
		cpu.PC = 0x0600
		cpu.P = UnpackP(0b00110000)
		runAndCheckState(t, cpu, 4,
			"A", 0x00,
			"X", 0x40,
			"Y", 0x00,
			"P", 0b00110011,
		)
	})
	t.Run("40 - 39", func(t *testing.T) {
		// LDX #$40
		// CPX #$39
		cpu := loadCPUWith(t, `0600: a2 40 e0 39`)
		cpu.PC = 0x0600
		cpu.P = UnpackP(0b00110000)
		runAndCheckState(t, cpu, 4,
			"A", 0x00,
			"X", 0x40,
			"Y", 0x00,
			"P", 0b00110001,
		)
	})
}

func TestLDA_STA(t *testing.T) {
	dump := `0600: a9 01 8d 00 02 a9 05 8d 01 02 a9 08 8d 02 02`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 6*3,
		"A", 0x08,
		"PC", 0x060F,
		"SP", 0xfd,
		"mem", `0200: 01 05 08`,
	)
}

func TestEOR(t *testing.T) {
	dump := `
0000: 06
0100: 45 00`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0100
	cpu.A = 0x80
	runAndCheckState(t, cpu, 3,
		"A", 0x86,
		"Pn", 1,
		"Pz", 0,
	)
}

func TestROR(t *testing.T) {
	dump := `
0000: 55
0100: 66 00
# reset vector
FFFC: 00 01`
	cpu := loadCPUWith(t, dump)
	cpu.A = 0x80
	cpu.P.C = true
	runAndCheckState(t, cpu, 5,
		"Pn", 1,
		"Pc", 1,
		"Pz", 0,
		"PC", 0x0102,
	)
	wantMem8(t, cpu, 0x0000, 0xAA)
}

func TestStack(t *testing.T) {
	dump := `
# instructions
0600: a2 00 a0 00 8a 99 00 02 48 e8 c8 c0 10 d0 f5 68
0610: 99 00 02 c8 c0 20 d0 f7
# reset vector
FFFC: 00 06
`
	cpu := loadCPUWith(t, dump)
	cpu.P = UnpackP(0x30)
	cpu.SP = 0xFF
	runAndCheckState(t, cpu, 562,
		"PC", 0x0618,
		"A", 0x00,
		"X", 0x10,
		"Y", 0x20,
		"SP", 0xFF,
		"mem", `
01f0: 0f 0e 0d 0c 0b 0a 09 08 07 06 05 04 03 02 01 00
0200: 00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f
0210: 0f 0e 0d 0c 0b 0a 09 08 07 06 05 04 03 02 01 00`,
	)
	if !cpu.AtBoundary() {
		t.Errorf("not at an instruction boundary after the last branch")
	}
}

func TestStackSmall(t *testing.T) {
	// LDA #$AA; PHA; LDA #$11; PLA
	cpu := loadCPUWith(t, `0600: a9 aa 48 a9 11 68`)
	cpu.PC = 0x0600
	cpu.P = UnpackP(0x30)
	cpu.SP = 0xFF
	runAndCheckState(t, cpu, 2+3+2+4,
		"PC", 0x0606,
		"A", 0xAA,
		"SP", 0xFF,
		"Pn", 1,
	)
}

func TestStackWraps(t *testing.T) {
	// PHA; PLA
	cpu := loadCPUWith(t, `0600: 48 68`)
	cpu.PC = 0x0600
	cpu.SP = 0x00
	cpu.A = 0x42
	run(cpu, 3)
	if cpu.SP != 0xFF {
		t.Errorf("SP after push = %02X, want FF", cpu.SP)
	}
	wantMem8(t, cpu, 0x0100, 0x42)
	run(cpu, 4)
	if cpu.SP != 0x00 || cpu.A != 0x42 {
		t.Errorf("SP=%02X A=%02X, want SP=00 A=42", cpu.SP, cpu.A)
	}
}

func TestPHPPLP(t *testing.T) {
	// PHP; PLP
	cpu := loadCPUWith(t, `0600: 08 28`)
	cpu.PC = 0x0600
	cpu.P = P{}
	run(cpu, 3)
	// B and U are set in the pushed copy only.
	wantMem8(t, cpu, 0x01FD, 0x30)
	if cpu.P.B {
		t.Errorf("PHP set the live B flag")
	}

	cpu.Write8(0x01FD, 0xFF)
	runAndCheckState(t, cpu, 4, "P", 0xEF)
}

func TestJSRRTS(t *testing.T) {
	dump := `
0600: 20 00 07 ea
0700: 60`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 6,
		"PC", 0x0700,
		"SP", 0xFB,
		"mem", `01fc: 02 06`,
	)
	runAndCheckState(t, cpu, 6,
		"PC", 0x0603,
		"SP", 0xFD,
	)
}

func TestBRKRTI(t *testing.T) {
	dump := `
0600: 00 ea ea
0700: 40
FFFE: 00 07`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	cpu.P = UnpackP(0x01)
	runAndCheckState(t, cpu, 7,
		"PC", 0x0700,
		"SP", 0xFA,
		"Pi", 1,
		"Pb", 0,
		// Return address skips the padding byte, B and U set in the
		// pushed flags.
		"mem", `01fb: 31 02 06`,
	)
	runAndCheckState(t, cpu, 6,
		"PC", 0x0602,
		"SP", 0xFD,
		"P", 0x21,
	)
}

func TestJMPIndirectPageWrap(t *testing.T) {
	dump := `
0600: 6c ff 10
1000: 12
10ff: 34
1100: 56`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 5, "PC", 0x1234)
}

func TestZeroPageIndexWraps(t *testing.T) {
	dump := `
0000: 11
0100: 22
0600: b5 ff`
	// LDA $FF,X with X=1 reads $0000.
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	cpu.X = 1
	runAndCheckState(t, cpu, 4, "A", 0x11)
}

func TestIndirectPointerWraps(t *testing.T) {
	dump := `
0000: 07
00ff: 00
0100: 08
0700: 77
0800: 88
0600: a1 fe b1 ff`
	// LDA ($FE,X) with X=1 and LDA ($FF),Y read the pointer from $FF/$00.
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	cpu.X = 1
	runAndCheckState(t, cpu, 6, "A", 0x77)
	runAndCheckState(t, cpu, 5, "A", 0x77)
}

func TestBranchCycles(t *testing.T) {
	tests := []struct {
		name    string
		dump    string
		pc      uint16
		z       bool
		wantPC  uint16
		penalty int
	}{
		{"not taken", `0600: f0 02`, 0x0600, false, 0x0602, 0},
		{"taken", `0600: f0 02`, 0x0600, true, 0x0604, 1},
		{"taken page cross", `06f0: f0 7f`, 0x06F0, true, 0x0771, 2},
		{"taken backward page cross", `0700: f0 fc`, 0x0700, true, 0x06FE, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu := loadCPUWith(t, tt.dump)
			cpu.PC = tt.pc
			cpu.P.Z = tt.z

			if cpu.Tick() {
				t.Fatal("branch completed in 1 cycle")
			}
			if !cpu.Tick() {
				t.Fatal("branch not dispatched on cycle 2")
			}
			if cpu.PC != tt.wantPC {
				t.Errorf("PC = %04X, want %04X", cpu.PC, tt.wantPC)
			}
			if cpu.PendingCycles() != tt.penalty {
				t.Errorf("pending = %d, want %d", cpu.PendingCycles(), tt.penalty)
			}
			last := cpu.LastInstruction()
			if last.Guessed != 2 || last.Cycles != 2+tt.penalty {
				t.Errorf("last instruction = %+v", last)
			}

			run(cpu, tt.penalty)
			if !cpu.AtBoundary() {
				t.Errorf("not at boundary after %d penalty cycles", tt.penalty)
			}
		})
	}
}

func TestPageCrossPenalty(t *testing.T) {
	tests := []struct {
		name    string
		dump    string
		x, y    uint8
		penalty int
	}{
		{"abx no cross", `0600: bd 00 02`, 1, 0, 0},
		{"abx cross", `0600: bd ff 02`, 1, 0, 1},
		{"aby cross", `0600: b9 ff 02`, 0, 1, 1},
		{"izy no cross", "0010: 00 02\n0600: b1 10", 0, 1, 0},
		{"izy cross", "0010: ff 02\n0600: b1 10", 0, 1, 1},
		{"sta abx cross", `0600: 9d ff 02`, 1, 0, 0},
		{"inc abx cross", `0600: fe ff 02`, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpu := loadCPUWith(t, tt.dump)
			cpu.PC = 0x0600
			cpu.X, cpu.Y = tt.x, tt.y

			in := Lookup(cpu.Read8(0x0600))
			run(cpu, int(in.Cycles))
			if cpu.PC != 0x0600+uint16(in.Size) {
				t.Fatalf("PC = %04X, instruction not dispatched", cpu.PC)
			}
			if cpu.PendingCycles() != tt.penalty {
				t.Errorf("pending = %d, want %d", cpu.PendingCycles(), tt.penalty)
			}
		})
	}
}

func TestPCAdvance(t *testing.T) {
	for op := range 256 {
		in := Lookup(uint8(op))
		if !in.Defined() || in.Mode == Relative {
			continue
		}
		switch in.Name {
		case "BRK", "JMP", "JSR", "RTS", "RTI":
			continue
		}

		t.Run(hex8(uint8(op))+"_"+in.Name, func(t *testing.T) {
			cpu := NewCPU(newTestBus())
			cpu.Reset()
			cpu.PC = 0x0600
			cpu.Write8(0x0600, uint8(op))

			for i := 1; i < int(in.Cycles); i++ {
				if cpu.Tick() {
					t.Fatalf("completed after %d cycles, want %d", i, in.Cycles)
				}
			}
			if !cpu.Tick() {
				t.Fatalf("not completed after %d cycles", in.Cycles)
			}
			if want := 0x0600 + uint16(in.Size); cpu.PC != want {
				t.Errorf("PC = %04X, want %04X", cpu.PC, want)
			}
			if cpu.PendingCycles() != 0 {
				t.Errorf("pending = %d, want 0", cpu.PendingCycles())
			}
		})
	}
}

func TestADCSBC(t *testing.T) {
	cpu := NewCPU(newTestBus())

	for a := range 256 {
		for b := range 256 {
			for carry := range 2 {
				// ADC
				sum := a + b + carry
				res := uint8(sum)
				wantV := (uint8(a)^res)&(uint8(b)^res)&0x80 != 0

				cpu.A = uint8(a)
				cpu.P.C = carry == 1
				cpu.addWithCarry(uint8(b))
				if cpu.A != res || cpu.P.C != (sum > 0xFF) || cpu.P.V != wantV ||
					cpu.P.Z != (res == 0) || cpu.P.N != (res&0x80 != 0) {
					t.Fatalf("ADC %02X+%02X+%d: A=%02X P=%s", a, b, carry, cpu.A, cpu.P)
				}

				// SBC is ADC of the complement.
				nb := ^uint8(b)
				sum = a + int(nb) + carry
				res = uint8(sum)
				wantV = (uint8(a)^res)&(nb^res)&0x80 != 0

				cpu.A = uint8(a)
				cpu.P.C = carry == 1
				cpu.subWithBorrow(uint8(b))
				if cpu.A != res || cpu.P.C != (sum > 0xFF) || cpu.P.V != wantV ||
					cpu.P.Z != (res == 0) || cpu.P.N != (res&0x80 != 0) {
					t.Fatalf("SBC %02X-%02X-%d: A=%02X P=%s", a, b, 1-carry, cpu.A, cpu.P)
				}
			}
		}
	}
}

// binaryADC is the reference binary add with carry.
func binaryADC(a, b uint8, c bool) (res uint8, carry, overflow bool) {
	sum := uint16(a) + uint16(b) + uint16(b2u8(c))
	res = uint8(sum)
	return res, sum > 0xFF, (a^res)&(b^res)&0x80 != 0
}

func TestFusedReadModifyWrite(t *testing.T) {
	// zn is the value the Z and N flags are computed from.
	type result struct {
		mem, a, zn uint8
		c, v       bool
	}

	tests := []struct {
		name string
		op   uint8
		want func(m, a uint8, c, v bool) result
	}{
		{"SLO", 0x07, func(m, a uint8, c, v bool) result {
			r := m << 1
			return result{mem: r, a: a | r, zn: a | r, c: m&0x80 != 0, v: v}
		}},
		{"RLA", 0x27, func(m, a uint8, c, v bool) result {
			r := m<<1 | b2u8(c)
			return result{mem: r, a: a & r, zn: a & r, c: m&0x80 != 0, v: v}
		}},
		{"SRE", 0x47, func(m, a uint8, c, v bool) result {
			r := m >> 1
			return result{mem: r, a: a ^ r, zn: a ^ r, c: m&1 != 0, v: v}
		}},
		{"RRA", 0x67, func(m, a uint8, c, v bool) result {
			r := m>>1 | b2u8(c)<<7
			res, cout, vout := binaryADC(a, r, m&1 != 0)
			return result{mem: r, a: res, zn: res, c: cout, v: vout}
		}},
		{"DCP", 0xC7, func(m, a uint8, c, v bool) result {
			r := m - 1
			return result{mem: r, a: a, zn: a - r, c: a >= r, v: v}
		}},
		{"ISC", 0xE7, func(m, a uint8, c, v bool) result {
			r := m + 1
			res, cout, vout := binaryADC(a, ^r, c)
			return result{mem: r, a: res, zn: res, c: cout, v: vout}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := newTestBus()
			bus.mem[0x0600] = tt.op
			bus.mem[0x0601] = 0x10
			cpu := NewCPU(bus)
			cpu.Reset()

			for m := range 256 {
				for a := 0; a < 256; a += 7 {
					for _, c := range []bool{false, true} {
						v := a&1 != 0
						cpu.PC = 0x0600
						cpu.A = uint8(a)
						cpu.P.C = c
						cpu.P.V = v
						bus.mem[0x10] = uint8(m)
						run(cpu, 5)

						want := tt.want(uint8(m), uint8(a), c, v)
						got := result{
							mem: bus.mem[0x10],
							a:   cpu.A,
							zn:  want.zn,
							c:   cpu.P.C,
							v:   cpu.P.V,
						}
						if got != want || cpu.P.Z != (want.zn == 0) || cpu.P.N != (want.zn&0x80 != 0) || cpu.PC != 0x0602 {
							t.Fatalf("m=%02X a=%02X c=%v: mem=%02X A=%02X P=%s PC=%04X, want mem=%02X A=%02X C=%v V=%v zn=%02X",
								m, a, c, got.mem, got.a, cpu.P, cpu.PC, want.mem, want.a, want.c, want.v, want.zn)
						}
					}
				}
			}
		})
	}
}

func TestDecimalIgnored(t *testing.T) {
	// SED; LDA #$09; CLC; ADC #$01
	cpu := loadCPUWith(t, `0600: f8 a9 09 18 69 01`)
	cpu.PC = 0x0600
	runAndCheckState(t, cpu, 8,
		"A", 0x0A,
		"Pd", 1,
	)
}

func TestNMI(t *testing.T) {
	dump := `
0600: 4c 00 06
0700: 40
FFFA: 00 07`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600
	cpu.TriggerNMI()

	for i := 1; i < interruptCycles; i++ {
		if cpu.Tick() {
			t.Fatalf("NMI sequence completed after %d cycles", i)
		}
		if cpu.State() != ServicingNMI {
			t.Fatalf("state = %s, want %s", cpu.State(), ServicingNMI)
		}
		if cpu.PC != 0x0600 {
			t.Fatalf("PC changed during the sequence: %04X", cpu.PC)
		}
	}
	if !cpu.Tick() {
		t.Fatal("NMI sequence not completed after 7 cycles")
	}
	if cpu.NMIPending() {
		t.Error("NMI still pending")
	}
	runAndCheckState(t, cpu, 0,
		"PC", 0x0700,
		"SP", 0xFA,
		"Pi", 1,
		// B clear in the pushed flags.
		"mem", `01fb: 24 00 06`,
	)

	// RTI returns to the loop.
	runAndCheckState(t, cpu, 6, "PC", 0x0600, "SP", 0xFD)
}

func TestNMIWaitsForBoundary(t *testing.T) {
	dump := `
0600: 4c 00 06
FFFA: 00 07`
	cpu := loadCPUWith(t, dump)
	cpu.PC = 0x0600

	cpu.Tick()
	cpu.TriggerNMI()
	// 2 cycles to finish JMP, 7 for the sequence.
	run(cpu, 8)
	if cpu.PC != 0x0600 {
		t.Fatalf("PC = %04X, NMI serviced too early", cpu.PC)
	}
	if !cpu.Tick() || cpu.PC != 0x0700 {
		t.Fatalf("PC = %04X, want 0700", cpu.PC)
	}
}

func TestNMIEdge(t *testing.T) {
	cpu := NewCPU(newTestBus())
	cpu.SetNMILine(true)
	if !cpu.NMIPending() {
		t.Fatal("rising edge not latched")
	}
	cpu.nmiPending = false
	cpu.SetNMILine(true)
	if cpu.NMIPending() {
		t.Error("level held high latched a second edge")
	}
	cpu.SetNMILine(false)
	cpu.SetNMILine(true)
	if !cpu.NMIPending() {
		t.Error("second rising edge not latched")
	}
}

func TestIRQ(t *testing.T) {
	dump := `
0600: 58 4c 01 06
0800: 40
FFFA: 00 07
FFFE: 00 08`

	t.Run("masked", func(t *testing.T) {
		cpu := loadCPUWith(t, dump)
		cpu.PC = 0x0601 // skip CLI, I is set after reset
		cpu.SetIRQSource(IRQExternal)
		run(cpu, 30)
		if cpu.PC != 0x0601 || cpu.SP != 0xFD {
			t.Errorf("IRQ serviced while masked: PC=%04X SP=%02X", cpu.PC, cpu.SP)
		}
	})

	t.Run("serviced", func(t *testing.T) {
		cpu := loadCPUWith(t, dump)
		cpu.PC = 0x0600
		cpu.SetIRQSource(IRQDMC)
		run(cpu, 2) // CLI
		for i := 1; i < interruptCycles; i++ {
			if cpu.Tick() {
				t.Fatalf("IRQ sequence completed after %d cycles", i)
			}
			if cpu.State() != ServicingIRQ {
				t.Fatalf("state = %s, want %s", cpu.State(), ServicingIRQ)
			}
		}
		if !cpu.Tick() {
			t.Fatal("IRQ sequence not completed after 7 cycles")
		}
		runAndCheckState(t, cpu, 0,
			"PC", 0x0800,
			"Pi", 1,
			"mem", `01fb: 20 01 06`,
		)
		if !cpu.IRQLine() || !cpu.HasIRQSource(IRQDMC) {
			t.Errorf("servicing acknowledged the IRQ source")
		}
	})

	t.Run("NMI first", func(t *testing.T) {
		cpu := loadCPUWith(t, dump)
		cpu.PC = 0x0601
		cpu.P.I = false
		cpu.SetIRQSource(IRQExternal)
		cpu.TriggerNMI()
		run(cpu, interruptCycles)
		if cpu.PC != 0x0700 {
			t.Errorf("PC = %04X, want NMI handler 0700", cpu.PC)
		}
	})

	t.Run("sources", func(t *testing.T) {
		cpu := NewCPU(newTestBus())
		cpu.SetIRQSource(IRQFrameCounter)
		cpu.SetIRQSource(IRQDMC)
		cpu.ClearIRQSource(IRQFrameCounter)
		if !cpu.IRQLine() {
			t.Error("line released while DMC holds it")
		}
		cpu.ClearIRQSource(IRQDMC)
		if cpu.IRQLine() {
			t.Error("line still asserted")
		}
	})
}

func TestStealCycles(t *testing.T) {
	cpu := loadCPUWith(t, `0600: 4c 00 06`)
	cpu.PC = 0x0600
	cpu.A, cpu.X, cpu.Y = 1, 2, 3

	cpu.StealCycles(3)
	for range 3 {
		if cpu.Tick() {
			t.Fatal("instruction completed while stealing")
		}
		if cpu.State() != Stealing {
			t.Fatalf("state = %s, want %s", cpu.State(), Stealing)
		}
	}
	runAndCheckState(t, cpu, 0,
		"A", 1, "X", 2, "Y", 3, "PC", 0x0600, "SP", 0xFD,
	)
	if cpu.Cycles != 3 {
		t.Errorf("cycles = %d, want 3", cpu.Cycles)
	}

	// Stealing in the middle of an instruction delays its completion.
	cpu.Tick()
	cpu.StealCycles(2)
	run(cpu, 3)
	if cpu.LastInstruction().Cycle != 0 {
		t.Fatal("JMP completed too early")
	}
	if !cpu.Tick() {
		t.Fatal("JMP not completed")
	}
	if cpu.LastInstruction().Cycle != 8 {
		t.Errorf("JMP completed on cycle %d, want 8", cpu.LastInstruction().Cycle)
	}
}

func TestFatalErrors(t *testing.T) {
	t.Run("undefined opcode", func(t *testing.T) {
		cpu := loadCPUWith(t, `0600: ea 02`)
		cpu.PC = 0x0600
		run(cpu, 2)

		yes, msg := hasPanicked(func() { cpu.Tick() })
		if !yes {
			t.Fatal("no panic")
		}
		err, ok := msg.(error)
		var fe *FatalError
		if !ok || !errors.As(err, &fe) {
			t.Fatalf("panicked with %v, want *FatalError", msg)
		}
		if fe.Kind != UndefinedOpcode || fe.PC != 0x0601 || fe.Opcode != 0x02 {
			t.Errorf("got %+v", fe)
		}
	})

	t.Run("negative steal", func(t *testing.T) {
		cpu := NewCPU(newTestBus())
		yes, msg := hasPanicked(func() { cpu.StealCycles(-1) })
		if fe, ok := msg.(*FatalError); !yes || !ok || fe.Kind != NegativeSteal {
			t.Errorf("panicked with %v, want negative steal", msg)
		}
	})
}

func TestResetAndPowerUp(t *testing.T) {
	cpu := loadCPUWith(t, `FFFC: 34 12`)
	cpu.A, cpu.X, cpu.Y = 1, 2, 3
	cpu.SP = 0x10
	cpu.P = UnpackP(0xC3)
	cpu.StealCycles(5)

	cpu.Reset()
	runAndCheckState(t, cpu, 0,
		"PC", 0x1234,
		"SP", 0xFD,
		"A", 1, "X", 2, "Y", 3,
		"P", 0xE7,
	)
	if !cpu.AtBoundary() {
		t.Error("steal survived reset")
	}

	cpu.PowerUp()
	runAndCheckState(t, cpu, 0,
		"PC", 0x1234,
		"SP", 0xFD,
		"A", 0, "X", 0, "Y", 0,
		"P", 0x24,
	)
}

func TestCoverage(t *testing.T) {
	cpu := loadCPUWith(t, `0600: ea ea 4c 00 06`)
	cpu.PC = 0x0600
	var cov hwio.Bitset
	cpu.Coverage = &cov
	run(cpu, 2+2+3+2)
	for _, addr := range []uint16{0x0600, 0x0601, 0x0602} {
		if !cov.Test(addr) {
			t.Errorf("$%04X not covered", addr)
		}
	}
	if cov.Count() != 3 {
		t.Errorf("count = %d, want 3", cov.Count())
	}
}

func TestIRQSourceString(t *testing.T) {
	tests := []struct {
		src  IRQSource
		want string
	}{
		{0, "none"},
		{IRQExternal, "ext"},
		{IRQFrameCounter | IRQDMC, "fcnt|dmc"},
		{IRQExternal | IRQMapper, "ext|mapper"},
	}
	for _, tt := range tests {
		if got := tt.src.String(); got != tt.want {
			t.Errorf("IRQSource(%d).String() = %q, want %q", tt.src, got, tt.want)
		}
	}
}

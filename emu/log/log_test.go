package log

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseModuleMask(t *testing.T) {
	tests := []struct {
		in   string
		want ModuleMask
		ok   bool
	}{
		{"", 0, true},
		{"cpu", ModCPU.Mask(), true},
		{"cpu,hwio", ModCPU.Mask() | ModHwIo.Mask(), true},
		{"all", ModuleMaskAll, true},
		{"all,no", ModuleMaskNone, true},
		{"cpu,bogus", 0, false},
		{"<error>", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseModuleMask(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseModuleMask(%q) = %x,%v, want %x,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestModuleEnabled(t *testing.T) {
	defer DisableDebugModules(ModuleMaskAll)

	if ModMem.Enabled(DebugLevel) {
		t.Fatal("debug should be disabled by default")
	}
	if !ModMem.Enabled(WarnLevel) {
		t.Fatal("warnings should always be enabled")
	}
	if ModMem.DebugZ("x") != nil {
		t.Fatal("disabled DebugZ should return a nil entry")
	}

	// Chaining on a disabled entry must not panic.
	ModMem.DebugZ("x").Hex8("a", 1).String("b", "c").End()

	EnableDebugModules(ModMem.Mask())
	if !ModMem.Enabled(DebugLevel) {
		t.Fatal("debug should be enabled after EnableDebugModules")
	}
	if ModCPU.Enabled(DebugLevel) {
		t.Fatal("enabling mem must not enable cpu")
	}
}

type pcContext struct{ pc uint16 }

func (c *pcContext) AddLogContext(z *EntryZ) { z.Hex16("pc", c.pc) }

func TestEntryZOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(new(bytes.Buffer))

	ctx := &pcContext{pc: 0xC123}
	AddContext(ctx)
	defer RemoveContext(ctx)

	ModCPU.WarnZ("halted").Hex8("opcode", 0x02).Bool("fatal", true).End()

	out := buf.String()
	for _, want := range []string{"halted", "opcode=02", "fatal=true", "pc=C123", "_mod=cpu"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q does not contain %q", out, want)
		}
	}
}

func TestNewModule(t *testing.T) {
	mod := NewModule("testmod")
	got, ok := ModuleByName("testmod")
	if !ok || got != mod {
		t.Fatalf("ModuleByName(testmod) = %v,%v, want %v", got, ok, mod)
	}
	if mod.String() != "testmod" {
		t.Errorf("String() = %q", mod.String())
	}
}

type intensity uint8

func (l intensity) String() string { return [...]string{"low", "high"}[l] }

func TestFieldFormat(t *testing.T) {
	tests := []struct {
		name string
		f    field
		want string
	}{
		{"bool", field{kind: kindBool, num: 1}, "true"},
		{"hex8", field{kind: kindHex8, num: 0x1AB}, "AB"},
		{"hex16", field{kind: kindHex16, num: 0xC0}, "00C0"},
		{"negative", field{kind: kindInt, num: -7}, "-7"},
		{"nil error", field{kind: kindError}, "<nil>"},
		{"error", field{kind: kindError, val: errors.New("boom")}, "boom"},
		{"stringer", field{kind: kindStringer, val: intensity(1)}, "high"},
		{"unknown", field{}, "?"},
	}
	for _, tt := range tests {
		if got := tt.f.format(); got != tt.want {
			t.Errorf("%s: format() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEntryZDropsExtraFields(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(new(bytes.Buffer))

	z := ModEmu.WarnZ("many")
	for i := range maxFields + 2 {
		z.Int(fmt.Sprintf("f%d", i), i)
	}
	z.End()

	out := buf.String()
	if !strings.Contains(out, fmt.Sprintf("f%d=%d", maxFields-1, maxFields-1)) {
		t.Errorf("last field missing from %q", out)
	}
	if strings.Contains(out, fmt.Sprintf("f%d=", maxFields)) {
		t.Errorf("field past the limit emitted: %q", out)
	}
}

package emu

import (
	"os"
	"path/filepath"
	"testing"

	"famicore/hw"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfigOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[machine]
load_addr = 0xC000
reset_vector = 0xC000
frames = 30

[trace]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigOrDefault(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Machine = MachineConfig{LoadAddr: 0xC000, ResetVector: 0xC000, Frames: 30}
	want.Trace.Format = "json"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Trace.TraceFormat() != hw.TraceJSON {
		t.Errorf("TraceFormat() = %v, want json", cfg.Trace.TraceFormat())
	}
}

func TestLoadConfigFallbacks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[check]
max_frames = -1

[trace]
format = "xml"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigOrDefault(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Trace.Format != "text" {
		t.Errorf("trace format = %q, want text", cfg.Trace.Format)
	}
	if cfg.Check.MaxFrames != DefaultConfig().Check.MaxFrames {
		t.Errorf("max frames = %d, want default", cfg.Check.MaxFrames)
	}
}

func TestLoadConfigSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[machine\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfigOrDefault(path); err == nil {
		t.Error("want error")
	}
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	want := DefaultConfig()
	want.Machine.Frames = 120
	want.Check.StatusAddr = 0x7000
	if err := SaveConfig(path, want); err != nil {
		t.Fatal(err)
	}

	got, err := LoadConfigOrDefault(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

package emu

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"famicore/emu/log"
	"famicore/hw"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Machine MachineConfig `toml:"machine"`
	Check   CheckConfig   `toml:"check"`
	Trace   TraceConfig   `toml:"trace"`

	TraceOut io.WriteCloser `toml:"-"`
}

type MachineConfig struct {
	// LoadAddr is where the program image is copied.
	LoadAddr uint16 `toml:"load_addr"`

	// ResetVector, if not zero, overrides the reset vector found in the
	// image.
	ResetVector uint16 `toml:"reset_vector"`

	// Frames is the number of frames to run. Zero runs until interrupted.
	Frames int `toml:"frames"`
}

type CheckConfig struct {
	StatusAddr uint16 `toml:"status_addr"`
	MaxFrames  int    `toml:"max_frames"`
	// ResetDelay is the number of frames to wait before pressing reset when
	// a test asks for it.
	ResetDelay int `toml:"reset_delay"`
}

type TraceConfig struct {
	Format string `toml:"format"`
}

func (tcfg *TraceConfig) Check() {
	if _, err := hw.ParseTraceFormat(tcfg.Format); err != nil {
		log.ModEmu.WarnZ("Invalid trace format, fallback to text").String("format", tcfg.Format).End()
		tcfg.Format = "text"
	}
}

// TraceFormat returns the parsed trace format. Call Check first.
func (tcfg *TraceConfig) TraceFormat() hw.TraceFormat {
	f, _ := hw.ParseTraceFormat(tcfg.Format)
	return f
}

func (ccfg *CheckConfig) Check() {
	if ccfg.MaxFrames <= 0 {
		ccfg.MaxFrames = DefaultConfig().Check.MaxFrames
	}
	if ccfg.ResetDelay <= 0 {
		ccfg.ResetDelay = DefaultConfig().Check.ResetDelay
	}
}

// DefaultConfig returns the configuration used when no file is provided.
// Images are loaded at the start of the cartridge area and test results are
// looked up at $6000.
func DefaultConfig() Config {
	return Config{
		Machine: MachineConfig{
			LoadAddr: 0x8000,
		},
		Check: CheckConfig{
			StatusAddr: 0x6000,
			MaxFrames:  3600,
			ResetDelay: 6,
		},
		Trace: TraceConfig{
			Format: "text",
		},
	}
}

// LoadConfigOrDefault loads the configuration from path. Keys missing from
// the file keep their default value. A missing file is not an error.
func LoadConfigOrDefault(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	_, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		log.ModEmu.InfoZ("No config file, using defaults").String("path", path).End()
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}

	cfg.Trace.Check()
	cfg.Check.Check()
	return cfg, nil
}

// SaveConfig writes cfg to path.
func SaveConfig(path string, cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, buf, 0644)
}

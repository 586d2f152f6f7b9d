package emu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
)

// Test programs following the blargg protocol write their status at a fixed
// address (usually $6000):
//
//	+0     status: $80 running, $81 reset requested, $00-$7F result code
//	+1..3  signature $DE $B0 $61, marks the area as valid
//	+4     zero-terminated text output
const (
	statusRunning    = 0x80
	statusNeedsReset = 0x81
	statusMaxResult  = 0x7F

	sigOffset  = 1
	textOffset = 4
	maxText    = 0x1000
)

var testSignature = []byte{0xDE, 0xB0, 0x61}

// TestStatus is a snapshot of a test program status area.
type TestStatus struct {
	Valid bool  // signature found
	Code  uint8 // raw status byte
	Text  string
}

// Done reports whether the test has completed.
func (s TestStatus) Done() bool {
	return s.Valid && s.Code <= statusMaxResult
}

// Passed reports whether the test has completed successfully.
func (s TestStatus) Passed() bool {
	return s.Done() && s.Code == 0
}

func (s TestStatus) String() string {
	switch {
	case !s.Valid:
		return "no status"
	case s.Code == statusRunning:
		return "running"
	case s.Code == statusNeedsReset:
		return "needs reset"
	case s.Code == 0:
		return "passed"
	}
	return fmt.Sprintf("failed (code $%02X)", s.Code)
}

// TestStatus reads the status area at addr without side effects.
func (nes *NES) TestStatus(addr uint16) TestStatus {
	var sig [3]byte
	for i := range sig {
		sig[i] = nes.Bus.Peek8(addr + sigOffset + uint16(i))
	}
	if !bytes.Equal(sig[:], testSignature) {
		return TestStatus{}
	}

	var text []byte
	for i := uint16(0); i < maxText; i++ {
		c := nes.Bus.Peek8(addr + textOffset + i)
		if c == 0 {
			break
		}
		text = append(text, c)
	}
	return TestStatus{
		Valid: true,
		Code:  nes.Bus.Peek8(addr),
		Text:  string(text),
	}
}

// TestResult is the outcome of RunTest.
type TestResult struct {
	Status TestStatus
	Frames int
	Resets int
}

// ErrTestTimeout is returned by RunTest when the program did not complete
// within the allowed number of frames.
var ErrTestTimeout = errors.New("test timeout")

// RunTest runs a test program until it reports a result, pressing reset
// when asked to.
func (nes *NES) RunTest(ctx context.Context, cfg CheckConfig) (TestResult, error) {
	var res TestResult
	resetIn := -1

	for res.Frames < cfg.MaxFrames {
		if err := nes.RunFrames(ctx, 1); err != nil {
			res.Status = nes.TestStatus(cfg.StatusAddr)
			return res, err
		}
		res.Frames++

		if resetIn > 0 {
			if resetIn--; resetIn == 0 {
				nes.Reset()
				res.Resets++
				resetIn = -1
			}
			continue
		}

		res.Status = nes.TestStatus(cfg.StatusAddr)
		switch {
		case !res.Status.Valid:
		case res.Status.Code == statusNeedsReset:
			resetIn = max(cfg.ResetDelay, 1)
		case res.Status.Done():
			return res, nil
		}
	}
	return res, ErrTestTimeout
}

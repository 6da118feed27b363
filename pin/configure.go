package pin

import (
	"strconv"

	"pinctl-go/errcode"
)

// IOCON control word layout (type-D digital pins).
const (
	FuncMask      uint32 = 0xF // bits 3:0, alternate function select
	PullPos              = 4
	PullMask      uint32 = 0x3 << PullPos // bits 5:4, pull selection
	InvertBit     uint32 = 1 << 7         // input polarity inversion
	DigitalBit    uint32 = 1 << 8         // digital (not analog) mode
	FilterBit     uint32 = 1 << 9         // set while the input filter stays enabled
	OpenDrainBit  uint32 = 1 << 11        // open-drain output stage
	ModeFieldMask uint32 = 0xFFF          // reserved packed-mode field
)

// AFGPIO is the function index that leaves the pin under GPIO control.
const AFGPIO uint8 = 0

// Encode computes the packed control word for an intent. Pure; validation is
// the caller's job.
func Encode(c Config) uint32 {
	w := uint32(c.AF) & FuncMask
	w |= uint32(c.Mode) & ModeFieldMask
	w |= DigitalBit
	w |= (uint32(c.Pull) << PullPos) & PullMask
	if c.Invert {
		w |= InvertBit
	}
	if !c.FilterOff {
		w |= FilterBit
	}
	return w
}

// Configure validates an intent and applies it to the pin's registers.
// Validation happens before any hardware touch; an invalid intent leaves the
// registers exactly as they were. Register writes are idempotent, so
// reapplying with corrected parameters converges to the requested state.
func Configure(hw Hardware, d *Descriptor, c Config) error {
	if !c.Mode.valid() {
		return errcode.New(errcode.InvalidMode, "configure",
			"invalid pin mode: "+strconv.Itoa(int(c.Mode)))
	}
	if !c.Pull.valid() {
		return errcode.New(errcode.InvalidPull, "configure",
			"invalid pin pull: "+strconv.Itoa(int(c.Pull)))
	}

	hw.EnableClock(ClockIOCON)

	// The mux word carries the final intended function; write it before any
	// direction change so the mux never lags a live GPIO transition.
	hw.SetMux(d.Port, d.Pin, Encode(c))

	if c.AF != AFGPIO {
		// The selected peripheral owns direction and output behaviour.
		return nil
	}

	hw.EnableClock(gpioClock(d.Port))
	if c.Mode == ModeInput {
		hw.DirClr(d.Port, d.Mask())
		return nil
	}
	// Drive the requested level before enabling the output driver to avoid
	// a glitch on the first edge.
	if c.Value != nil {
		hw.Write(d.Port, d.Pin, *c.Value)
	}
	hw.DirSet(d.Port, d.Mask())
	return nil
}

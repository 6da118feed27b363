package pin

import "strings"

// Mode selects the electrical configuration of a pin. The low 12 bits are
// OR'd verbatim into the IOCON control word; higher bits only discriminate
// variants that share the same packed encoding.
type Mode uint16

const (
	modeOutputBit    Mode = 1 << 10 // output driver enabled
	modeOpenDrainBit Mode = 1 << 11 // open-drain output stage
	modeAltFlag      Mode = 1 << 12 // function chosen by AF index, not GPIO
	modeAnalogFlag   Mode = 1 << 13
)

const (
	ModeInput           Mode = 0
	ModeOutputPushPull  Mode = modeOutputBit
	ModeOutputOpenDrain Mode = modeOutputBit | modeOpenDrainBit
	ModeAltPushPull     Mode = modeAltFlag | modeOutputBit
	ModeAltOpenDrain    Mode = modeAltFlag | modeOutputBit | modeOpenDrainBit
	ModeAnalog          Mode = modeAnalogFlag
)

func (m Mode) valid() bool {
	switch m {
	case ModeInput, ModeOutputPushPull, ModeOutputOpenDrain,
		ModeAltPushPull, ModeAltOpenDrain, ModeAnalog:
		return true
	}
	return false
}

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "in"
	case ModeOutputPushPull:
		return "out"
	case ModeOutputOpenDrain:
		return "open_drain"
	case ModeAltPushPull:
		return "alt"
	case ModeAltOpenDrain:
		return "alt_open_drain"
	case ModeAnalog:
		return "analog"
	default:
		return "invalid"
	}
}

// ParseMode converts a config string to a Mode.
// Accepts: "in"/"input", "out"/"output", "open_drain", "alt",
// "alt_open_drain", "analog" (case-insensitive).
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "in", "input":
		return ModeInput, true
	case "out", "output":
		return ModeOutputPushPull, true
	case "open_drain":
		return ModeOutputOpenDrain, true
	case "alt":
		return ModeAltPushPull, true
	case "alt_open_drain":
		return ModeAltOpenDrain, true
	case "analog":
		return ModeAnalog, true
	default:
		return 0, false
	}
}

// Pull selects the passive bias resistor. Values are the raw IOCON MODE
// field encoding (bits 5:4): inactive, pull-down, pull-up, repeater.
type Pull uint8

const (
	PullNone     Pull = 0
	PullDown     Pull = 1
	PullUp       Pull = 2
	PullRepeater Pull = 3
)

func (p Pull) valid() bool { return p <= PullRepeater }

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	case PullRepeater:
		return "repeater"
	default:
		return "none"
	}
}

// ParsePull converts a config string to a Pull. The zero value ("no pull")
// covers the omitted case.
func ParsePull(s string) (Pull, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return PullNone, true
	case "up", "pullup":
		return PullUp, true
	case "down", "pulldown":
		return PullDown, true
	case "repeater":
		return PullRepeater, true
	default:
		return 0, false
	}
}

// Config is the configuration intent for a single Configure call. It has no
// identity beyond that call; it is consumed and discarded.
type Config struct {
	Mode      Mode
	Pull      Pull  // zero value = no pull
	AF        uint8 // alternate function index, AFGPIO for plain GPIO
	Value     *bool // optional initial output level (outputs only)
	Invert    bool  // polarity inversion
	FilterOff bool  // disable the input glitch filter
}

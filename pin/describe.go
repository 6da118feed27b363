package pin

import (
	"strconv"
	"strings"
)

// CurrentMode reads back the live packed mode value for a pin: the control
// word with the pull field stripped (the function select stays embedded, as
// the hardware reports it).
func CurrentMode(hw Hardware, d *Descriptor) uint32 {
	return hw.Mux(d.Port, d.Pin) &^ PullMask
}

// CurrentPull reads back the live pull selection.
func CurrentPull(hw Hardware, d *Descriptor) Pull {
	return Pull((hw.Mux(d.Port, d.Pin) & PullMask) >> PullPos)
}

// CurrentAF reads back the live alternate-function index.
func CurrentAF(hw Hardware, d *Descriptor) uint8 {
	return uint8(hw.Mux(d.Port, d.Pin) & FuncMask)
}

// Describe renders a pin's current electrical configuration from the live
// register state. Descriptive only; never mutates anything.
func Describe(hw Hardware, d *Descriptor) string {
	var b strings.Builder
	b.WriteString("Pin(")
	b.WriteString(d.Name)

	mode := CurrentMode(hw, d)
	if mode&DigitalBit == 0 {
		b.WriteString(", mode=ANALOG)")
		return b.String()
	}

	if mode&uint32(modeOutputBit) == 0 {
		b.WriteString(", mode=IN")
	} else {
		b.WriteString(", mode=OUT")
	}
	// open drain reads back as a suffix on either direction
	if mode&OpenDrainBit != 0 {
		b.WriteString("_OPEN_DRAIN")
	}

	switch CurrentPull(hw, d) {
	case PullUp:
		b.WriteString(", pull=PULL_UP")
	case PullDown:
		b.WriteString(", pull=PULL_DOWN")
	case PullRepeater:
		b.WriteString(", pull=REPEATER")
	}

	if af := uint8(mode & FuncMask); af == AFGPIO {
		b.WriteString(", Func=GPIO)")
	} else if a, ok := d.FindAF(af); ok {
		b.WriteString(", af=")
		b.WriteString(a.Name)
		b.WriteString(")")
	} else {
		b.WriteString(", af=")
		b.WriteString(strconv.Itoa(int(af)))
		b.WriteString(")")
	}
	return b.String()
}

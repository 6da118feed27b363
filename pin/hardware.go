package pin

// Clock identifies a gated peripheral clock.
type Clock uint8

const (
	ClockIOCON Clock = iota
	ClockGPIO0
	ClockGPIO1
	ClockGPIO2
	ClockGPIO3
	ClockGPIO4
	ClockGPIO5
)

func (c Clock) String() string {
	switch c {
	case ClockIOCON:
		return "iocon"
	case ClockGPIO0, ClockGPIO1, ClockGPIO2, ClockGPIO3, ClockGPIO4, ClockGPIO5:
		return "gpio" + string('0'+byte(c-ClockGPIO0))
	default:
		return "unknown"
	}
}

// gpioBankSplit is the port index where the second GPIO clock group starts.
// Ports below it gate through the GPIO0 group, ports at or above through the
// GPIO4 group. This mirrors a hardware bank boundary; keep it exact.
const gpioBankSplit = 4

func gpioClock(port uint8) Clock {
	if port < gpioBankSplit {
		return ClockGPIO0 + Clock(port)
	}
	return ClockGPIO4 + Clock(port-gpioBankSplit)
}

// Hardware is the register-level backend the configurator drives. Real
// implementations write memory-mapped registers; tests use a recording
// simulator. All operations are assumed infallible at this layer.
type Hardware interface {
	// EnableClock opens a peripheral clock gate. Idempotent.
	EnableClock(c Clock)

	// SetMux writes the packed control word for one pin.
	SetMux(port, pin uint8, word uint32)
	// Mux reads back the packed control word for one pin.
	Mux(port, pin uint8) uint32

	// DirSet / DirClr set or clear direction bits for a port (output / input).
	DirSet(port uint8, mask uint32)
	DirClr(port uint8, mask uint32)

	// Write drives an output level; Read samples the current level.
	Write(port, pin uint8, level bool)
	Read(port, pin uint8) bool
}

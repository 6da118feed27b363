package pin

// AF is one alternate function a pin can be muxed to. The index is the value
// written into the low FUNC bits of the control word; Periph names the
// peripheral block that owns the pin while the function is selected.
type AF struct {
	Name   string
	Index  uint8
	Periph string // "" when no peripheral handle is associated
}

func (a AF) String() string { return a.Name }

// Descriptor identifies one physical pin. Descriptors are built at program
// start, never mutated, and only ever referenced: (Port, Pin) is unique, and
// two identifiers naming the same pin resolve to the same *Descriptor.
type Descriptor struct {
	Name string // cpu-level name, e.g. "P0_4"
	Port uint8
	Pin  uint8 // 0..31 within the port
	AFs  []AF  // fixed list of available alternate functions
}

func (d *Descriptor) String() string { return d.Name }

// Mask returns the pin's bit within its port's direction/level registers.
func (d *Descriptor) Mask() uint32 { return 1 << d.Pin }

// FindAF scans the pin's alternate-function list for a matching index.
// Absence is not an error; callers render the raw index instead.
func (d *Descriptor) FindAF(index uint8) (AF, bool) {
	for _, a := range d.AFs {
		if a.Index == index {
			return a, true
		}
	}
	return AF{}, false
}

// AFList returns a snapshot of the pin's alternate-function list. The catalog
// is immutable, so repeated calls yield structurally equal slices.
func (d *Descriptor) AFList() []AF {
	out := make([]AF, len(d.AFs))
	copy(out, d.AFs)
	return out
}

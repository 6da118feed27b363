package platform

import (
	"sync"

	"pinctl-go/pin"
)

// Op kinds recorded by the simulator.
const (
	OpClock  = "clock"
	OpMux    = "mux"
	OpDirSet = "dirset"
	OpDirClr = "dirclr"
	OpWrite  = "write"
)

// Op is one recorded hardware access, in issue order.
type Op struct {
	Kind  string
	Clock pin.Clock
	Port  uint8
	Pin   uint8
	Mask  uint32
	Word  uint32
	Level bool
}

// Sim is an in-memory register backend. It records every access in order so
// tests and the CLI can assert on exactly what a configuration would do to
// the hardware.
type Sim struct {
	mu     sync.Mutex
	mux    map[[2]uint8]uint32
	dir    map[uint8]uint32
	out    map[[2]uint8]bool
	in     map[[2]uint8]bool
	clocks map[pin.Clock]bool
	log    []Op
}

var _ pin.Hardware = (*Sim)(nil)

func NewSim() *Sim {
	return &Sim{
		mux:    make(map[[2]uint8]uint32),
		dir:    make(map[uint8]uint32),
		out:    make(map[[2]uint8]bool),
		in:     make(map[[2]uint8]bool),
		clocks: make(map[pin.Clock]bool),
	}
}

func (s *Sim) EnableClock(c pin.Clock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clocks[c] = true
	s.log = append(s.log, Op{Kind: OpClock, Clock: c})
}

func (s *Sim) SetMux(port, p uint8, word uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mux[[2]uint8{port, p}] = word
	s.log = append(s.log, Op{Kind: OpMux, Port: port, Pin: p, Word: word})
}

func (s *Sim) Mux(port, p uint8) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mux[[2]uint8{port, p}]
}

func (s *Sim) DirSet(port uint8, mask uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir[port] |= mask
	s.log = append(s.log, Op{Kind: OpDirSet, Port: port, Mask: mask})
}

func (s *Sim) DirClr(port uint8, mask uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir[port] &^= mask
	s.log = append(s.log, Op{Kind: OpDirClr, Port: port, Mask: mask})
}

func (s *Sim) Write(port, p uint8, level bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out[[2]uint8{port, p}] = level
	s.log = append(s.log, Op{Kind: OpWrite, Port: port, Pin: p, Level: level})
}

// Read returns the driven level for outputs and the externally applied level
// (see Drive) for inputs.
func (s *Sim) Read(port, p uint8) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dir[port]&(1<<p) != 0 {
		return s.out[[2]uint8{port, p}]
	}
	return s.in[[2]uint8{port, p}]
}

// Drive sets the level seen on an input pin, simulating the external world.
func (s *Sim) Drive(port, p uint8, level bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.in[[2]uint8{port, p}] = level
}

// ClockEnabled reports whether a clock gate has been opened.
func (s *Sim) ClockEnabled(c pin.Clock) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clocks[c]
}

// Dir returns the direction register value for a port.
func (s *Sim) Dir(port uint8) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir[port]
}

// Ops returns a copy of the recorded access log.
func (s *Sim) Ops() []Op {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Op, len(s.log))
	copy(out, s.log)
	return out
}

// Reset clears the access log but keeps register state.
func (s *Sim) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log = nil
}

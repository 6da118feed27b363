package pin

import (
	"fmt"
	"io"
	"os"
	"sync"

	"pinctl-go/errcode"
)

// MapperFunc is a user-installed resolution hook. It returns nil for "no
// mapping" (resolution falls through to the next strategy), a *Descriptor on
// success, or anything else to fail the resolve with InvalidMapperResult.
// The loose return type mirrors the loosely typed callers this hook serves.
type MapperFunc func(id any) any

// Resolver turns arbitrary identifiers into pin descriptors by trying an
// ordered list of strategies: descriptor pass-through, user mapper, user
// override table, board-name catalog, cpu-name catalog. First match wins.
//
// The mapper, override table and debug flag form the mutable registry; the
// catalogs never change. Registry access is guarded so the resolver stays
// safe under preemptive schedulers even though the reference target needs
// none of it.
type Resolver struct {
	board *Table
	cpu   *Table

	mu        sync.RWMutex
	mapper    MapperFunc
	overrides map[any]*Descriptor
	debug     bool
	trace     io.Writer
}

func NewResolver(board, cpu *Table) *Resolver {
	if board == nil {
		board = NewTable()
	}
	if cpu == nil {
		cpu = NewTable()
	}
	return &Resolver{board: board, cpu: cpu, trace: os.Stdout}
}

// Display renders an identifier for diagnostics and error messages.
func Display(id any) string {
	switch v := id.(type) {
	case nil:
		return "<nil>"
	case *Descriptor:
		return v.Name
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Resolve maps an identifier to exactly one descriptor, or fails with
// InvalidIdentifier. Strategy order is the precedence policy: explicit
// identity first, then the programmer overrides, then the static catalogs.
// Callers can shadow any catalog name without touching the catalog.
func (r *Resolver) Resolve(id any) (*Descriptor, error) {
	strategies := []struct {
		name string
		fn   func(any) (*Descriptor, error)
	}{
		{"direct", r.resolveDirect},
		{"mapper", r.resolveMapper},
		{"override", r.resolveOverride},
		{"board", r.resolveBoard},
		{"cpu", r.resolveCPU},
	}
	for _, s := range strategies {
		d, err := s.fn(id)
		if err != nil {
			return nil, err
		}
		if d != nil {
			return d, nil
		}
	}
	return nil, errcode.New(errcode.InvalidIdentifier, "resolve",
		"pin '"+Display(id)+"' is not a valid pin identifier")
}

func (r *Resolver) resolveDirect(id any) (*Descriptor, error) {
	d, ok := id.(*Descriptor)
	if !ok {
		return nil, nil
	}
	r.tracef("pin: map passed pin %s\n", d.Name)
	return d, nil
}

func (r *Resolver) resolveMapper(id any) (*Descriptor, error) {
	m := r.Mapper()
	if m == nil {
		return nil, nil
	}
	r.tracef("pin: mapper called with %s\n", Display(id))
	res := m(id)
	if res == nil {
		// The mapper declining to resolve is not an error.
		r.tracef("pin: mapper has no mapping for %s\n", Display(id))
		return nil, nil
	}
	d, ok := res.(*Descriptor)
	if !ok {
		return nil, errcode.New(errcode.InvalidMapperResult, "resolve",
			"mapper didn't return a pin descriptor for '"+Display(id)+"'")
	}
	r.tracef("pin: mapper maps %s to %s\n", Display(id), d.Name)
	return d, nil
}

func (r *Resolver) resolveOverride(id any) (*Descriptor, error) {
	r.mu.RLock()
	tbl := r.overrides
	r.mu.RUnlock()
	if tbl == nil {
		return nil, nil
	}
	r.tracef("pin: override lookup for %s\n", Display(id))
	d, ok := lookupOverride(tbl, id)
	if !ok {
		r.tracef("pin: override has no entry for %s\n", Display(id))
		return nil, nil
	}
	r.tracef("pin: override maps %s to %s\n", Display(id), d.Name)
	return d, nil
}

// lookupOverride treats identifiers the map cannot hash (slices, maps,
// funcs, or values containing them) as absent, so they fall through to the
// remaining strategies instead of crashing the resolve.
func lookupOverride(tbl map[any]*Descriptor, id any) (d *Descriptor, ok bool) {
	defer func() {
		if recover() != nil {
			d, ok = nil, false
		}
	}()
	d, ok = tbl[id]
	return d, ok
}

func (r *Resolver) resolveBoard(id any) (*Descriptor, error) {
	name, ok := id.(string)
	if !ok {
		return nil, nil
	}
	d, ok := r.board.Find(name)
	if !ok {
		return nil, nil
	}
	r.tracef("pin: board maps %s to %s\n", name, d.Name)
	return d, nil
}

func (r *Resolver) resolveCPU(id any) (*Descriptor, error) {
	name, ok := id.(string)
	if !ok {
		return nil, nil
	}
	d, ok := r.cpu.Find(name)
	if !ok {
		return nil, nil
	}
	r.tracef("pin: cpu maps %s to %s\n", name, d.Name)
	return d, nil
}

// Names returns all names for a pin: its cpu name followed by every board
// alias pointing at the same descriptor, in catalog order.
func (r *Resolver) Names(d *Descriptor) []string {
	out := []string{d.Name}
	for _, n := range r.board.Names() {
		if b, _ := r.board.Find(n); b == d {
			out = append(out, n)
		}
	}
	return out
}

// Board returns the board-name catalog.
func (r *Resolver) Board() *Table { return r.board }

// CPU returns the cpu-name catalog.
func (r *Resolver) CPU() *Table { return r.cpu }

// SetMapper installs (or, with nil, removes) the user mapper callback.
func (r *Resolver) SetMapper(m MapperFunc) {
	r.mu.Lock()
	r.mapper = m
	r.mu.Unlock()
}

func (r *Resolver) Mapper() MapperFunc {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mapper
}

// SetOverrides installs (or, with nil, removes) the user override table.
func (r *Resolver) SetOverrides(t map[any]*Descriptor) {
	r.mu.Lock()
	r.overrides = t
	r.mu.Unlock()
}

func (r *Resolver) Overrides() map[any]*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.overrides
}

// SetDebug toggles resolution tracing. Tracing has no behavioral effect.
func (r *Resolver) SetDebug(on bool) {
	r.mu.Lock()
	r.debug = on
	r.mu.Unlock()
}

func (r *Resolver) Debug() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.debug
}

// SetTrace redirects trace output (default os.Stdout).
func (r *Resolver) SetTrace(w io.Writer) {
	r.mu.Lock()
	r.trace = w
	r.mu.Unlock()
}

func (r *Resolver) tracef(format string, args ...any) {
	r.mu.RLock()
	on, w := r.debug, r.trace
	r.mu.RUnlock()
	if !on || w == nil {
		return
	}
	fmt.Fprintf(w, format, args...)
}

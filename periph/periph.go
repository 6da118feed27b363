// Package periph hands out bus handles for the peripherals named in a pin's
// alternate-function catalog. A pin muxed to, say, FLEXCOMM2's SDA function
// belongs to that Flexcomm; claiming the handle is how the rest of the
// system talks to it.
package periph

import (
	"sync"

	"tinygo.org/x/drivers"

	"pinctl-go/errcode"
	"pinctl-go/pin"
)

// Registry maps peripheral names (as they appear in AF catalogs) to bus
// handles. Registration happens at start-up; claims may come from anywhere.
type Registry struct {
	mu  sync.RWMutex
	i2c map[string]drivers.I2C
}

func NewRegistry() *Registry {
	return &Registry{i2c: make(map[string]drivers.I2C)}
}

// RegisterI2C installs an I2C handle for a peripheral name.
// It panics on duplicate registration to catch wiring mistakes at start-up.
func (r *Registry) RegisterI2C(name string, bus drivers.I2C) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if name == "" {
		panic("periph: empty peripheral name")
	}
	if _, exists := r.i2c[name]; exists {
		panic("periph: i2c handle already registered for " + name)
	}
	r.i2c[name] = bus
}

// ClaimI2C returns the I2C handle registered for a peripheral name.
func (r *Registry) ClaimI2C(name string) (drivers.I2C, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.i2c[name]
	if !ok {
		return nil, errcode.New(errcode.UnknownPeriph, "claim_i2c", name)
	}
	return b, nil
}

// ClaimPinI2C claims the I2C handle of the peripheral owning the pin's
// selected alternate function.
func (r *Registry) ClaimPinI2C(d *pin.Descriptor, af uint8) (drivers.I2C, error) {
	a, ok := d.FindAF(af)
	if !ok || a.Periph == "" {
		return nil, errcode.New(errcode.UnknownPeriph, "claim_i2c",
			d.Name+" af "+pin.Display(int(af)))
	}
	return r.ClaimI2C(a.Periph)
}

// Package config holds the JSON document shapes accepted on config/pins.
package config

import (
	"pinctl-go/errcode"
	"pinctl-go/pin"
)

type PinsConfig struct {
	Version int      `json:"version"`
	Debug   bool     `json:"debug"`
	Pins    []PinCfg `json:"pins"`
}

type PinCfg struct {
	ID        string `json:"id"`   // board alias, cpu name, or mapper key
	Mode      string `json:"mode"` // "in", "out", "open_drain", "alt", "alt_open_drain", "analog"
	Pull      string `json:"pull,omitempty"`
	AF        int    `json:"af,omitempty"`
	Value     *bool  `json:"value,omitempty"`
	Invert    bool   `json:"invert,omitempty"`
	FilterOff bool   `json:"filter_off,omitempty"`
}

// Intent converts the document entry into a configuration intent. String
// enums fail here so a bad document never reaches the register layer.
func (c PinCfg) Intent() (pin.Config, error) {
	mode, ok := pin.ParseMode(c.Mode)
	if !ok {
		return pin.Config{}, errcode.New(errcode.InvalidMode, "config",
			"invalid pin mode: "+c.Mode)
	}
	pull, ok := pin.ParsePull(c.Pull)
	if !ok {
		return pin.Config{}, errcode.New(errcode.InvalidPull, "config",
			"invalid pin pull: "+c.Pull)
	}
	if c.AF < 0 || c.AF > 15 {
		return pin.Config{}, errcode.New(errcode.InvalidPayload, "config",
			"alternate function index out of range")
	}
	return pin.Config{
		Mode:      mode,
		Pull:      pull,
		AF:        uint8(c.AF),
		Value:     c.Value,
		Invert:    c.Invert,
		FilterOff: c.FilterOff,
	}, nil
}

//go:build !lpc54628

package platform

import "pinctl-go/pin"

// Default returns the backend for this build: the simulator on hosts.
func Default() pin.Hardware { return NewSim() }

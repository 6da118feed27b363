//go:build lpc54628

package platform

import "pinctl-go/pin"

// Default returns the backend for this build: the real register map.
func Default() pin.Hardware { return LPC546xx{} }

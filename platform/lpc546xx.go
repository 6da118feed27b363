//go:build lpc54628

package platform

import (
	"runtime/volatile"
	"unsafe"

	"pinctl-go/pin"
)

// Memory map for the LPC546xx pin path.
const (
	sysconBase uintptr = 0x40000000
	ioconBase  uintptr = 0x40001000
	gpioBase   uintptr = 0x4008C000

	// SYSCON AHB clock control: write-1-to-set gates, one register per group.
	ahbClkCtrlSet = 0x220

	// GPIO register offsets.
	gpioOffByte   = 0x0000 // B[port][pin], byte access
	gpioOffDirSet = 0x2380 // DIRSET[port]
	gpioOffDirClr = 0x2400 // DIRCLR[port]
)

func reg32(addr uintptr) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Pointer(addr))
}

func reg8(addr uintptr) *volatile.Register8 {
	return (*volatile.Register8)(unsafe.Pointer(addr))
}

// clockGate maps a Clock to its AHBCLKCTRL group register and bit.
func clockGate(c pin.Clock) (group uintptr, bit uint32) {
	switch c {
	case pin.ClockIOCON:
		return 0, 13
	case pin.ClockGPIO0, pin.ClockGPIO1, pin.ClockGPIO2, pin.ClockGPIO3:
		return 0, 14 + uint32(c-pin.ClockGPIO0)
	default: // ClockGPIO4, ClockGPIO5 sit in group 2
		return 2, 15 + uint32(c-pin.ClockGPIO4)
	}
}

// LPC546xx drives the real IOCON/GPIO/SYSCON blocks. Register accesses go
// through volatile loads/stores; the SET/CLR register style keeps the
// direction updates free of read-modify-write hazards.
type LPC546xx struct{}

var _ pin.Hardware = LPC546xx{}

func (LPC546xx) EnableClock(c pin.Clock) {
	group, bit := clockGate(c)
	reg32(sysconBase + ahbClkCtrlSet + group*4).Set(1 << bit)
}

func (LPC546xx) SetMux(port, p uint8, word uint32) {
	reg32(ioconBase + (uintptr(port)*32+uintptr(p))*4).Set(word)
}

func (LPC546xx) Mux(port, p uint8) uint32 {
	return reg32(ioconBase + (uintptr(port)*32+uintptr(p))*4).Get()
}

func (LPC546xx) DirSet(port uint8, mask uint32) {
	reg32(gpioBase + gpioOffDirSet + uintptr(port)*4).Set(mask)
}

func (LPC546xx) DirClr(port uint8, mask uint32) {
	reg32(gpioBase + gpioOffDirClr + uintptr(port)*4).Set(mask)
}

func (LPC546xx) Write(port, p uint8, level bool) {
	v := uint8(0)
	if level {
		v = 1
	}
	reg8(gpioBase + gpioOffByte + uintptr(port)*32 + uintptr(p)).Set(v)
}

func (LPC546xx) Read(port, p uint8) bool {
	return reg8(gpioBase+gpioOffByte+uintptr(port)*32+uintptr(p)).Get() != 0
}

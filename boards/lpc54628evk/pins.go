// Package lpc54628evk carries the fixed pin catalogs for the LPC54628 EVK
// board: the cpu-level port/pin names, the board-level aliases printed on the
// silkscreen, and each pin's alternate-function list. All data is built at
// start-up and never mutated.
package lpc54628evk

import "pinctl-go/pin"

// Cpu pin descriptors. (Port, Pin) is unique; board aliases below reference
// these same descriptors.
var (
	P0_0 = &pin.Descriptor{Name: "P0_0", Port: 0, Pin: 0, AFs: []pin.AF{
		{Name: "FC3_SCK", Index: 2, Periph: "FLEXCOMM3"},
	}}
	P0_4 = &pin.Descriptor{Name: "P0_4", Port: 0, Pin: 4, AFs: []pin.AF{
		{Name: "CAN0_RD", Index: 1, Periph: "CAN0"},
		{Name: "CTIMER3_MAT0", Index: 3, Periph: "CTIMER3"},
	}}
	P0_5 = &pin.Descriptor{Name: "P0_5", Port: 0, Pin: 5, AFs: []pin.AF{
		{Name: "CAN0_TD", Index: 1, Periph: "CAN0"},
		{Name: "CTIMER3_MAT1", Index: 3, Periph: "CTIMER3"},
	}}
	P0_6 = &pin.Descriptor{Name: "P0_6", Port: 0, Pin: 6, AFs: []pin.AF{
		{Name: "FC3_SCK", Index: 1, Periph: "FLEXCOMM3"},
		{Name: "CTIMER3_CAP1", Index: 3, Periph: "CTIMER3"},
	}}
	P0_10 = &pin.Descriptor{Name: "P0_10", Port: 0, Pin: 10, AFs: []pin.AF{
		{Name: "FC6_SCK", Index: 1, Periph: "FLEXCOMM6"},
		{Name: "SWO", Index: 6, Periph: ""},
	}}
	P0_20 = &pin.Descriptor{Name: "P0_20", Port: 0, Pin: 20, AFs: []pin.AF{
		{Name: "FC3_CTS_SDA_SSEL0", Index: 1, Periph: "FLEXCOMM3"},
		{Name: "FC7_RXD_SDA_MOSI", Index: 7, Periph: "FLEXCOMM7"},
	}}
	P0_21 = &pin.Descriptor{Name: "P0_21", Port: 0, Pin: 21, AFs: []pin.AF{
		{Name: "FC3_RTS_SCL_SSEL1", Index: 1, Periph: "FLEXCOMM3"},
		{Name: "FC7_TXD_SCL_MISO", Index: 7, Periph: "FLEXCOMM7"},
	}}
	P0_26 = &pin.Descriptor{Name: "P0_26", Port: 0, Pin: 26, AFs: []pin.AF{
		{Name: "FC2_RXD_SDA_MOSI", Index: 1, Periph: "FLEXCOMM2"},
		{Name: "CTIMER0_CAP3", Index: 4, Periph: "CTIMER0"},
	}}
	P0_27 = &pin.Descriptor{Name: "P0_27", Port: 0, Pin: 27, AFs: []pin.AF{
		{Name: "FC2_TXD_SCL_MISO", Index: 1, Periph: "FLEXCOMM2"},
		{Name: "CTIMER3_MAT2", Index: 3, Periph: "CTIMER3"},
	}}
	P0_29 = &pin.Descriptor{Name: "P0_29", Port: 0, Pin: 29, AFs: []pin.AF{
		{Name: "FC0_RXD_SDA_MOSI", Index: 1, Periph: "FLEXCOMM0"},
		{Name: "CTIMER2_MAT3", Index: 3, Periph: "CTIMER2"},
	}}
	P0_30 = &pin.Descriptor{Name: "P0_30", Port: 0, Pin: 30, AFs: []pin.AF{
		{Name: "FC0_TXD_SCL_MISO", Index: 1, Periph: "FLEXCOMM0"},
		{Name: "CTIMER0_MAT0", Index: 3, Periph: "CTIMER0"},
	}}

	P1_1 = &pin.Descriptor{Name: "P1_1", Port: 1, Pin: 1, AFs: []pin.AF{
		{Name: "FC3_RXD_SDA_MOSI", Index: 1, Periph: "FLEXCOMM3"},
	}}
	P1_9 = &pin.Descriptor{Name: "P1_9", Port: 1, Pin: 9, AFs: []pin.AF{
		{Name: "FC1_SCK", Index: 2, Periph: "FLEXCOMM1"},
		{Name: "CTIMER1_CAP0", Index: 5, Periph: "CTIMER1"},
	}}
	P1_22 = &pin.Descriptor{Name: "P1_22", Port: 1, Pin: 22, AFs: []pin.AF{
		{Name: "FC8_RTS_SCL_SSEL1", Index: 1, Periph: "FLEXCOMM8"},
	}}

	P2_2 = &pin.Descriptor{Name: "P2_2", Port: 2, Pin: 2, AFs: []pin.AF{
		{Name: "ENET_CRS", Index: 1, Periph: "ENET"},
	}}

	P3_3 = &pin.Descriptor{Name: "P3_3", Port: 3, Pin: 3, AFs: []pin.AF{
		{Name: "LCD_VD15", Index: 1, Periph: "LCD"},
	}}
	P3_14 = &pin.Descriptor{Name: "P3_14", Port: 3, Pin: 14, AFs: []pin.AF{
		{Name: "SCT0_OUT4", Index: 2, Periph: "SCT0"},
	}}

	P4_26 = &pin.Descriptor{Name: "P4_26", Port: 4, Pin: 26, AFs: []pin.AF{
		{Name: "FC9_SCK", Index: 2, Periph: "FLEXCOMM9"},
	}}

	P5_0 = &pin.Descriptor{Name: "P5_0", Port: 5, Pin: 0, AFs: []pin.AF{
		{Name: "FC4_SCK", Index: 2, Periph: "FLEXCOMM4"},
	}}
	P5_10 = &pin.Descriptor{Name: "P5_10", Port: 5, Pin: 10, AFs: nil}
)

var cpuPins = []*pin.Descriptor{
	P0_0, P0_4, P0_5, P0_6, P0_10, P0_20, P0_21, P0_26, P0_27, P0_29, P0_30,
	P1_1, P1_9, P1_22,
	P2_2,
	P3_3, P3_14,
	P4_26,
	P5_0, P5_10,
}

var cpuTable = func() *pin.Table {
	t := pin.NewTable()
	for _, d := range cpuPins {
		t.Add(d.Name, d)
	}
	return t
}()

var boardTable = pin.NewTable().
	// Arduino-style header
	Add("D0", P0_29).
	Add("D1", P0_30).
	Add("D14", P0_26).
	Add("D15", P0_27).
	Add("SDA", P0_26).
	Add("SCL", P0_27).
	Add("MOSI", P0_20).
	Add("MISO", P0_21).
	Add("SCK", P0_0).
	// User LEDs and buttons
	Add("LED1", P2_2).
	Add("LED2", P3_3).
	Add("LED3", P3_14).
	Add("SW3", P0_6).
	Add("SW4", P1_1).
	Add("SW5", P1_9)

// CPU returns the silicon-level name catalog.
func CPU() *pin.Table { return cpuTable }

// Board returns the application-facing alias catalog.
func Board() *pin.Table { return boardTable }

// NewResolver returns a resolver over this board's catalogs.
func NewResolver() *pin.Resolver { return pin.NewResolver(boardTable, cpuTable) }

package pin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinctl-go/errcode"
	"pinctl-go/pin"
	"pinctl-go/platform"
)

func boolp(v bool) *bool { return &v }

func TestEncode(t *testing.T) {
	cases := []struct {
		name string
		cfg  pin.Config
		want uint32
	}{
		{
			name: "input default",
			cfg:  pin.Config{Mode: pin.ModeInput},
			want: pin.DigitalBit | pin.FilterBit,
		},
		{
			name: "input pull up",
			cfg:  pin.Config{Mode: pin.ModeInput, Pull: pin.PullUp},
			want: pin.DigitalBit | pin.FilterBit | uint32(pin.PullUp)<<pin.PullPos,
		},
		{
			name: "output push pull",
			cfg:  pin.Config{Mode: pin.ModeOutputPushPull},
			want: pin.DigitalBit | pin.FilterBit | 1<<10,
		},
		{
			name: "output open drain",
			cfg:  pin.Config{Mode: pin.ModeOutputOpenDrain},
			want: pin.DigitalBit | pin.FilterBit | 1<<10 | pin.OpenDrainBit,
		},
		{
			name: "alt function 2",
			cfg:  pin.Config{Mode: pin.ModeAltPushPull, AF: 2},
			want: pin.DigitalBit | pin.FilterBit | 1<<10 | 2,
		},
		{
			name: "invert",
			cfg:  pin.Config{Mode: pin.ModeInput, Invert: true},
			want: pin.DigitalBit | pin.FilterBit | pin.InvertBit,
		},
		{
			name: "filter disabled",
			cfg:  pin.Config{Mode: pin.ModeInput, FilterOff: true},
			want: pin.DigitalBit,
		},
		{
			name: "repeater",
			cfg:  pin.Config{Mode: pin.ModeInput, Pull: pin.PullRepeater},
			want: pin.DigitalBit | pin.FilterBit | uint32(pin.PullRepeater)<<pin.PullPos,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, pin.Encode(c.cfg))
		})
	}
}

func TestConfigureValidatesBeforeTouchingHardware(t *testing.T) {
	hw := platform.NewSim()
	d := &pin.Descriptor{Name: "P0_4", Port: 0, Pin: 4}

	err := pin.Configure(hw, d, pin.Config{Mode: pin.Mode(0x7)})
	require.Error(t, err)
	assert.Equal(t, errcode.InvalidMode, errcode.Of(err))
	assert.Empty(t, hw.Ops(), "invalid mode must not reach the registers")

	err = pin.Configure(hw, d, pin.Config{Mode: pin.ModeInput, Pull: pin.Pull(9)})
	require.Error(t, err)
	assert.Equal(t, errcode.InvalidPull, errcode.Of(err))
	assert.Empty(t, hw.Ops())
}

func TestConfigureInput(t *testing.T) {
	hw := platform.NewSim()
	d := &pin.Descriptor{Name: "P0_4", Port: 0, Pin: 4}

	require.NoError(t, pin.Configure(hw, d, pin.Config{Mode: pin.ModeInput, Pull: pin.PullUp}))

	ops := hw.Ops()
	require.Len(t, ops, 4)
	assert.Equal(t, platform.Op{Kind: platform.OpClock, Clock: pin.ClockIOCON}, ops[0])
	assert.Equal(t, platform.OpMux, ops[1].Kind)
	assert.Equal(t, platform.Op{Kind: platform.OpClock, Clock: pin.ClockGPIO0}, ops[2])
	assert.Equal(t, platform.Op{Kind: platform.OpDirClr, Port: 0, Mask: 1 << 4}, ops[3])

	assert.Zero(t, hw.Dir(0)&(1<<4))
	assert.Equal(t, pin.PullUp, pin.CurrentPull(hw, d))
}

func TestConfigureOutputWritesValueBeforeDirection(t *testing.T) {
	hw := platform.NewSim()
	d := &pin.Descriptor{Name: "P2_2", Port: 2, Pin: 2}

	cfg := pin.Config{Mode: pin.ModeOutputPushPull, Value: boolp(true)}
	require.NoError(t, pin.Configure(hw, d, cfg))

	ops := hw.Ops()
	require.Len(t, ops, 5)
	assert.Equal(t, platform.Op{Kind: platform.OpClock, Clock: pin.ClockGPIO2}, ops[2])
	assert.Equal(t, platform.Op{Kind: platform.OpWrite, Port: 2, Pin: 2, Level: true}, ops[3])
	assert.Equal(t, platform.Op{Kind: platform.OpDirSet, Port: 2, Mask: 1 << 2}, ops[4])

	assert.True(t, hw.Read(2, 2))
}

func TestConfigureOutputWithoutValue(t *testing.T) {
	hw := platform.NewSim()
	d := &pin.Descriptor{Name: "P2_2", Port: 2, Pin: 2}

	require.NoError(t, pin.Configure(hw, d, pin.Config{Mode: pin.ModeOutputPushPull}))

	for _, op := range hw.Ops() {
		assert.NotEqual(t, platform.OpWrite, op.Kind, "no initial level was requested")
	}
	assert.NotZero(t, hw.Dir(2)&(1<<2))
}

func TestConfigureAltSkipsGPIO(t *testing.T) {
	hw := platform.NewSim()
	d := &pin.Descriptor{Name: "P0_26", Port: 0, Pin: 26}

	cfg := pin.Config{Mode: pin.ModeAltOpenDrain, AF: 1, Value: boolp(true)}
	require.NoError(t, pin.Configure(hw, d, cfg))

	ops := hw.Ops()
	require.Len(t, ops, 2, "alternate functions stop after the mux write")
	assert.Equal(t, platform.Op{Kind: platform.OpClock, Clock: pin.ClockIOCON}, ops[0])
	assert.Equal(t, platform.OpMux, ops[1].Kind)
	assert.Equal(t, uint8(1), pin.CurrentAF(hw, d))
	assert.False(t, hw.ClockEnabled(pin.ClockGPIO0))
}

func TestConfigureHighPortClockBank(t *testing.T) {
	hw := platform.NewSim()

	for _, tc := range []struct {
		port uint8
		clk  pin.Clock
	}{
		{0, pin.ClockGPIO0},
		{3, pin.ClockGPIO3},
		{4, pin.ClockGPIO4},
		{5, pin.ClockGPIO5},
	} {
		d := &pin.Descriptor{Name: "P", Port: tc.port, Pin: 0}
		require.NoError(t, pin.Configure(hw, d, pin.Config{Mode: pin.ModeInput}))
		assert.True(t, hw.ClockEnabled(tc.clk), "port %d should gate %v", tc.port, tc.clk)
	}
}

func TestConfigureReapplyConverges(t *testing.T) {
	hw := platform.NewSim()
	d := &pin.Descriptor{Name: "P1_9", Port: 1, Pin: 9}

	require.NoError(t, pin.Configure(hw, d, pin.Config{Mode: pin.ModeOutputPushPull, Value: boolp(true)}))
	require.NoError(t, pin.Configure(hw, d, pin.Config{Mode: pin.ModeInput, Pull: pin.PullDown}))

	assert.Zero(t, hw.Dir(1)&(1<<9))
	assert.Equal(t, pin.PullDown, pin.CurrentPull(hw, d))
	assert.Equal(t, pin.AFGPIO, pin.CurrentAF(hw, d))
}

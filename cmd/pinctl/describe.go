package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pinctl-go/pin"
)

var describeOpts = struct {
	mode string
	pull string
	af   int
}{}

var describeCmd = &cobra.Command{
	Use:   "describe <identifier>...",
	Short: "Apply a configuration to the simulator and read it back",
	Long: "Resolve each identifier, apply the given mode/pull/af to the simulated\n" +
		"backend and print the configuration as read back from the registers.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, ok := pin.ParseMode(describeOpts.mode)
		if !ok {
			return errors.Errorf("unknown mode %q", describeOpts.mode)
		}
		pull, ok := pin.ParsePull(describeOpts.pull)
		if !ok {
			return errors.Errorf("unknown pull %q", describeOpts.pull)
		}

		r := newResolver()
		hw := newBackend()
		for _, id := range args {
			d, err := r.Resolve(id)
			if err != nil {
				return errors.Wrapf(err, "resolving %q", id)
			}
			cfg := pin.Config{Mode: mode, Pull: pull, AF: uint8(describeOpts.af)}
			if err := pin.Configure(hw, d, cfg); err != nil {
				return errors.Wrapf(err, "configuring %s", d.Name)
			}
			fmt.Println(pin.Describe(hw, d))
		}
		return nil
	},
}

func init() {
	describeCmd.Flags().StringVar(&describeOpts.mode, "mode", "in",
		"pin mode (in, out, open_drain, alt, alt_open_drain, analog)")
	describeCmd.Flags().StringVar(&describeOpts.pull, "pull", "none",
		"pull selection (none, up, down, repeater)")
	describeCmd.Flags().IntVar(&describeOpts.af, "af", 0,
		"alternate function index (0 = GPIO)")
}

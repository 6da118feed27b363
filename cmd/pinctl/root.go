package main

import (
	"os"

	"github.com/spf13/cobra"

	"pinctl-go/boards/lpc54628evk"
	"pinctl-go/pin"
	"pinctl-go/platform"
)

var (
	rootOpts = struct {
		debug bool
	}{}

	rootCmd = &cobra.Command{
		Use:   "pinctl",
		Short: "Inspect and exercise LPC54628 EVK pin configuration",
		Long: "pinctl resolves pin identifiers against the LPC54628 EVK catalogs and\n" +
			"applies configuration documents to a simulated register backend,\n" +
			"printing the exact register traffic a real part would see.",
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootOpts.debug, "debug", false,
		"trace pin resolution steps on stderr")
	rootCmd.AddCommand(listCmd, resolveCmd, describeCmd, applyCmd)
}

func newResolver() *pin.Resolver {
	r := lpc54628evk.NewResolver()
	if rootOpts.debug {
		r.SetTrace(os.Stderr)
		r.SetDebug(true)
	}
	return r
}

func newBackend() *platform.Sim { return platform.NewSim() }

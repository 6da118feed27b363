package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pinctl-go/pin"
	"pinctl-go/platform"
	"pinctl-go/services/pinctl/config"
)

var applyCmd = &cobra.Command{
	Use:   "apply <config.json>",
	Short: "Apply a pin configuration document and print the register traffic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "reading document")
		}
		var cfg config.PinsConfig
		if err := json.Unmarshal(raw, &cfg); err != nil {
			return errors.Wrap(err, "decoding document")
		}

		r := newResolver()
		hw := newBackend()
		for _, pc := range cfg.Pins {
			d, err := r.Resolve(pc.ID)
			if err != nil {
				return errors.Wrapf(err, "resolving %q", pc.ID)
			}
			intent, err := pc.Intent()
			if err != nil {
				return errors.Wrapf(err, "entry %q", pc.ID)
			}
			if err := pin.Configure(hw, d, intent); err != nil {
				return errors.Wrapf(err, "configuring %s", d.Name)
			}
			fmt.Printf("%s: %s\n", pc.ID, pin.Describe(hw, d))
		}

		fmt.Println("Register traffic:")
		for _, op := range hw.Ops() {
			printOp(op)
		}
		return nil
	},
}

func printOp(op platform.Op) {
	switch op.Kind {
	case platform.OpClock:
		fmt.Printf("  clock enable %s\n", op.Clock)
	case platform.OpMux:
		fmt.Printf("  iocon[%d][%d] <- %#08x\n", op.Port, op.Pin, op.Word)
	case platform.OpDirSet:
		fmt.Printf("  dirset[%d] <- %#08x\n", op.Port, op.Mask)
	case platform.OpDirClr:
		fmt.Printf("  dirclr[%d] <- %#08x\n", op.Port, op.Mask)
	case platform.OpWrite:
		fmt.Printf("  gpio[%d][%d] <- %t\n", op.Port, op.Pin, op.Level)
	}
}

package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <identifier>...",
	Short: "Resolve pin identifiers to physical pins",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r := newResolver()
		for _, id := range args {
			d, err := r.Resolve(id)
			if err != nil {
				return errors.Wrapf(err, "resolving %q", id)
			}
			fmt.Printf("%s -> %s (port %d, pin %d; names: %s)\n",
				id, d.Name, d.Port, d.Pin, strings.Join(r.Names(d), ", "))
		}
		return nil
	},
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pinctl-go/boards/lpc54628evk"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the board and cpu pin catalogs",
	Run: func(cmd *cobra.Command, args []string) {
		r := newResolver()

		fmt.Println("Board aliases:")
		for _, name := range lpc54628evk.Board().Names() {
			d, _ := lpc54628evk.Board().Find(name)
			fmt.Printf("  %-6s -> %s\n", name, d.Name)
		}

		fmt.Println("Cpu pins:")
		for _, name := range lpc54628evk.CPU().Names() {
			d, _ := lpc54628evk.CPU().Find(name)
			var afs []string
			for _, a := range d.AFList() {
				afs = append(afs, fmt.Sprintf("%d:%s", a.Index, a.Name))
			}
			aliases := r.Names(d)[1:]
			line := fmt.Sprintf("  %-6s port %d pin %2d", name, d.Port, d.Pin)
			if len(aliases) > 0 {
				line += " (" + strings.Join(aliases, ", ") + ")"
			}
			if len(afs) > 0 {
				line += "  af " + strings.Join(afs, " ")
			}
			fmt.Println(line)
		}
	},
}

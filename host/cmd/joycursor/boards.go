package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"joycursor/host/config"
)

func newBoardsCmd() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "boards",
		Short: "List the built-in board profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			boards := config.All()
			if target != "" {
				boards = boards.ForTarget(target)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTARGET\tSETTLE\tDESCRIPTION")
			for _, b := range boards {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", b.Name, b.Target, b.Firmware.Settle, b.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&target, "target", "t", "", "only boards for this target (avr, rpi, sim)")
	return cmd
}

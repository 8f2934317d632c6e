package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"joycursor/host/monitor"
	"joycursor/host/serial"
)

type monitorOptions struct {
	baud int
	raw  bool
}

func newMonitorCmd(root *rootOptions) *cobra.Command {
	opts := &monitorOptions{}

	cmd := &cobra.Command{
		Use:   "monitor <device>",
		Short: "Print the line/column reports of a connected board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := root.logger(cmd.ErrOrStderr())

			cfg, err := root.firmware()
			if err != nil {
				return err
			}

			conn := monitor.NewConn(cfg)
			sc := serial.DefaultConfig(args[0])
			sc.Baud = opts.baud
			if err := conn.ConnectWithConfig(sc); err != nil {
				return err
			}
			defer conn.Close()
			log.Info("connected", "device", sc.Device, "baud", sc.Baud)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			var last monitor.Record
			first := true
			err = conn.Records(ctx,
				func(r monitor.Record) error {
					if opts.raw || first || r != last {
						first = false
						last = r
						_, err := fmt.Fprintln(out, r)
						return err
					}
					return nil
				},
				func(line string, err error) {
					log.Debug("skipped", "line", line, "err", err)
				})
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().IntVar(&opts.baud, "baud", serial.DefaultBaud, "baud rate")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print every record, not only changes")
	return cmd
}

// Command joycursor is the host tool for the joystick cursor firmware: it
// runs the firmware in a simulator, reads a real board's report UART and
// lists the built-in board profiles.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"joycursor/core"
	"joycursor/host/config"
)

type rootOptions struct {
	board   string
	cfgFile string
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "joycursor",
		Short:        "Host tools for the joystick cursor firmware",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.board, "board", "b", "uno", "board profile")
	cmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "YAML file overlaid on the board profile")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging and a timing dump on exit")

	cmd.AddCommand(newSimCmd(opts), newMonitorCmd(opts), newBoardsCmd())
	return cmd
}

func (o *rootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))

	core.SetDebugWriter(func(s string) { log.Debug(s) })
	core.SetDebugEnabled(o.verbose)
	return log
}

// firmware resolves the board profile and the optional overlay file.
func (o *rootOptions) firmware() (core.Config, error) {
	b, err := config.All().Find(o.board)
	if err != nil {
		return core.Config{}, err
	}
	if o.cfgFile == "" {
		return b.Firmware, nil
	}
	return config.LoadFile(o.cfgFile, b.Firmware)
}

type consoleWriter struct {
	w io.Writer
}

func (c consoleWriter) WriteString(s string) (int, error) {
	return io.WriteString(c.w, s)
}

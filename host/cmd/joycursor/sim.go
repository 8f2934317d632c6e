package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"joycursor/core"
	"joycursor/host/sim"
)

type simOptions struct {
	window   bool
	script   string
	duration time.Duration
	speed    float64
	noLCD    bool
}

func newSimCmd(root *rootOptions) *cobra.Command {
	opts := &simOptions{}

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run the firmware on a simulated board",
		Long: `Run the firmware on a simulated board. UART reports go to stdout and the
LCD is drawn on stderr.

Headless runs take a script of actions, for example:

  joycursor sim --script "right*3 down cw*2 press" --duration 1s

In a window, the arrow keys move the joystick, space presses it, Q and E
turn the encoder and R presses it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log := root.logger(cmd.ErrOrStderr())

			cfg, err := root.firmware()
			if err != nil {
				return err
			}
			steps, err := sim.ParseScript(opts.script)
			if err != nil {
				return err
			}

			m, err := sim.New(cfg, consoleWriter{cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			defer m.Close()
			log.Debug("simulator booted", "board", root.board, "tick", cfg.TickPeriod, "settle", cfg.Settle)

			if opts.window {
				if len(steps) > 0 {
					return errors.New("--script is for headless runs")
				}
				err = sim.RunWindow(m, "joycursor ("+root.board+")")
			} else {
				hc := sim.HeadlessConfig{
					Script:   steps,
					Duration: opts.duration,
					Speed:    opts.speed,
				}
				if !opts.noLCD {
					hc.Display = cmd.ErrOrStderr()
				}
				err = sim.RunHeadless(cmd.Context(), m, hc)
			}

			s := m.State()
			log.Info("stopped",
				"elapsed", sim.Elapsed(),
				"line", s.Position.Line,
				"column", s.Position.Column,
				"symbol", s.Symbol,
				"overruns", s.Overruns)
			if root.verbose {
				core.DumpTimingRing()
			}
			return err
		},
	}

	cmd.Flags().BoolVarP(&opts.window, "window", "w", false, "open a window instead of running headless")
	cmd.Flags().StringVarP(&opts.script, "script", "s", "", "actions to play before running")
	cmd.Flags().DurationVarP(&opts.duration, "duration", "d", 0, "virtual time to run after the script")
	cmd.Flags().Float64Var(&opts.speed, "speed", 0, "virtual seconds per wall second; 0 runs unpaced")
	cmd.Flags().BoolVar(&opts.noLCD, "no-lcd", false, "do not draw the LCD")
	return cmd
}

//go:build linux && !tinygo

// Command joycursor-rpi runs the cursor firmware on a Raspberry Pi with an
// MCP3008 for the joystick axes. The LCD is drawn on the terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/stianeikeland/go-rpio/v4"
	"golang.org/x/sync/errgroup"

	"joycursor/core"
	"joycursor/host/config"
	"joycursor/host/charlcd"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		board   string
		cfgFile string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:          "joycursor-rpi",
		Short:        "Run the joystick cursor on Raspberry Pi GPIO",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			b, err := config.All().Find(board)
			if err != nil {
				return err
			}
			cfg := b.Firmware
			if cfgFile != "" {
				if cfg, err = config.LoadFile(cfgFile, cfg); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr(), log)
		},
	}

	cmd.Flags().StringVar(&board, "board", "rpi", "board profile")
	cmd.Flags().StringVar(&cfgFile, "config", "", "YAML file overlaid on the board profile")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	return cmd
}

type consoleWriter struct {
	w io.Writer
}

func (c consoleWriter) WriteString(s string) (int, error) {
	return io.WriteString(c.w, s)
}

func run(ctx context.Context, cfg core.Config, out, screen io.Writer, log *slog.Logger) error {
	if err := rpio.Open(); err != nil {
		return fmt.Errorf("gpio: %w", err)
	}
	defer rpio.Close()

	core.SetDebugWriter(func(s string) { log.Debug(s) })
	core.SetDebugEnabled(true)

	d := newDispatcher(8)
	adc := NewMCP3008(d)
	defer adc.Close()

	core.SetGPIODriver(RPIOGPIODriver{})
	core.SetADCDriver(adc)

	lcd := charlcd.New()
	ticker := newDispatchTicker(d)
	defer ticker.Stop()

	if _, err := core.Boot(cfg, core.Board{
		Display: lcd,
		Console: consoleWriter{out},
		Ticker:  ticker,
		Delay:   time.Sleep,
	}); err != nil {
		return fmt.Errorf("boot: %w", err)
	}
	log.Info("running", "tick", cfg.TickPeriod, "settle", cfg.Settle)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return d.run(ctx) })
	g.Go(func() error { return mirror(ctx, lcd, screen) })

	err := g.Wait()
	core.DumpTimingRing()
	if n := d.Dropped(); n > 0 {
		log.Warn("handler posts dropped", "count", n)
	}
	if err == context.Canceled {
		return nil
	}
	return err
}

// mirror redraws the panel on screen whenever it changes.
func mirror(ctx context.Context, lcd *charlcd.LCD, w io.Writer) error {
	t := time.NewTicker(50 * time.Millisecond)
	defer t.Stop()

	var last uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if v := lcd.Version(); v != last {
				last = v
				if _, err := fmt.Fprintf(w, "\x1b[H\x1b[2J%s\n", lcd); err != nil {
					return err
				}
			}
		}
	}
}

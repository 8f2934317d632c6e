//go:build !tinygo

package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"joycursor/host/charlcd"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	// Script runs first, in virtual time and without pacing.
	Script []Step

	// Duration of virtual time to run after the script. Zero runs until
	// the context ends.
	Duration time.Duration

	// Speed is virtual time per unit of wall time. Zero or less runs
	// unpaced.
	Speed float64

	// Frame is the wall-clock step between clock advances.
	Frame time.Duration

	// Display receives the LCD contents each time they change.
	Display io.Writer
}

// RunHeadless drives m without opening a window. One goroutine advances the
// clock, another mirrors the LCD to cfg.Display.
func RunHeadless(ctx context.Context, m *Machine, cfg HeadlessConfig) error {
	if cfg.Frame <= 0 {
		cfg.Frame = 10 * time.Millisecond
	}

	g, ctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	g.Go(func() error {
		defer close(done)
		m.Play(cfg.Script)
		return runClock(ctx, m, cfg)
	})

	if cfg.Display != nil {
		g.Go(func() error {
			return mirrorLCD(ctx, done, m.LCD, cfg.Display, cfg.Frame)
		})
	}

	return g.Wait()
}

func runClock(ctx context.Context, m *Machine, cfg HeadlessConfig) error {
	var elapsed time.Duration
	remaining := func() bool {
		return cfg.Duration <= 0 || elapsed < cfg.Duration
	}

	if cfg.Speed <= 0 {
		if cfg.Duration <= 0 && len(cfg.Script) > 0 {
			return nil
		}
		if cfg.Duration <= 0 {
			return fmt.Errorf("sim: unpaced run needs a duration")
		}
		m.Advance(cfg.Duration)
		return nil
	}

	step := time.Duration(float64(cfg.Frame) * cfg.Speed)
	if step <= 0 {
		return fmt.Errorf("sim: speed %v too small for frame %v", cfg.Speed, cfg.Frame)
	}

	t := time.NewTicker(cfg.Frame)
	defer t.Stop()

	for remaining() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			d := step
			if cfg.Duration > 0 && elapsed+d > cfg.Duration {
				d = cfg.Duration - elapsed
			}
			m.Advance(d)
			elapsed += d
		}
	}
	return nil
}

// mirrorLCD writes the panel whenever its version changes, and once more
// after the clock stops.
func mirrorLCD(ctx context.Context, done <-chan struct{}, lcd *charlcd.LCD, w io.Writer, frame time.Duration) error {
	t := time.NewTicker(frame)
	defer t.Stop()

	var last uint64
	seen := false
	flush := func() error {
		v := lcd.Version()
		if seen && v == last {
			return nil
		}
		last, seen = v, true
		_, err := fmt.Fprintln(w, lcd.String())
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return flush()
		case <-t.C:
			if err := flush(); err != nil {
				return err
			}
		}
	}
}

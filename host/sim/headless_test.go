//go:build !tinygo

package sim

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"joycursor/core"
)

func TestRunHeadlessScript(t *testing.T) {
	m, out := newMachine(t, core.DefaultConfig())
	steps, err := ParseScript("right*2 cw")
	if err != nil {
		t.Fatal(err)
	}

	var display bytes.Buffer
	err = RunHeadless(context.Background(), m, HeadlessConfig{
		Script:   steps,
		Duration: 100 * time.Millisecond,
		Display:  &display,
	})
	if err != nil {
		t.Fatalf("RunHeadless failed: %v", err)
	}

	if got := m.State().Position.Line; got != 2 {
		t.Errorf("line = %d, want 2", got)
	}
	if !strings.Contains(display.String(), "|  +") {
		t.Errorf("display never showed the symbol at line 2:\n%s", display.String())
	}
	if !strings.Contains(out.String(), "Line is: 2") {
		t.Error("console missing line 2")
	}
}

func TestRunHeadlessPaced(t *testing.T) {
	m, _ := newMachine(t, core.DefaultConfig())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := RunHeadless(ctx, m, HeadlessConfig{
		Duration: 200 * time.Millisecond,
		Speed:    10,
		Frame:    5 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("RunHeadless failed: %v", err)
	}
	if got := m.State().Ticks; got != 6 {
		t.Errorf("ticks = %d, want 6", got)
	}
}

func TestRunHeadlessNeedsDuration(t *testing.T) {
	m, _ := newMachine(t, core.DefaultConfig())
	if err := RunHeadless(context.Background(), m, HeadlessConfig{}); err == nil {
		t.Error("expected an error for an unbounded unpaced run")
	}
}

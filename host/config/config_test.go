package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"joycursor/core"
)

func TestBuiltinBoards(t *testing.T) {
	all := All()
	want := []string{"rpi", "sim", "uno", "uno-blocking"}
	got := all.Names()
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	uno, err := all.Find("UNO")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if uno.Firmware != core.DefaultConfig() {
		t.Errorf("uno differs from defaults: %+v", uno.Firmware)
	}

	blocking, _ := all.Find("uno-blocking")
	if blocking.Firmware.Settle != core.SettleBlocking {
		t.Errorf("settle = %q", blocking.Firmware.Settle)
	}

	rpi, _ := all.Find("rpi")
	if rpi.Firmware.Pins.EncoderCLK != 24 || rpi.Firmware.ADC.Reference != 3300 {
		t.Errorf("rpi firmware = %+v", rpi.Firmware)
	}
	if rpi.Firmware.TickPeriod != 33*time.Millisecond {
		t.Errorf("rpi tick period not defaulted: %v", rpi.Firmware.TickPeriod)
	}

	if _, err := all.Find("mega"); !errors.Is(err, ErrUnknownBoard) {
		t.Errorf("Find(mega) = %v", err)
	}
}

func TestForTarget(t *testing.T) {
	avr := All().ForTarget("avr")
	if len(avr) != 2 {
		t.Errorf("avr boards = %v", avr.Names())
	}
	if len(All()) != 4 {
		t.Error("ForTarget modified the built-in list")
	}
}

func TestOverlay(t *testing.T) {
	cfg, err := Overlay([]byte(`
tick_period: 20ms
high_threshold: 800
initial_symbol: 0x41
settle: blocking
settle_delay: 10ms
`), core.DefaultConfig())
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}

	if cfg.TickPeriod != 20*time.Millisecond || cfg.SettleDelay != 10*time.Millisecond {
		t.Errorf("durations = %v, %v", cfg.TickPeriod, cfg.SettleDelay)
	}
	if cfg.HighThreshold != 800 || cfg.LowThreshold != 100 {
		t.Errorf("thresholds = %d/%d", cfg.LowThreshold, cfg.HighThreshold)
	}
	if cfg.InitialSymbol != 'A' {
		t.Errorf("symbol = %#x", cfg.InitialSymbol)
	}
	if cfg.LineLabel != "Line is: " {
		t.Errorf("label lost: %q", cfg.LineLabel)
	}
}

func TestOverlayKeepsZeroLowThreshold(t *testing.T) {
	cfg, err := Overlay([]byte("low_threshold: 0\n"), core.DefaultConfig())
	if err != nil {
		t.Fatalf("Overlay failed: %v", err)
	}
	if cfg.LowThreshold != 0 || cfg.HighThreshold != 900 {
		t.Errorf("thresholds = %d/%d, want 0/900", cfg.LowThreshold, cfg.HighThreshold)
	}
}

func TestOverlayRejects(t *testing.T) {
	testCases := []string{
		"channel_y: 0",
		"low_threshold: 950",
		"settle: nap",
		"tick_period: soon",
		"pins: [1, 2]",
	}
	for _, doc := range testCases {
		if _, err := Overlay([]byte(doc), core.DefaultConfig()); err == nil {
			t.Errorf("Overlay(%q) succeeded", doc)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := os.WriteFile(path, []byte("channel_x: 2\nchannel_y: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path, core.DefaultConfig())
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.ChannelX != 2 || cfg.ChannelY != 3 {
		t.Errorf("channels = %d/%d", cfg.ChannelX, cfg.ChannelY)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), core.DefaultConfig()); err == nil {
		t.Error("expected error for missing file")
	}
}

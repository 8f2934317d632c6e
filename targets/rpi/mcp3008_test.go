//go:build linux && !tinygo

package main

import (
	"context"
	"testing"
	"time"

	"joycursor/core"
)

func TestMCP3008Frame(t *testing.T) {
	testCases := []struct {
		ch   core.ADCChannelID
		want byte
	}{
		{0, 0x80},
		{1, 0x90},
		{7, 0xf0},
	}
	for _, tc := range testCases {
		f := mcp3008Frame(tc.ch)
		if f[0] != 0x01 || f[1] != tc.want || f[2] != 0 {
			t.Errorf("frame(%d) = % x", tc.ch, f)
		}
	}
}

func TestMCP3008Value(t *testing.T) {
	if got := mcp3008Value([]byte{0xff, 0xfe, 0x34}); got != 0x234 {
		t.Errorf("value = %#x, want 0x234", got)
	}
	if got := mcp3008Value([]byte{0, 0x03, 0xff}); got != core.ADCMax {
		t.Errorf("value = %d, want full scale", got)
	}
}

func TestMCP3008ConversionOnDispatcher(t *testing.T) {
	d := newDispatcher(4)
	m := &MCP3008{d: d}
	m.exchange = func(frame []byte) {
		frame[1] = 0x01
		frame[2] = 0x10
	}
	_ = m.SelectChannel(1)

	done := make(chan core.ADCValue, 1)
	m.SetCompletionHandler(func() { done <- m.Result() })

	m.StartConversion()
	if !m.Busy() {
		t.Fatal("not busy after start")
	}
	m.StartConversion() // ignored while busy

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.run(ctx) }()

	select {
	case v := <-done:
		if v != 0x110 {
			t.Errorf("result = %#x, want 0x110", v)
		}
	case <-time.After(time.Second):
		t.Fatal("completion handler not called")
	}
	if m.Busy() {
		t.Error("still busy after completion")
	}
}

func TestDispatchTicker(t *testing.T) {
	d := newDispatcher(16)
	tk := newDispatchTicker(d)

	if err := tk.Start(0, func() {}); err != core.ErrBadConfig {
		t.Errorf("Start(0) = %v", err)
	}

	ticks := make(chan struct{}, 16)
	if err := tk.Start(time.Millisecond, func() { ticks <- struct{}{} }); err != nil {
		t.Fatal(err)
	}
	defer tk.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-ticks:
		case <-time.After(time.Second):
			t.Fatalf("tick %d not delivered", i)
		}
	}
	tk.Stop()
	tk.Stop()
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := newDispatcher(1)
	if !d.post(func() {}) {
		t.Error("first post refused")
	}
	if d.post(func() {}) {
		t.Error("second post accepted on a full queue")
	}
	if got := d.Dropped(); got != 1 {
		t.Errorf("dropped = %d, want 1", got)
	}
}

func TestMCP3008CompletesWithTickQueueFull(t *testing.T) {
	d := newDispatcher(1)
	m := &MCP3008{d: d, exchange: func(frame []byte) { frame[2] = 0x42 }}

	completions := make(chan core.ADCValue, 8)
	m.SetCompletionHandler(func() { completions <- m.Result() })

	d.post(func() {}) // a tick already waiting
	m.StartConversion()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = d.run(ctx) }()

	for i := 0; i < 5; i++ {
		select {
		case v := <-completions:
			if v != 0x42 {
				t.Errorf("conversion %d: result = %#x", i, v)
			}
		case <-time.After(time.Second):
			t.Fatalf("conversion %d: no completion, busy = %v", i, m.Busy())
		}
		m.StartConversion()
	}
	if d.Dropped() != 0 {
		t.Errorf("dropped = %d, want 0", d.Dropped())
	}
}

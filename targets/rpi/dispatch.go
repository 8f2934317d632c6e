//go:build linux && !tinygo

package main

import (
	"context"
	"sync"
	"time"

	"joycursor/core"
)

// dispatcher runs every handler on one goroutine, so tick and conversion
// completion never overlap, as on a single-core part without nested
// interrupts.
type dispatcher struct {
	queue   chan func()
	convert chan func()
	dropped uint32
	mu      sync.Mutex
}

func newDispatcher(depth int) *dispatcher {
	return &dispatcher{
		queue:   make(chan func(), depth),
		convert: make(chan func(), 1),
	}
}

// post queues fn. A full queue drops it, like an interrupt that fires again
// before its flag was cleared.
func (d *dispatcher) post(fn func()) bool {
	select {
	case d.queue <- fn:
		return true
	default:
		d.mu.Lock()
		d.dropped++
		d.mu.Unlock()
		return false
	}
}

// postConversion queues a conversion on its own single-slot lane, apart
// from the ticks. The driver keeps at most one conversion in flight, so the
// slot is free whenever it is called; false means that was not the case.
func (d *dispatcher) postConversion(fn func()) bool {
	select {
	case d.convert <- fn:
		return true
	default:
		return false
	}
}

// Dropped returns how many posts were lost.
func (d *dispatcher) Dropped() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dropped
}

func (d *dispatcher) run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-d.convert:
			fn()
		case fn := <-d.queue:
			fn()
		}
	}
}

// dispatchTicker is a core.TickSource on a wall-clock ticker.
type dispatchTicker struct {
	d    *dispatcher
	stop chan struct{}
	once sync.Once
}

func newDispatchTicker(d *dispatcher) *dispatchTicker {
	return &dispatchTicker{d: d, stop: make(chan struct{})}
}

func (t *dispatchTicker) Start(period time.Duration, fn func()) error {
	if period <= 0 || fn == nil {
		return core.ErrBadConfig
	}
	go func() {
		tk := time.NewTicker(period)
		defer tk.Stop()
		for {
			select {
			case <-t.stop:
				return
			case <-tk.C:
				t.d.post(fn)
			}
		}
	}()
	return nil
}

func (t *dispatchTicker) Stop() {
	t.once.Do(func() { close(t.stop) })
}

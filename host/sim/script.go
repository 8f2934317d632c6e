//go:build !tinygo

package sim

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"joycursor/core"
)

// Step is one scripted user action.
type Step struct {
	Op    string
	Count int
	Wait  time.Duration
}

// Script operations.
const (
	OpRight = "right"
	OpLeft  = "left"
	OpUp    = "up"
	OpDown  = "down"
	OpPress = "press"
	OpCW    = "cw"
	OpCCW   = "ccw"
	OpReset = "reset"
	OpWait  = "wait"
)

// ParseScript reads a whitespace separated list of actions such as
//
//	right*3 down cw*5 press wait=500ms reset
//
// Each stick action produces exactly one cursor move when the cursor is not
// at the edge.
func ParseScript(src string) ([]Step, error) {
	words, err := shlex.Split(src)
	if err != nil {
		return nil, fmt.Errorf("script: %w", err)
	}

	steps := make([]Step, 0, len(words))
	for _, w := range words {
		step := Step{Count: 1}

		if op, arg, ok := strings.Cut(w, "="); ok {
			if op != OpWait {
				return nil, fmt.Errorf("script: %q takes no argument", op)
			}
			d, err := time.ParseDuration(arg)
			if err != nil || d < 0 {
				return nil, fmt.Errorf("script: bad wait %q", arg)
			}
			step.Op, step.Wait = OpWait, d
			steps = append(steps, step)
			continue
		}

		op, count, ok := strings.Cut(w, "*")
		if ok {
			n, err := strconv.Atoi(count)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("script: bad repeat count in %q", w)
			}
			step.Count = n
		}
		switch op {
		case OpRight, OpLeft, OpUp, OpDown, OpPress, OpCW, OpCCW, OpReset:
		default:
			return nil, fmt.Errorf("script: unknown action %q", op)
		}
		step.Op = op
		steps = append(steps, step)
	}
	return steps, nil
}

// Play runs the steps on m in virtual time.
func (m *Machine) Play(steps []Step) {
	for _, s := range steps {
		if s.Op == OpWait {
			m.Advance(s.Wait)
			continue
		}
		for i := 0; i < s.Count; i++ {
			m.act(s.Op)
		}
	}
}

func (m *Machine) act(op string) {
	tick := m.cfg.TickPeriod
	// One full X/Y scan, plus room for the last conversion to complete.
	hold := 2*tick + time.Millisecond
	settle := time.Duration(m.cfg.SettleTicks) * tick

	switch op {
	case OpRight, OpLeft, OpUp, OpDown:
		x, y := StickCentre, StickCentre
		switch op {
		case OpRight:
			x = StickHigh
		case OpLeft:
			x = StickLow
		case OpDown:
			y = StickHigh
		case OpUp:
			y = StickLow
		}
		m.Tilt(x, y)
		m.Advance(hold)
		m.Tilt(StickCentre, StickCentre)
		m.Advance(settle)
	case OpPress:
		m.PressJoystick(true)
		m.Advance(hold)
		m.PressJoystick(false)
	case OpCW:
		m.Turn(core.DirCW)
		m.Advance(tick)
	case OpCCW:
		m.Turn(core.DirCCW)
		m.Advance(tick)
	case OpReset:
		m.PressEncoder(true)
		m.Advance(tick)
		m.PressEncoder(false)
	}
}

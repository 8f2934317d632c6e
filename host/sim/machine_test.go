//go:build !tinygo

package sim

import (
	"strings"
	"testing"
	"time"

	"joycursor/core"
)

func newMachine(t *testing.T, cfg core.Config) (*Machine, *strings.Builder) {
	t.Helper()
	out := &strings.Builder{}
	m, err := New(cfg, out)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(m.Close)
	return m, out
}

func play(t *testing.T, m *Machine, script string) {
	t.Helper()
	steps, err := ParseScript(script)
	if err != nil {
		t.Fatalf("ParseScript(%q): %v", script, err)
	}
	m.Play(steps)
}

func TestMachineBoot(t *testing.T) {
	m, out := newMachine(t, core.DefaultConfig())
	cfg := m.Config()

	if m.Pins.Mode(cfg.Pins.LED) != PinOutput {
		t.Error("LED not configured as output")
	}
	if m.Pins.Mode(cfg.Pins.JoystickButton) != PinInputPullUp {
		t.Error("joystick button not configured with pull-up")
	}

	// Two ticks and the second conversion.
	m.Ticks(2)
	m.Advance(time.Millisecond)

	if got := m.LCD.Cell(0, 0); got != 0x2a {
		t.Errorf("cell (0,0) = %#x, want initial symbol", got)
	}
	if got := out.String(); got != "Line is: 0      Column is: 0 \r\n" {
		t.Errorf("console = %q", got)
	}
	if got := m.ADC.Conversions(); got != 2 {
		t.Errorf("conversions = %d, want 2", got)
	}
}

func TestMachineStickMovesCursor(t *testing.T) {
	m, out := newMachine(t, core.DefaultConfig())

	play(t, m, "right*3 down")

	s := m.State()
	if s.Position != (core.Position{Line: 3, Column: 1}) {
		t.Fatalf("position = %+v, want (3,1)", s.Position)
	}

	cells := m.LCD.Cells()
	for y := range cells {
		for x, c := range cells[y] {
			want := byte(' ')
			if x == 3 && y == 1 {
				want = 0x2a
			}
			if c != want {
				t.Errorf("cell (%d,%d) = %#x, want %#x", x, y, c, want)
			}
		}
	}

	if !strings.Contains(out.String(), "Line is: 3") {
		t.Error("console never reported line 3")
	}
	if !strings.HasSuffix(out.String(), "Column is: 1 \r\n") {
		t.Errorf("console tail = %q", out.String()[len(out.String())-24:])
	}
}

func TestMachineStickStopsAtEdges(t *testing.T) {
	m, _ := newMachine(t, core.DefaultConfig())

	play(t, m, "left up")
	if got := m.State().Position; got != (core.Position{}) {
		t.Errorf("position = %+v, want origin", got)
	}

	play(t, m, "right*20 down*3")
	if got := m.State().Position; got != (core.Position{Line: core.MaxLine, Column: core.MaxColumn}) {
		t.Errorf("position = %+v, want far corner", got)
	}
}

func TestMachineEncoder(t *testing.T) {
	m, _ := newMachine(t, core.DefaultConfig())

	play(t, m, "cw*2")
	if got := m.State().Symbol; got != 0x2c {
		t.Errorf("symbol = %#x, want 0x2c", got)
	}
	if got := m.LCD.Cell(0, 0); got != 0x2c {
		t.Errorf("cell (0,0) = %#x, want 0x2c", got)
	}

	play(t, m, "ccw")
	if got := m.State().Symbol; got != 0x2b {
		t.Errorf("symbol = %#x, want 0x2b", got)
	}

	play(t, m, "reset")
	if got := m.State().Symbol; got != core.SymbolMin {
		t.Errorf("symbol = %#x after reset", got)
	}
}

func TestMachineJoystickButton(t *testing.T) {
	m, _ := newMachine(t, core.DefaultConfig())
	m.Ticks(2)

	m.PressJoystick(true)
	m.Ticks(1)
	if got := m.LCD.Cell(0, 0); got != 0xef {
		t.Errorf("cell (0,0) = %#x, want busy glyph", got)
	}
	if !m.Indicator() {
		t.Error("indicator off while button held")
	}

	m.PressJoystick(false)
	m.Ticks(1)
	m.Advance(time.Millisecond)
	if m.Indicator() {
		t.Error("indicator still on after release")
	}
}

func TestMachineBlockingSettle(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Settle = core.SettleBlocking
	m, _ := newMachine(t, cfg)

	play(t, m, "right")

	if got := m.State().Position.Line; got != 1 {
		t.Errorf("line = %d, want 1", got)
	}
	if got := m.Stalled(); got != 2*cfg.SettleDelay {
		t.Errorf("stalled = %v, want %v", got, 2*cfg.SettleDelay)
	}
}

func TestParseScript(t *testing.T) {
	steps, err := ParseScript("right*3 'wait=250ms' cw")
	if err != nil {
		t.Fatalf("ParseScript failed: %v", err)
	}
	want := []Step{
		{Op: OpRight, Count: 3},
		{Op: OpWait, Count: 1, Wait: 250 * time.Millisecond},
		{Op: OpCW, Count: 1},
	}
	if len(steps) != len(want) {
		t.Fatalf("steps = %+v", steps)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, steps[i], want[i])
		}
	}

	for _, bad := range []string{"jump", "right*0", "right*x", "cw=3", "wait=soon", "wait=-1s", "'unterminated"} {
		if _, err := ParseScript(bad); err == nil {
			t.Errorf("ParseScript(%q) succeeded", bad)
		}
	}
}

func TestDetentsReleaseOnePerTick(t *testing.T) {
	m, _ := newMachine(t, core.DefaultConfig())
	m.Ticks(1)

	var d Detents
	d.Push(core.DirCW)
	d.Push(core.DirCW)
	d.Push(core.DirCCW)
	d.Push(core.DirCW)

	frame := time.Second / 60
	for i := 0; i < 30 && d.Pending() > 0; i++ {
		d.Release(m)
		if d.Release(m) {
			t.Fatalf("frame %d: second release before a tick", i)
		}
		m.Advance(frame)
	}
	m.Ticks(1)

	if d.Pending() != 0 {
		t.Fatalf("pending = %d after 30 frames", d.Pending())
	}
	if got := m.State().Symbol; got != 0x2c {
		t.Errorf("symbol = %#x, want 0x2c", got)
	}
}

func TestTwoTurnsInOneTickCancel(t *testing.T) {
	m, _ := newMachine(t, core.DefaultConfig())
	m.Ticks(1)

	m.Turn(core.DirCW)
	m.Turn(core.DirCW)
	m.Ticks(1)
	if got := m.State().Symbol; got != 0x2a {
		t.Errorf("symbol = %#x, want unchanged 0x2a", got)
	}
}

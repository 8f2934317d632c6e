package monitor

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"joycursor/core"
)

func TestParse(t *testing.T) {
	p := NewParser(core.DefaultConfig())

	testCases := []struct {
		name string
		in   string
		want Record
		err  bool
	}{
		{"origin", "Line is: 0      Column is: 0 ", Record{0, 0}, false},
		{"far corner", "Line is: 15      Column is: 1 \r", Record{15, 1}, false},
		{"line out of range", "Line is: 16      Column is: 0 ", Record{}, true},
		{"column out of range", "Line is: 3      Column is: 2 ", Record{}, true},
		{"partial", "is: 4      Column is: 1 ", Record{}, true},
		{"no column", "Line is: 4", Record{}, true},
		{"garbage", "Line is: x      Column is: 1 ", Record{}, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Parse(tc.in)
			if tc.err {
				if !errors.Is(err, ErrMalformed) {
					t.Errorf("Parse(%q) err = %v, want ErrMalformed", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestScan(t *testing.T) {
	p := NewParser(core.DefaultConfig())
	stream := "mn is: 1 \r\n" +
		"Line is: 0      Column is: 0 \r\n" +
		"\r\n" +
		"Line is: 1      Column is: 0 \r\n" +
		"Line is: 1      Column is: 1 \r\n"

	var got []Record
	var skipped []string
	err := p.Scan(context.Background(), strings.NewReader(stream),
		func(r Record) error {
			got = append(got, r)
			return nil
		},
		func(line string, _ error) { skipped = append(skipped, line) })
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	want := []Record{{0, 0}, {1, 0}, {1, 1}}
	if len(got) != len(want) {
		t.Fatalf("records = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %q", skipped)
	}
}

func TestScanStopsOnCallbackError(t *testing.T) {
	p := NewParser(core.DefaultConfig())
	stop := errors.New("stop")

	calls := 0
	err := p.Scan(context.Background(),
		strings.NewReader(strings.Repeat("Line is: 2      Column is: 1 \r\n", 3)),
		func(Record) error {
			calls++
			return stop
		}, nil)
	if !errors.Is(err, stop) || calls != 1 {
		t.Errorf("err = %v, calls = %d", err, calls)
	}
}

func TestParserCustomLabels(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.LineLabel = "X="
	cfg.ColumnLabel = " Y="
	p := NewParser(cfg)

	got, err := p.Parse("X=7 Y=1")
	if err != nil || got != (Record{7, 1}) {
		t.Errorf("Parse = %+v, %v", got, err)
	}
}

// pipePort is a serial.Port over an in-memory pipe.
type pipePort struct {
	*io.PipeReader
}

func (p *pipePort) Flush() error { return nil }

func TestConnRecords(t *testing.T) {
	r, w := io.Pipe()
	c := NewConn(core.DefaultConfig())
	c.Attach(&pipePort{PipeReader: r})

	go func() {
		_, _ = io.WriteString(w, "Line is: 5      Column is: 1 \r\n")
		_ = w.Close()
	}()

	var got []Record
	err := c.Records(context.Background(), func(rec Record) error {
		got = append(got, rec)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if len(got) != 1 || got[0] != (Record{5, 1}) {
		t.Errorf("records = %+v", got)
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if c.IsConnected() {
		t.Error("still connected after Close")
	}
}

func TestConnRecordsNotConnected(t *testing.T) {
	c := NewConn(core.DefaultConfig())
	if err := c.Records(context.Background(), func(Record) error { return nil }, nil); err == nil {
		t.Error("expected error when not connected")
	}
}

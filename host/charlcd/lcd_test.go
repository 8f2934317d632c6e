//go:build !tinygo

package charlcd

import (
	"strings"
	"testing"
)

func TestLCDWrites(t *testing.T) {
	l := New()
	v0 := l.Version()

	l.GotoXY(15, 1)
	l.PutChar('A')
	l.PutChar('B') // past the last column

	if got := l.Cell(15, 1); got != 'A' {
		t.Errorf("cell = %q", got)
	}
	if l.Version() == v0 {
		t.Error("version unchanged after write")
	}

	rows := l.Rows()
	if rows[1] != strings.Repeat(" ", 15)+"A" {
		t.Errorf("row 1 = %q", rows[1])
	}

	l.Clear()
	if l.Cell(15, 1) != ' ' {
		t.Error("clear left contents")
	}
}

func TestLCDString(t *testing.T) {
	l := New()
	l.GotoXY(0, 0)
	l.PutChar(0x2a)

	lines := strings.Split(l.String(), "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
	if lines[1] != "|*"+strings.Repeat(" ", 15)+"|" {
		t.Errorf("row = %q", lines[1])
	}
}

func TestGlyph(t *testing.T) {
	testCases := []struct {
		code byte
		want rune
	}{
		{0x21, '!'},
		{0x2a, '*'},
		{0x5c, '¥'},
		{0x7e, '→'},
		{0xb1, 'ｱ'},
		{0xef, 'ö'},
		{0xff, '█'},
		{0x80, '?'},
	}

	for _, tc := range testCases {
		if got := Glyph(tc.code); got != tc.want {
			t.Errorf("Glyph(%#x) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

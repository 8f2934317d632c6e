//go:build !tinygo

// Package charlcd models a 16x2 HD44780 character panel in memory, for
// hosts that show the firmware's display on a terminal or a window.
package charlcd

import (
	"strings"
	"sync"

	"joycursor/core"
)

// LCD implements core.Display as a 16x2 character grid. Writes past the
// last column are dropped, as the controller's hidden DDRAM would swallow
// them.
type LCD struct {
	mu      sync.Mutex
	cells   [core.DisplayRows][core.DisplayColumns]byte
	x, y    uint8
	version uint64
}

// New returns a blank panel.
func New() *LCD {
	l := &LCD{}
	l.clear()
	return l
}

func (l *LCD) GotoXY(x, y uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.x, l.y = x, y
}

func (l *LCD) PutChar(c byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.x < core.DisplayColumns && l.y < core.DisplayRows {
		l.cells[l.y][l.x] = c
		l.version++
	}
	l.x++
}

func (l *LCD) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.clear()
	l.version++
}

func (l *LCD) clear() {
	for y := range l.cells {
		for x := range l.cells[y] {
			l.cells[y][x] = ' '
		}
	}
	l.x, l.y = 0, 0
}

// Cells returns a copy of the character codes.
func (l *LCD) Cells() [core.DisplayRows][core.DisplayColumns]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cells
}

// Cell returns the code at column x of row y.
func (l *LCD) Cell(x, y uint8) byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cells[y][x]
}

// Version changes every time the visible contents may have changed.
func (l *LCD) Version() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.version
}

// Rows renders each row with Glyph.
func (l *LCD) Rows() [core.DisplayRows]string {
	cells := l.Cells()
	var rows [core.DisplayRows]string
	for y := range cells {
		var sb strings.Builder
		for _, c := range cells[y] {
			sb.WriteRune(Glyph(c))
		}
		rows[y] = sb.String()
	}
	return rows
}

// String draws the panel with a frame, one row per line.
func (l *LCD) String() string {
	rows := l.Rows()
	border := "+" + strings.Repeat("-", core.DisplayColumns) + "+"
	var sb strings.Builder
	sb.WriteString(border + "\n")
	for _, r := range rows {
		sb.WriteString("|" + r + "|\n")
	}
	sb.WriteString(border)
	return sb.String()
}

// Glyph maps an HD44780 ROM code (A00 character set) to the rune it looks
// most like.
func Glyph(c byte) rune {
	switch {
	case c >= 0x20 && c < 0x7e && c != 0x5c:
		return rune(c)
	case c == 0x5c:
		return '¥'
	case c == 0x7e:
		return '→'
	case c == 0x7f:
		return '←'
	case c == 0xa5:
		return '·'
	case c >= 0xb1 && c <= 0xdd:
		return 'ｱ' + rune(c-0xb1)
	case c == 0xdf:
		return '°'
	case c == 0xe0:
		return 'α'
	case c == 0xe1:
		return 'ä'
	case c == 0xe2:
		return 'β'
	case c == 0xe3:
		return 'ε'
	case c == 0xe4:
		return 'μ'
	case c == 0xe5:
		return 'σ'
	case c == 0xe6:
		return 'ρ'
	case c == 0xe8:
		return '√'
	case c == 0xef:
		return 'ö'
	case c == 0xf2:
		return 'θ'
	case c == 0xf3:
		return '∞'
	case c == 0xf4:
		return 'Ω'
	case c == 0xf5:
		return 'ü'
	case c == 0xf6:
		return 'Σ'
	case c == 0xf7:
		return 'π'
	case c == 0xfd:
		return '÷'
	case c == 0xff:
		return '█'
	}
	return '?'
}

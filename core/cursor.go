package core

// Cursor limits on the 16x2 LCD. Line is the horizontal cell, Column the row.
const (
	MaxLine   uint8 = DisplayColumns - 1
	MaxColumn uint8 = DisplayRows - 1
)

// Position is the glyph cursor on the LCD.
type Position struct {
	Line   uint8
	Column uint8
}

// Movement is the threshold decision for one reading.
type Movement int8

const (
	MoveNone Movement = 0
	MoveHigh Movement = 1
	MoveLow  Movement = -1
)

// Cursor maps joystick readings to bounded cursor steps. It is owned by the
// conversion-complete handler.
type Cursor struct {
	pos  Position
	low  ADCValue
	high ADCValue
}

// NewCursor starts at (0, 0).
func NewCursor(low, high ADCValue) Cursor {
	return Cursor{low: low, high: high}
}

// Position returns the current cell.
func (c *Cursor) Position() Position {
	return c.pos
}

// Classify applies the thresholds: above high moves toward the high edge,
// below low toward the low edge, anything in between is the dead zone.
func (c *Cursor) Classify(reading ADCValue) Movement {
	switch {
	case reading > c.high:
		return MoveHigh
	case reading < c.low:
		return MoveLow
	default:
		return MoveNone
	}
}

// Next computes where a reading on ch would take the cursor. ok is false
// when the reading is in the dead zone or the cursor is already at the edge.
func (c *Cursor) Next(ch ScanChannel, reading ADCValue) (next Position, ok bool) {
	next = c.pos
	switch c.Classify(reading) {
	case MoveHigh:
		if ch == ChannelX {
			if next.Line >= MaxLine {
				return c.pos, false
			}
			next.Line++
		} else {
			if next.Column >= MaxColumn {
				return c.pos, false
			}
			next.Column++
		}
	case MoveLow:
		if ch == ChannelX {
			if next.Line == 0 {
				return c.pos, false
			}
			next.Line--
		} else {
			if next.Column == 0 {
				return c.pos, false
			}
			next.Column--
		}
	default:
		return c.pos, false
	}
	return next, true
}

// set commits a position computed by Next.
func (c *Cursor) set(p Position) {
	c.pos = p
}

package core

// Character grid of the HD44780 module on the board.
const (
	DisplayColumns = 16
	DisplayRows    = 2
)

// Display is a cursor-addressed character sink.
//
// GotoXY takes the horizontal cell first, matching the LCD controller's
// DDRAM addressing: x in [0, DisplayColumns), y in [0, DisplayRows).
type Display interface {
	GotoXY(x, y uint8)
	PutChar(c byte)
	Clear()
}

package core

// Direction is the rotation decided from one CLK transition.
type Direction int8

const (
	DirNone Direction = 0
	DirCW   Direction = 1
	DirCCW  Direction = -1
)

func (d Direction) String() string {
	switch d {
	case DirCW:
		return "CW"
	case DirCCW:
		return "CCW"
	default:
		return "none"
	}
}

// Symbol range shown on the LCD: 0x21 ('!') up to 0xff. The codes below
// 0x21 are control characters and the HD44780's user-defined glyphs.
const (
	SymbolMin uint8 = 0x21
	SymbolMax uint8 = 0xff
)

// Encoder decodes a quadrature encoder sampled once per tick and keeps the
// selected symbol. It is owned by the tick handler; other contexts may read
// Symbol, which is a single byte store.
type Encoder struct {
	lastCLK bool
	symbol  uint8
}

// NewEncoder starts from the current CLK level so that power-up does not
// count as a transition.
func NewEncoder(clk bool, symbol uint8) Encoder {
	if symbol < SymbolMin {
		symbol = SymbolMin
	}
	return Encoder{lastCLK: clk, symbol: symbol}
}

// Symbol returns the currently selected character code.
func (e *Encoder) Symbol() uint8 {
	return e.symbol
}

// Reset forces the symbol back to SymbolMin. The CLK history is kept.
func (e *Encoder) Reset() {
	e.symbol = SymbolMin
}

// Update consumes one sample of the CLK and DT lines. A CLK edge with DT at
// the opposite level means CLK led, i.e. clockwise.
func (e *Encoder) Update(clk, dt bool) Direction {
	if clk == e.lastCLK {
		return DirNone
	}
	e.lastCLK = clk

	if dt != clk {
		e.symbol = nextSymbol(e.symbol)
		return DirCW
	}
	e.symbol = prevSymbol(e.symbol)
	return DirCCW
}

func nextSymbol(s uint8) uint8 {
	if s >= SymbolMax {
		return SymbolMin
	}
	return s + 1
}

func prevSymbol(s uint8) uint8 {
	if s <= SymbolMin {
		return SymbolMax
	}
	return s - 1
}

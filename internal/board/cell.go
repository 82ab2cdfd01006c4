// Package board implements the Tablut game state: the 9x9 grid, move
// legality, capture resolution, terminal detection and incremental
// Zobrist hashing.
package board

// Color represents the side of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Cell represents the content of a single board square.
// Throne marks the vacated center square: it is not a piece, but it is
// distinct from Empty because it acts as a wall during captures and only
// the king may stand on it.
type Cell uint8

const (
	Empty Cell = iota
	WhiteSoldier
	BlackSoldier
	King
	Throne
	numCellStates
)

// IsPiece returns true if the cell holds a piece.
func (c Cell) IsPiece() bool {
	return c == WhiteSoldier || c == BlackSoldier || c == King
}

// BelongsTo returns true if the cell holds a piece of the given color.
// The king is a White piece.
func (c Cell) BelongsTo(col Color) bool {
	if col == White {
		return c == WhiteSoldier || c == King
	}
	return c == BlackSoldier
}

// Char returns a single-character representation of the cell.
func (c Cell) Char() byte {
	chars := []byte{'.', 'W', 'B', 'K', 'T'}
	if c >= numCellStates {
		return '?'
	}
	return chars[c]
}

// String returns the cell state name.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case WhiteSoldier:
		return "WhiteSoldier"
	case BlackSoldier:
		return "BlackSoldier"
	case King:
		return "King"
	case Throne:
		return "Throne"
	default:
		return "Invalid"
	}
}

// Turn represents the game phase: whose move it is, or how the game ended.
type Turn uint8

const (
	WhiteToMove Turn = iota
	BlackToMove
	WhiteWin
	BlackWin
)

// Terminal returns true if the game is over.
func (t Turn) Terminal() bool {
	return t == WhiteWin || t == BlackWin
}

// Side returns the color to move. Only meaningful for non-terminal turns.
func (t Turn) Side() Color {
	if t == BlackToMove {
		return Black
	}
	return White
}

// String returns the turn name.
func (t Turn) String() string {
	switch t {
	case WhiteToMove:
		return "WhiteToMove"
	case BlackToMove:
		return "BlackToMove"
	case WhiteWin:
		return "WhiteWin"
	case BlackWin:
		return "BlackWin"
	default:
		return "Invalid"
	}
}

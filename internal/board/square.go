package board

import "fmt"

// Square represents a square on the 9x9 board (0-80), row-major:
// row 0 col 0 = a1, row 0 col 8 = i1, row 8 col 8 = i9.
type Square uint8

// NoSquare marks an invalid or absent square (e.g. a captured king).
const NoSquare Square = 81

// Board dimensions.
const (
	Size       = 9
	NumSquares = Size * Size
)

// NewSquare creates a square from row and column (0-indexed).
func NewSquare(row, col int) Square {
	return Square(row*Size + col)
}

// Row returns the row of the square (0-8).
func (sq Square) Row() int {
	return int(sq) / Size
}

// Col returns the column of the square (0-8).
func (sq Square) Col() int {
	return int(sq) % Size
}

// String returns the competition notation for the square (e.g. "e5"):
// column letter a-i, row number 1-9.
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+sq.Col(), '1'+sq.Row())
}

// ParseSquare parses competition notation ("a1" through "i9").
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	col := int(s[0] - 'a')
	row := int(s[1] - '1')
	if col < 0 || col >= Size || row < 0 || row >= Size {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(row, col), nil
}

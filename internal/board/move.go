package board

import "fmt"

// Move encodes a sliding move in 14 bits:
// bits 0-6:  from square (0-80)
// bits 7-13: to square (0-80)
// Moves are always orthogonal; null moves do not exist in the game, so
// the zero value (a1 to a1) is free to mean "no move".
type Move uint16

// NoMove represents an invalid or absent move.
const NoMove Move = 0

// NewMove creates a move between two squares.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<7
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x7F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 7) & 0x7F)
}

// String returns the move in competition notation (e.g. "e3e5").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	return m.From().String() + m.To().String()
}

// ParseMove parses a move in competition notation.
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return NoMove, fmt.Errorf("invalid move string %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return NoMove, err
	}
	return NewMove(from, to), nil
}

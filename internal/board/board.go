package board

import "fmt"

// Board represents a complete Tablut position. All mutation goes through
// setCell and setTurn so the incremental hash can never drift from a
// from-scratch recomputation.
type Board struct {
	cells [NumSquares]Cell

	// Cached metadata for O(1) access during search.
	kingSq Square // NoSquare once the king has been captured
	whites int    // white soldier count (king excluded)
	blacks int    // black soldier count

	turn Turn
	hash uint64
}

// New creates the standard starting position with White to move.
func New() *Board {
	b := &Board{kingSq: NoSquare, turn: WhiteToMove}
	b.hash = b.computeHash()
	b.reset()
	return b
}

// reset lays out the standard Ashton Tablut start position.
func (b *Board) reset() {
	for sq := Square(0); sq < NoSquare; sq++ {
		b.setCell(sq, Empty)
	}
	b.setTurn(WhiteToMove)

	// Black soldiers on the citadels.
	for _, rc := range citadelCoords {
		b.setCell(NewSquare(rc[0], rc[1]), BlackSoldier)
	}
	// White soldiers in a cross around the throne.
	whiteCoords := [8][2]int{
		{2, 4}, {3, 4}, {5, 4}, {6, 4},
		{4, 2}, {4, 3}, {4, 5}, {4, 6},
	}
	for _, rc := range whiteCoords {
		b.setCell(NewSquare(rc[0], rc[1]), WhiteSoldier)
	}
	// King on the throne.
	b.setCell(ThroneSquare, King)
}

// FromCells builds a position from an external snapshot (e.g. a server
// state message). It validates the piece counts implied by the grid.
func FromCells(cells [NumSquares]Cell, turn Turn) (*Board, error) {
	b := &Board{kingSq: NoSquare, turn: WhiteToMove}
	b.hash = b.computeHash()
	for sq := Square(0); sq < NoSquare; sq++ {
		b.setCell(sq, cells[sq])
	}
	b.setTurn(turn)

	kings := 0
	for sq := Square(0); sq < NoSquare; sq++ {
		if b.cells[sq] == King {
			kings++
		}
		if b.cells[sq] == Throne && sq != ThroneSquare {
			return nil, fmt.Errorf("throne marker off the center square at %s", sq)
		}
	}
	if kings > 1 {
		return nil, fmt.Errorf("found %d kings", kings)
	}
	if kings == 0 && !turn.Terminal() {
		return nil, fmt.Errorf("king absent in a non-terminal position")
	}
	return b, nil
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// At returns the cell at the given square. Off-board squares read Empty.
func (b *Board) At(sq Square) Cell {
	if sq >= NoSquare {
		return Empty
	}
	return b.cells[sq]
}

// at reads a cell by row/col, returning Empty off the board.
func (b *Board) at(r, c int) Cell {
	if r < 0 || r >= Size || c < 0 || c >= Size {
		return Empty
	}
	return b.cells[NewSquare(r, c)]
}

// Turn returns the current turn state.
func (b *Board) Turn() Turn {
	return b.turn
}

// Hash returns the incremental Zobrist hash of the position.
func (b *Board) Hash() uint64 {
	return b.hash
}

// KingSquare returns the king's square, or NoSquare if captured.
func (b *Board) KingSquare() Square {
	return b.kingSq
}

// WhiteCount returns the number of white soldiers (king excluded).
func (b *Board) WhiteCount() int {
	return b.whites
}

// BlackCount returns the number of black soldiers.
func (b *Board) BlackCount() int {
	return b.blacks
}

// setCell writes a cell and keeps the hash and cached counts in sync.
// Every grid mutation in the package goes through here.
func (b *Board) setCell(sq Square, c Cell) {
	old := b.cells[sq]
	if old == c {
		return
	}
	b.hash ^= zobristCell[old][sq] ^ zobristCell[c][sq]
	b.cells[sq] = c

	switch old {
	case WhiteSoldier:
		b.whites--
	case BlackSoldier:
		b.blacks--
	case King:
		b.kingSq = NoSquare
	}
	switch c {
	case WhiteSoldier:
		b.whites++
	case BlackSoldier:
		b.blacks++
	case King:
		b.kingSq = sq
	}
}

// setTurn changes the turn state, folding the turn-parity term into the
// hash whenever the side to move flips to or from Black.
func (b *Board) setTurn(t Turn) {
	if b.turn == BlackToMove {
		b.hash ^= zobristSide
	}
	b.turn = t
	if b.turn == BlackToMove {
		b.hash ^= zobristSide
	}
}

// computeHash recomputes the Zobrist hash from scratch. setCell/setTurn
// keep the incremental hash equal to this at all times; tests verify it.
func (b *Board) computeHash() uint64 {
	var h uint64
	for sq := Square(0); sq < NoSquare; sq++ {
		h ^= zobristCell[b.cells[sq]][sq]
	}
	if b.turn == BlackToMove {
		h ^= zobristSide
	}
	return h
}

// ComputeHash returns a from-scratch hash recomputation. Exposed for
// consistency checks; Hash is the one to use during search.
func (b *Board) ComputeHash() uint64 {
	return b.computeHash()
}

// Equal reports whether two boards hold the same position and turn.
func (b *Board) Equal(o *Board) bool {
	return *b == *o
}

// String returns a visual representation of the position.
func (b *Board) String() string {
	s := "\n"
	for r := Size - 1; r >= 0; r-- {
		s += fmt.Sprintf("%d  ", r+1)
		for c := 0; c < Size; c++ {
			s += string(b.cells[NewSquare(r, c)].Char()) + " "
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h i\n\n"
	s += fmt.Sprintf("Turn: %s\n", b.turn)
	s += fmt.Sprintf("King: %s  White: %d  Black: %d\n", b.kingSq, b.whites, b.blacks)
	s += fmt.Sprintf("Hash: %016x\n", b.hash)
	return s
}

package board

// passable returns true if a slide may continue through the square.
// The empty throne and empty citadels block pawns but not the king.
func (b *Board) passable(sq Square, isKing bool) bool {
	if b.cells[sq].IsPiece() {
		return false
	}
	if isKing {
		return true
	}
	return sq != ThroneSquare && !IsCitadel(sq)
}

// landable returns true if a slide may end on the square. A pawn may
// never land on the throne or a citadel; the king may land on a citadel
// only if it is also an escape square.
func (b *Board) landable(sq Square, isKing bool) bool {
	if b.cells[sq].IsPiece() {
		return false
	}
	if !isKing {
		return sq != ThroneSquare && !IsCitadel(sq)
	}
	if IsCitadel(sq) {
		return IsEscape(sq)
	}
	return true
}

// pathClear verifies that every square strictly between from and to is
// passable for the mover and that to itself is landable. from and to are
// assumed to share a row or column.
func (b *Board) pathClear(from, to Square, isKing bool) bool {
	dr := sign(to.Row() - from.Row())
	dc := sign(to.Col() - from.Col())
	r, c := from.Row()+dr, from.Col()+dc
	for r != to.Row() || c != to.Col() {
		if !b.passable(NewSquare(r, c), isKing) {
			return false
		}
		r += dr
		c += dc
	}
	return b.landable(to, isKing)
}

// LegalMoves generates the complete legal-move list for the side to
// move. Terminal positions have no legal moves.
func (b *Board) LegalMoves() []Move {
	if b.turn.Terminal() {
		return nil
	}
	side := b.turn.Side()

	// ~40 is a typical midgame move count; start close to it.
	moves := make([]Move, 0, 64)

	for from := Square(0); from < NoSquare; from++ {
		p := b.cells[from]
		if !p.BelongsTo(side) {
			continue
		}
		isKing := p == King
		r, c := from.Row(), from.Col()

		for _, d := range directions {
			for steps := 1; steps < Size; steps++ {
				r2, c2 := r+d[0]*steps, c+d[1]*steps
				if r2 < 0 || r2 >= Size || c2 < 0 || c2 >= Size {
					break
				}
				sq := NewSquare(r2, c2)
				if b.cells[sq].IsPiece() {
					break
				}
				if isKing {
					// The king slides past empty citadels and the empty
					// throne; it may only stop where landing is allowed.
					if b.landable(sq, true) {
						moves = append(moves, NewMove(from, sq))
					}
					continue
				}
				if sq == ThroneSquare || IsCitadel(sq) {
					break
				}
				moves = append(moves, NewMove(from, sq))
			}
		}
	}
	return moves
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

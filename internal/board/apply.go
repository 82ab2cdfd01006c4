package board

// Apply validates and executes a move. It returns false and leaves the
// board untouched if the move is illegal in any way; on success it
// mutates the position in place, resolves captures, re-evaluates
// terminal conditions and flips the turn.
func (b *Board) Apply(m Move) bool {
	if b.turn.Terminal() {
		return false
	}
	from, to := m.From(), m.To()
	if from >= NoSquare || to >= NoSquare || from == to {
		return false
	}
	if from.Row() != to.Row() && from.Col() != to.Col() {
		return false
	}
	p := b.cells[from]
	if !p.BelongsTo(b.turn.Side()) {
		return false
	}
	// All validation happens before the first mutation below, so a
	// rejected move never leaves a partially applied state behind.
	if !b.pathClear(from, to, p == King) {
		return false
	}

	vacated := Empty
	if from == ThroneSquare {
		vacated = Throne
	}
	b.setCell(from, vacated)
	b.setCell(to, p)

	// King escape ends the game before captures and the turn flip.
	if p == King && IsEscape(to) {
		b.setTurn(WhiteWin)
		return true
	}

	b.resolveCaptures(to, b.turn.Side())

	if b.turn.Terminal() {
		return true
	}
	if b.blacks == 0 {
		b.setTurn(WhiteWin)
		return true
	}
	if b.whites == 0 && b.kingSq == NoSquare {
		b.setTurn(BlackWin)
		return true
	}

	if b.turn == WhiteToMove {
		b.setTurn(BlackToMove)
	} else {
		b.setTurn(WhiteToMove)
	}
	return true
}

// resolveCaptures checks each orthogonal neighbor of the square the
// moved piece landed on and removes encircled enemies.
func (b *Board) resolveCaptures(dest Square, mover Color) {
	enemy := WhiteSoldier
	if mover == White {
		enemy = BlackSoldier
	}
	r, c := dest.Row(), dest.Col()

	for _, d := range directions {
		ar, ac := r+d[0], c+d[1]
		if ar < 0 || ar >= Size || ac < 0 || ac >= Size {
			continue
		}
		adj := NewSquare(ar, ac)

		switch b.cells[adj] {
		case enemy:
			if b.soldierWall(ar+d[0], ac+d[1], mover) {
				b.setCell(adj, Empty)
			}
		case King:
			// Only a black move can capture the king.
			if mover == Black && b.kingSurrounded(adj) {
				b.setCell(adj, Empty)
				b.setTurn(BlackWin)
			}
		}
	}
}

// soldierWall reports whether (r, c) closes a soldier capture for the
// given mover: an allied soldier, the king, the throne or a citadel.
// The board edge is not a wall.
func (b *Board) soldierWall(r, c int, mover Color) bool {
	if r < 0 || r >= Size || c < 0 || c >= Size {
		return false
	}
	sq := NewSquare(r, c)
	cell := b.cells[sq]
	if cell.BelongsTo(mover) || cell == King {
		return true
	}
	return sq == ThroneSquare || IsCitadel(sq)
}

// kingHostile reports whether (r, c) counts as a hostile wall for king
// capture: a black soldier, the throne or a citadel. The board edge is
// not a wall.
func (b *Board) kingHostile(r, c int) bool {
	if r < 0 || r >= Size || c < 0 || c >= Size {
		return false
	}
	sq := NewSquare(r, c)
	if b.cells[sq] == BlackSoldier {
		return true
	}
	return sq == ThroneSquare || IsCitadel(sq)
}

// kingSurrounded applies the capture geometry for the king at sq:
// four hostile sides on the throne, the three non-throne sides next to
// the throne, or either opposing pair of sides in the open field.
func (b *Board) kingSurrounded(sq Square) bool {
	r, c := sq.Row(), sq.Col()
	tr, tc := ThroneSquare.Row(), ThroneSquare.Col()

	if sq == ThroneSquare {
		for _, d := range directions {
			if !b.kingHostile(r+d[0], c+d[1]) {
				return false
			}
		}
		return true
	}

	if absInt(r-tr)+absInt(c-tc) == 1 {
		for _, d := range directions {
			nr, nc := r+d[0], c+d[1]
			if nr == tr && nc == tc {
				continue
			}
			if !b.kingHostile(nr, nc) {
				return false
			}
		}
		return true
	}

	northSouth := b.kingHostile(r-1, c) && b.kingHostile(r+1, c)
	eastWest := b.kingHostile(r, c-1) && b.kingHostile(r, c+1)
	return northSouth || eastWest
}

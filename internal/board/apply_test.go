package board

import "testing"

func TestApplyBasicSlide(t *testing.T) {
	b := New()

	// e3 holds a white soldier; row 3 is clear to the left edge.
	m, _ := ParseMove("e3a3")
	if !b.Apply(m) {
		t.Fatalf("legal move %s rejected", m)
	}
	if b.At(mustSquare(t, "e3")) != Empty {
		t.Error("origin not vacated")
	}
	if b.At(mustSquare(t, "a3")) != WhiteSoldier {
		t.Error("soldier not placed on destination")
	}
	if b.Turn() != BlackToMove {
		t.Errorf("turn = %s, want BlackToMove", b.Turn())
	}
	if b.Hash() != b.ComputeHash() {
		t.Error("hash drifted after move")
	}
}

func TestApplyAtomicity(t *testing.T) {
	b := New()
	before := b.Clone()

	illegal := []string{
		"e3d4", // diagonal
		"e3e4", // destination occupied
		"d1d3", // black piece on White's turn
		"e3e3", // null move
		"e7e9", // path blocked by the black soldier on e8
		"e3e1", // path blocked by black citadel soldier on e2
	}
	for _, s := range illegal {
		m, err := ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if b.Apply(m) {
			t.Errorf("illegal move %s accepted", s)
		}
		if !b.Equal(before) {
			t.Fatalf("board changed after rejected move %s", s)
		}
	}
}

func TestApplyThroneRules(t *testing.T) {
	t.Run("VacatedThroneMarker", func(t *testing.T) {
		b := testBoard(t, WhiteToMove, map[Square]Cell{
			ThroneSquare: King,
		})
		if !b.Apply(NewMove(ThroneSquare, mustSquare(t, "e6"))) {
			t.Fatal("king move off throne rejected")
		}
		if b.At(ThroneSquare) != Throne {
			t.Errorf("vacated throne holds %s, want Throne", b.At(ThroneSquare))
		}
	})

	t.Run("PawnBlockedByThrone", func(t *testing.T) {
		b := testBoard(t, WhiteToMove, map[Square]Cell{
			mustSquare(t, "c5"): WhiteSoldier,
			mustSquare(t, "a9"): King,
		})
		// Landing on the empty throne is forbidden for a pawn.
		if b.Apply(NewMove(mustSquare(t, "c5"), ThroneSquare)) {
			t.Error("pawn landed on the throne")
		}
		// So is sliding across it.
		if b.Apply(NewMove(mustSquare(t, "c5"), mustSquare(t, "g5"))) {
			t.Error("pawn slid across the throne")
		}
	})

	t.Run("KingCrossesEmptyThrone", func(t *testing.T) {
		b := testBoard(t, WhiteToMove, map[Square]Cell{
			mustSquare(t, "c5"): King,
		})
		if !b.Apply(NewMove(mustSquare(t, "c5"), mustSquare(t, "g5"))) {
			t.Error("king may slide across the empty throne")
		}
	})
}

func TestApplyCitadelRules(t *testing.T) {
	b := testBoard(t, WhiteToMove, map[Square]Cell{
		mustSquare(t, "d2"): WhiteSoldier,
		mustSquare(t, "a9"): King,
	})

	// d1 is a citadel: no landing for a pawn.
	if b.Apply(NewMove(mustSquare(t, "d2"), mustSquare(t, "d1"))) {
		t.Error("pawn landed on a citadel")
	}
	// Sliding across the e1 citadel along row 1 is also forbidden.
	b2 := testBoard(t, WhiteToMove, map[Square]Cell{
		mustSquare(t, "c1"): WhiteSoldier,
		mustSquare(t, "a9"): King,
	})
	if b2.Apply(NewMove(mustSquare(t, "c1"), mustSquare(t, "g1"))) {
		t.Error("pawn slid across a citadel")
	}
}

func TestKingEscapeWinsImmediately(t *testing.T) {
	b := testBoard(t, WhiteToMove, map[Square]Cell{
		mustSquare(t, "b3"): King,
		mustSquare(t, "e8"): BlackSoldier,
	})
	if !b.Apply(NewMove(mustSquare(t, "b3"), mustSquare(t, "b1"))) {
		t.Fatal("king escape move rejected")
	}
	if b.Turn() != WhiteWin {
		t.Errorf("turn = %s, want WhiteWin", b.Turn())
	}
}

func TestLastBlackSoldierCaptured(t *testing.T) {
	// One black soldier left; capturing it ends the game for White.
	b := testBoard(t, WhiteToMove, map[Square]Cell{
		mustSquare(t, "c3"): BlackSoldier,
		mustSquare(t, "d3"): WhiteSoldier,
		mustSquare(t, "b1"): WhiteSoldier,
		mustSquare(t, "a9"): King,
	})
	if !b.Apply(NewMove(mustSquare(t, "b1"), mustSquare(t, "b3"))) {
		t.Fatal("capturing move rejected")
	}
	if b.At(mustSquare(t, "c3")) != Empty {
		t.Error("black soldier not captured")
	}
	if b.Turn() != WhiteWin {
		t.Errorf("turn = %s, want WhiteWin", b.Turn())
	}
}

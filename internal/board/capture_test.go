package board

import "testing"

func TestSoldierCaptureWalls(t *testing.T) {
	t.Run("AlliedSoldierWall", func(t *testing.T) {
		// White arrives on d3; black on e3 is pinned against white on f3.
		b := testBoard(t, WhiteToMove, map[Square]Cell{
			mustSquare(t, "e3"): BlackSoldier,
			mustSquare(t, "f3"): WhiteSoldier,
			mustSquare(t, "d7"): WhiteSoldier,
			mustSquare(t, "a9"): King,
		})
		if !b.Apply(NewMove(mustSquare(t, "d7"), mustSquare(t, "d3"))) {
			t.Fatal("move rejected")
		}
		if b.At(mustSquare(t, "e3")) != Empty {
			t.Error("black soldier not captured against allied wall")
		}
	})

	t.Run("KingWall", func(t *testing.T) {
		// Black arrives on d4; white on e4 is pinned against the king on f4.
		b := testBoard(t, BlackToMove, map[Square]Cell{
			mustSquare(t, "e4"): WhiteSoldier,
			mustSquare(t, "f4"): King,
			mustSquare(t, "d8"): BlackSoldier,
		})
		if !b.Apply(NewMove(mustSquare(t, "d8"), mustSquare(t, "d4"))) {
			t.Fatal("move rejected")
		}
		if b.At(mustSquare(t, "e4")) != Empty {
			t.Error("white soldier not captured against the king")
		}
	})

	t.Run("ThroneWall", func(t *testing.T) {
		// Black on e4 is pinned between the arriving white and the empty throne.
		b := testBoard(t, WhiteToMove, map[Square]Cell{
			mustSquare(t, "e4"): BlackSoldier,
			mustSquare(t, "h3"): WhiteSoldier,
			mustSquare(t, "a9"): King,
		})
		if !b.Apply(NewMove(mustSquare(t, "h3"), mustSquare(t, "e3"))) {
			t.Fatal("move rejected")
		}
		if b.At(mustSquare(t, "e4")) != Empty {
			t.Error("black soldier not captured against the throne")
		}
	})

	t.Run("CitadelWall", func(t *testing.T) {
		// Black on c1 is pinned between the arriving white on b1 and the d1 citadel.
		b := testBoard(t, WhiteToMove, map[Square]Cell{
			mustSquare(t, "c1"): BlackSoldier,
			mustSquare(t, "b2"): WhiteSoldier,
			mustSquare(t, "a9"): King,
		})
		if !b.Apply(NewMove(mustSquare(t, "b2"), mustSquare(t, "b1"))) {
			t.Fatal("move rejected")
		}
		if b.At(mustSquare(t, "c1")) != Empty {
			t.Error("black soldier not captured against a citadel")
		}
	})

	t.Run("EdgeIsNotAWall", func(t *testing.T) {
		// Black in the corner, white arrives adjacent: the edge does not
		// close the capture.
		b := testBoard(t, WhiteToMove, map[Square]Cell{
			mustSquare(t, "a1"): BlackSoldier,
			mustSquare(t, "b3"): WhiteSoldier,
			mustSquare(t, "i9"): King,
		})
		if !b.Apply(NewMove(mustSquare(t, "b3"), mustSquare(t, "b1"))) {
			t.Fatal("move rejected")
		}
		if b.At(mustSquare(t, "a1")) != BlackSoldier {
			t.Error("soldier captured against the board edge")
		}
	})

	t.Run("DoubleCapture", func(t *testing.T) {
		// One move pins two black soldiers at once.
		b := testBoard(t, WhiteToMove, map[Square]Cell{
			mustSquare(t, "d3"): BlackSoldier,
			mustSquare(t, "c3"): WhiteSoldier,
			mustSquare(t, "f3"): BlackSoldier,
			mustSquare(t, "g3"): WhiteSoldier,
			mustSquare(t, "e4"): WhiteSoldier,
			mustSquare(t, "a9"): King,
		})
		if !b.Apply(NewMove(mustSquare(t, "e4"), mustSquare(t, "e3"))) {
			t.Fatal("move rejected")
		}
		if b.At(mustSquare(t, "d3")) != Empty || b.At(mustSquare(t, "f3")) != Empty {
			t.Error("expected both flanked soldiers captured")
		}
	})
}

func TestKingCaptureGeometry(t *testing.T) {
	t.Run("OnThroneFourSides", func(t *testing.T) {
		b := testBoard(t, BlackToMove, map[Square]Cell{
			ThroneSquare:        King,
			mustSquare(t, "e4"): BlackSoldier,
			mustSquare(t, "e6"): BlackSoldier,
			mustSquare(t, "d5"): BlackSoldier,
			mustSquare(t, "h5"): BlackSoldier,
		})
		if !b.Apply(NewMove(mustSquare(t, "h5"), mustSquare(t, "f5"))) {
			t.Fatal("move rejected")
		}
		if b.Turn() != BlackWin {
			t.Errorf("turn = %s, want BlackWin", b.Turn())
		}
		if b.KingSquare() != NoSquare {
			t.Error("king still cached after capture")
		}
	})

	t.Run("NextToThroneThreeSides", func(t *testing.T) {
		// King one square north of the throne (e6); the throne covers the
		// south side, black closes the remaining three.
		b := testBoard(t, BlackToMove, map[Square]Cell{
			mustSquare(t, "e6"): King,
			mustSquare(t, "e7"): BlackSoldier,
			mustSquare(t, "d6"): BlackSoldier,
			mustSquare(t, "h6"): BlackSoldier,
		})
		if !b.Apply(NewMove(mustSquare(t, "h6"), mustSquare(t, "f6"))) {
			t.Fatal("move rejected")
		}
		if b.Turn() != BlackWin {
			t.Errorf("turn = %s, want BlackWin", b.Turn())
		}
	})

	t.Run("OpenFieldNeedsOpposingPair", func(t *testing.T) {
		// A single adjacent black soldier in the open field is harmless.
		b := testBoard(t, BlackToMove, map[Square]Cell{
			mustSquare(t, "c3"): King,
			mustSquare(t, "c7"): BlackSoldier,
		})
		if !b.Apply(NewMove(mustSquare(t, "c7"), mustSquare(t, "c4"))) {
			t.Fatal("move rejected")
		}
		if b.Turn() != WhiteToMove {
			t.Errorf("turn = %s, want WhiteToMove (king not captured)", b.Turn())
		}
		if b.KingSquare() != mustSquare(t, "c3") {
			t.Error("king moved or captured unexpectedly")
		}
	})

	t.Run("OpenFieldOpposingPair", func(t *testing.T) {
		// North/south pair closes on the king in the open field.
		b := testBoard(t, BlackToMove, map[Square]Cell{
			mustSquare(t, "c3"): King,
			mustSquare(t, "c2"): BlackSoldier,
			mustSquare(t, "c8"): BlackSoldier,
		})
		if !b.Apply(NewMove(mustSquare(t, "c8"), mustSquare(t, "c4"))) {
			t.Fatal("move rejected")
		}
		if b.Turn() != BlackWin {
			t.Errorf("turn = %s, want BlackWin", b.Turn())
		}
	})

	t.Run("WhiteMoveCannotCaptureKing", func(t *testing.T) {
		// Same opposing pair, but the closing piece is white: no capture.
		b := testBoard(t, WhiteToMove, map[Square]Cell{
			mustSquare(t, "c3"): King,
			mustSquare(t, "c2"): BlackSoldier,
			mustSquare(t, "b4"): BlackSoldier,
			mustSquare(t, "f4"): WhiteSoldier,
		})
		if !b.Apply(NewMove(mustSquare(t, "f4"), mustSquare(t, "c4"))) {
			t.Fatal("move rejected")
		}
		if b.Turn() != BlackToMove {
			t.Errorf("turn = %s, want BlackToMove", b.Turn())
		}
	})
}

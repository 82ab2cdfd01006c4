package client

import (
	"encoding/json"
	"testing"

	"github.com/mmazzocchetti/tablut/internal/board"
)

// startStateJSON builds the server's representation of the standard start
// position with the given turn string.
func startStateJSON(t *testing.T, turn string) []byte {
	t.Helper()
	grid := make([][]string, board.Size)
	for r := range grid {
		grid[r] = make([]string, board.Size)
		for c := range grid[r] {
			grid[r][c] = "EMPTY"
		}
	}

	ref := board.New()
	for sq := board.Square(0); sq < board.NoSquare; sq++ {
		switch ref.At(sq) {
		case board.WhiteSoldier:
			grid[sq.Row()][sq.Col()] = "WHITE"
		case board.BlackSoldier:
			grid[sq.Row()][sq.Col()] = "BLACK"
		case board.King:
			grid[sq.Row()][sq.Col()] = "KING"
		case board.Throne:
			grid[sq.Row()][sq.Col()] = "THRONE"
		}
	}

	raw, err := json.Marshal(stateMessage{Board: grid, Turn: turn})
	if err != nil {
		t.Fatalf("marshaling state: %v", err)
	}
	return raw
}

func TestParseStateStartPosition(t *testing.T) {
	state, err := ParseState(startStateJSON(t, "WHITE"))
	if err != nil {
		t.Fatalf("ParseState: %v", err)
	}

	if state.Status != Ongoing || state.ToMove != board.White {
		t.Errorf("status %v to move %v, want ongoing white", state.Status, state.ToMove)
	}

	want := board.New()
	if !state.Board.Equal(want) {
		t.Errorf("decoded board differs from the start position:\n%s", state.Board)
	}
}

func TestParseStateTerminalTurns(t *testing.T) {
	cases := []struct {
		turn   string
		status Status
	}{
		{"WHITEWIN", WhiteWon},
		{"BLACKWIN", BlackWon},
		{"DRAW", Drawn},
	}
	for _, tc := range cases {
		state, err := ParseState(startStateJSON(t, tc.turn))
		if err != nil {
			t.Fatalf("ParseState(%s): %v", tc.turn, err)
		}
		if state.Status != tc.status {
			t.Errorf("turn %s: status %v, want %v", tc.turn, state.Status, tc.status)
		}
		if !state.Status.Terminal() {
			t.Errorf("turn %s should be terminal", tc.turn)
		}
	}
}

func TestParseStateRejectsMalformed(t *testing.T) {
	cases := map[string][]byte{
		"BadJSON":     []byte(`{"board": [`),
		"ShortBoard":  []byte(`{"board":[["EMPTY"]],"turn":"WHITE"}`),
		"UnknownTurn": startStateJSON(t, "PURPLE"),
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseState(raw); err == nil {
				t.Error("malformed state accepted")
			}
		})
	}
}

func TestActionMessageEncoding(t *testing.T) {
	m := board.NewMove(mustParseSquare(t, "e3"), mustParseSquare(t, "c3"))
	raw, err := json.Marshal(actionMessage{From: m.From().String(), To: m.To().String(), Turn: "WHITE"})
	if err != nil {
		t.Fatal(err)
	}
	want := `{"from":"e3","to":"c3","turn":"WHITE"}`
	if string(raw) != want {
		t.Errorf("encoded action %s, want %s", raw, want)
	}
}

func mustParseSquare(t *testing.T, s string) board.Square {
	t.Helper()
	sq, err := board.ParseSquare(s)
	if err != nil {
		t.Fatalf("bad square %q: %v", s, err)
	}
	return sq
}

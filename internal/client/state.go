package client

import (
	"encoding/json"
	"fmt"

	"github.com/mmazzocchetti/tablut/internal/board"
)

// Status is the game phase announced by the server.
type Status uint8

const (
	Ongoing Status = iota
	WhiteWon
	BlackWon
	Drawn
)

func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case WhiteWon:
		return "white won"
	case BlackWon:
		return "black won"
	case Drawn:
		return "draw"
	}
	return "unknown"
}

// Terminal reports whether the game is over.
func (s Status) Terminal() bool {
	return s != Ongoing
}

// State is a decoded server state message.
type State struct {
	Board  *board.Board
	Status Status
	// ToMove is valid only while the game is ongoing.
	ToMove board.Color
}

// stateMessage mirrors the server's state JSON.
type stateMessage struct {
	Board [][]string `json:"board"`
	Turn  string     `json:"turn"`
}

// actionMessage mirrors the server's action JSON.
type actionMessage struct {
	From string `json:"from"`
	To   string `json:"to"`
	Turn string `json:"turn"`
}

// ParseState decodes a server state message into a board position.
func ParseState(raw []byte) (*State, error) {
	var msg stateMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, fmt.Errorf("decoding state message: %w", err)
	}

	if len(msg.Board) != board.Size {
		return nil, fmt.Errorf("state has %d rows, want %d", len(msg.Board), board.Size)
	}

	var cells [board.NumSquares]board.Cell
	for r, row := range msg.Board {
		if len(row) != board.Size {
			return nil, fmt.Errorf("state row %d has %d cells, want %d", r, len(row), board.Size)
		}
		for c, name := range row {
			cell, err := parseCell(name)
			if err != nil {
				return nil, fmt.Errorf("state cell (%d,%d): %w", r, c, err)
			}
			cells[board.NewSquare(r, c)] = cell
		}
	}

	turn, status, err := parseTurn(msg.Turn)
	if err != nil {
		return nil, err
	}

	b, err := board.FromCells(cells, turn)
	if err != nil {
		return nil, fmt.Errorf("state rejected: %w", err)
	}

	st := &State{Board: b, Status: status}
	if status == Ongoing {
		st.ToMove = turn.Side()
	}
	return st, nil
}

func parseCell(name string) (board.Cell, error) {
	switch name {
	case "EMPTY":
		return board.Empty, nil
	case "WHITE":
		return board.WhiteSoldier, nil
	case "BLACK":
		return board.BlackSoldier, nil
	case "KING":
		return board.King, nil
	case "THRONE":
		return board.Throne, nil
	}
	return board.Empty, fmt.Errorf("unknown cell %q", name)
}

// parseTurn maps the wire turn onto a board turn and a game status. A
// drawn game has no board-level turn; WhiteToMove stands in since the
// board is not searched once the game is over.
func parseTurn(turn string) (board.Turn, Status, error) {
	switch turn {
	case "WHITE":
		return board.WhiteToMove, Ongoing, nil
	case "BLACK":
		return board.BlackToMove, Ongoing, nil
	case "WHITEWIN":
		return board.WhiteWin, WhiteWon, nil
	case "BLACKWIN":
		return board.BlackWin, BlackWon, nil
	case "DRAW":
		return board.WhiteToMove, Drawn, nil
	}
	return 0, 0, fmt.Errorf("unknown turn %q", turn)
}

func wireColor(c board.Color) string {
	if c == board.Black {
		return "BLACK"
	}
	return "WHITE"
}

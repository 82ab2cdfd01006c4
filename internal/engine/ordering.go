package engine

import (
	"sort"

	"github.com/mmazzocchetti/tablut/internal/board"
)

type scoredMove struct {
	move  board.Move
	score int
}

// orderMoves sorts moves by the evaluation of the position they produce:
// descending when White is to move, ascending when Black is. A principal
// move, if given, is placed first regardless of its one-ply score.
func orderMoves(b *board.Board, w *Weights, moves []board.Move, principal board.Move) []board.Move {
	whiteToMove := b.Turn() == board.WhiteToMove

	scored := make([]scoredMove, 0, len(moves))
	for _, m := range moves {
		next := b.Clone()
		if !next.Apply(m) {
			continue
		}
		scored = append(scored, scoredMove{move: m, score: Evaluate(next, w)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if whiteToMove {
			return scored[i].score > scored[j].score
		}
		return scored[i].score < scored[j].score
	})

	ordered := make([]board.Move, 0, len(scored))
	if principal != board.NoMove {
		ordered = append(ordered, principal)
	}
	for _, sm := range scored {
		if sm.move == principal {
			continue
		}
		ordered = append(ordered, sm.move)
	}
	return ordered
}

package engine

import (
	"context"
	"errors"

	"github.com/mmazzocchetti/tablut/internal/board"
)

// errDeadline aborts the whole in-flight depth. The iterative-deepening
// driver is the only consumer; it falls back to the last completed depth.
var errDeadline = errors.New("search deadline exceeded")

// quiescenceDepth caps the quiescence extension beyond the main horizon.
const quiescenceDepth = 4

// searcher runs a single root task: one recursive alpha-beta search over
// its own board clones. The transposition table is the only shared state.
type searcher struct {
	tt      *TranspositionTable
	weights *Weights
	nodes   uint64
}

// maxValue scores a position with White to move. It returns the best score
// White can force within the window, or errDeadline if the clock ran out.
func (s *searcher) maxValue(ctx context.Context, b *board.Board, alpha, beta, depth int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errDeadline
	}
	s.nodes++

	switch b.Turn() {
	case board.WhiteWin:
		return WinScore + depth, nil
	case board.BlackWin:
		return -WinScore - depth, nil
	}

	if depth == 0 {
		return s.quiescenceMax(ctx, b, alpha, beta, quiescenceDepth)
	}

	origAlpha, origBeta := alpha, beta

	ttMove := board.NoMove
	if entry, ok := s.tt.Probe(b.Hash()); ok {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			score := int(entry.Score)
			switch entry.Flag {
			case TTExact:
				return score, nil
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score, nil
			}
		}
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		// White cannot move and loses on the spot.
		return -WinScore - depth, nil
	}

	best := -Infinity
	bestMove := board.NoMove
	for _, m := range orderMoves(b, s.weights, moves, ttMove) {
		next := b.Clone()
		if !next.Apply(m) {
			continue
		}
		score, err := s.minValue(ctx, next, alpha, beta, depth-1)
		if err != nil {
			return 0, err
		}
		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}

	s.tt.Store(b.Hash(), depth, best, classifyBound(best, origAlpha, origBeta), bestMove)
	return best, nil
}

// minValue is the mirror of maxValue for Black to move.
func (s *searcher) minValue(ctx context.Context, b *board.Board, alpha, beta, depth int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errDeadline
	}
	s.nodes++

	switch b.Turn() {
	case board.WhiteWin:
		return WinScore + depth, nil
	case board.BlackWin:
		return -WinScore - depth, nil
	}

	if depth == 0 {
		return s.quiescenceMin(ctx, b, alpha, beta, quiescenceDepth)
	}

	origAlpha, origBeta := alpha, beta

	ttMove := board.NoMove
	if entry, ok := s.tt.Probe(b.Hash()); ok {
		ttMove = entry.BestMove
		if int(entry.Depth) >= depth {
			score := int(entry.Score)
			switch entry.Flag {
			case TTExact:
				return score, nil
			case TTLowerBound:
				if score > alpha {
					alpha = score
				}
			case TTUpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score, nil
			}
		}
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		// Black cannot move and loses on the spot.
		return WinScore + depth, nil
	}

	best := Infinity
	bestMove := board.NoMove
	for _, m := range orderMoves(b, s.weights, moves, ttMove) {
		next := b.Clone()
		if !next.Apply(m) {
			continue
		}
		score, err := s.maxValue(ctx, next, alpha, beta, depth-1)
		if err != nil {
			return 0, err
		}
		if score < best {
			best = score
			bestMove = m
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}

	s.tt.Store(b.Hash(), depth, best, classifyBound(best, origAlpha, origBeta), bestMove)
	return best, nil
}

// classifyBound labels a finished node's score against the window that was
// in force before any table-driven tightening.
func classifyBound(score, alpha, beta int) TTFlag {
	if score <= alpha {
		return TTUpperBound
	}
	if score >= beta {
		return TTLowerBound
	}
	return TTExact
}

// quiescenceMax extends the search past the horizon along capturing moves
// only, so tactically unstable positions are not scored mid-exchange.
func (s *searcher) quiescenceMax(ctx context.Context, b *board.Board, alpha, beta, depth int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errDeadline
	}
	s.nodes++

	if b.Turn().Terminal() {
		return Evaluate(b, s.weights), nil
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -WinScore - depth, nil
	}

	standPat := Evaluate(b, s.weights)
	if depth == 0 {
		return standPat, nil
	}
	if standPat >= beta {
		return standPat, nil
	}

	best := standPat
	if best > alpha {
		alpha = best
	}
	for _, c := range captureMoves(b, moves) {
		score, err := s.quiescenceMin(ctx, c, alpha, beta, depth-1)
		if err != nil {
			return 0, err
		}
		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

// quiescenceMin is the mirror of quiescenceMax for Black to move.
func (s *searcher) quiescenceMin(ctx context.Context, b *board.Board, alpha, beta, depth int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errDeadline
	}
	s.nodes++

	if b.Turn().Terminal() {
		return Evaluate(b, s.weights), nil
	}

	moves := b.LegalMoves()
	if len(moves) == 0 {
		return WinScore + depth, nil
	}

	standPat := Evaluate(b, s.weights)
	if depth == 0 {
		return standPat, nil
	}
	if standPat <= alpha {
		return standPat, nil
	}

	best := standPat
	if best < beta {
		beta = best
	}
	for _, c := range captureMoves(b, moves) {
		score, err := s.quiescenceMax(ctx, c, alpha, beta, depth-1)
		if err != nil {
			return 0, err
		}
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

// captureMoves applies every legal move on a clone and keeps the resulting
// positions that removed a piece or ended the game.
func captureMoves(b *board.Board, moves []board.Move) []*board.Board {
	before := pieceCount(b)
	var out []*board.Board
	for _, m := range moves {
		next := b.Clone()
		if !next.Apply(m) {
			continue
		}
		if pieceCount(next) < before || next.Turn().Terminal() {
			out = append(out, next)
		}
	}
	return out
}

func pieceCount(b *board.Board) int {
	n := b.WhiteCount() + b.BlackCount()
	if b.KingSquare() != board.NoSquare {
		n++
	}
	return n
}

package engine

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"

	"github.com/mmazzocchetti/tablut/internal/board"
)

// MaxDepth bounds iterative deepening when no explicit limit is set.
const MaxDepth = 64

// deadlineMargin is the slice of the time budget reserved for returning
// the answer: no new depth starts once remaining time drops below it.
const deadlineMargin = 100 * time.Millisecond

// SearchLimits specifies constraints on a move decision.
type SearchLimits struct {
	Depth    int           // Maximum depth (0 = no limit)
	MoveTime time.Duration // Time for this move (0 = use the budget given per call)
}

// Engine picks moves for one side. It owns a transposition table and a
// fixed worker pool, both created once and reused across move decisions.
type Engine struct {
	color   board.Color
	weights Weights
	tt      *TranspositionTable
	pool    *workerPool
	limits  SearchLimits
	log     zerolog.Logger
}

// NewEngine creates an engine playing the given side with the given weight
// vector and a transposition table of ttSizeMB megabytes.
func NewEngine(color board.Color, weights Weights, ttSizeMB int, log zerolog.Logger) *Engine {
	e := &Engine{
		color:   color,
		weights: weights,
		tt:      NewTranspositionTable(ttSizeMB),
		log:     log,
	}
	e.pool = newWorkerPool(runtime.NumCPU(), e.tt, &e.weights)
	return e
}

// SetLimits overrides the default search limits.
func (e *Engine) SetLimits(l SearchLimits) {
	e.limits = l
}

// Color returns the side this engine plays.
func (e *Engine) Color() board.Color {
	return e.color
}

// Close releases the engine's worker pool.
func (e *Engine) Close() {
	e.pool.close()
}

// PickBestMove runs iterative deepening within the time budget and returns
// the best move found, or ok=false when the side to move has no legal move
// at all (an immediate loss for it). A depth cut short by the deadline is
// discarded whole; the move returned always comes from the deepest fully
// completed iteration, falling back to the best one-ply move if not even
// depth 1 finished.
func (e *Engine) PickBestMove(ctx context.Context, root *board.Board, budget time.Duration) (board.Move, bool) {
	if e.limits.MoveTime > 0 {
		budget = e.limits.MoveTime
	}
	start := time.Now()
	deadline := start.Add(budget)

	e.tt.Clear()

	legal := root.LegalMoves()
	if len(legal) == 0 {
		e.log.Warn().Str("turn", root.Turn().String()).Msg("no legal moves available")
		return board.NoMove, false
	}

	// One-ply fallback in case depth 1 never completes.
	ordered := orderMoves(root, &e.weights, legal, board.NoMove)
	bestMove := ordered[0]
	bestScore := onePlyScore(root, &e.weights, bestMove)

	maxDepth := MaxDepth
	if e.limits.Depth > 0 {
		maxDepth = e.limits.Depth
	}

	completed := 0
	for depth := 1; depth <= maxDepth; depth++ {
		if time.Until(deadline) <= deadlineMargin {
			break
		}

		score, move, nodes, ok := e.searchDepth(ctx, root, ordered, depth, deadline)
		if !ok {
			break
		}

		bestMove, bestScore = move, score
		completed = depth

		// Keep the incumbent first in the next iteration's ordering.
		ordered = promoteMove(ordered, bestMove)

		e.log.Debug().
			Int("depth", depth).
			Int("score", score).
			Uint64("nodes", nodes).
			Str("move", move.String()).
			Dur("elapsed", time.Since(start)).
			Msg("depth completed")

		if bestScore >= WinScore || bestScore <= -WinScore {
			break
		}
	}

	e.log.Info().
		Int("depth", completed).
		Int("score", bestScore).
		Str("move", bestMove.String()).
		Dur("elapsed", time.Since(start)).
		Float64("tt_hit_rate", e.tt.HitRate()).
		Msg("move decided")

	return bestMove, true
}

// searchDepth fans one task per root move out to the worker pool and
// collects results in submission order. ok is false when the deadline was
// crossed, in which case the whole depth is discarded.
func (e *Engine) searchDepth(ctx context.Context, root *board.Board, ordered []board.Move, depth int, deadline time.Time) (int, board.Move, uint64, bool) {
	dctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	tasks := make([]*rootTask, 0, len(ordered))
	for _, m := range ordered {
		next := root.Clone()
		if !next.Apply(m) {
			continue
		}
		tasks = append(tasks, &rootTask{
			move:   m,
			state:  next,
			depth:  depth - 1,
			ctx:    dctx,
			result: make(chan rootResult, 1),
		})
	}
	e.pool.submit(dctx.Done(), tasks)

	bestScore := -Infinity
	if e.color == board.Black {
		bestScore = Infinity
	}
	bestMove := board.NoMove
	var nodes uint64

	for _, t := range tasks {
		var res rootResult
		select {
		case res = <-t.result:
		case <-dctx.Done():
			return 0, board.NoMove, 0, false
		}
		if res.err != nil {
			return 0, board.NoMove, 0, false
		}
		nodes += res.nodes

		if e.color == board.White {
			if res.score > bestScore {
				bestScore, bestMove = res.score, t.move
			}
		} else {
			if res.score < bestScore {
				bestScore, bestMove = res.score, t.move
			}
		}
	}

	if bestMove == board.NoMove {
		return 0, board.NoMove, 0, false
	}
	return bestScore, bestMove, nodes, true
}

// onePlyScore evaluates the position a move leads to, so the fallback
// score describes the fallback move rather than the unmoved root.
func onePlyScore(b *board.Board, w *Weights, m board.Move) int {
	next := b.Clone()
	next.Apply(m)
	return Evaluate(next, w)
}

// promoteMove moves m to the front, keeping the rest of the order.
func promoteMove(moves []board.Move, m board.Move) []board.Move {
	out := make([]board.Move, 0, len(moves))
	out = append(out, m)
	for _, x := range moves {
		if x != m {
			out = append(out, x)
		}
	}
	return out
}

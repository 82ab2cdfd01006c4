package engine

import (
	"context"

	"github.com/mmazzocchetti/tablut/internal/board"
)

// rootTask searches one root move at a fixed depth. The position already
// has the move applied; each task owns its clone outright.
type rootTask struct {
	move  board.Move
	state *board.Board
	depth int
	ctx   context.Context

	// result is buffered so a worker finishing after the driver has
	// abandoned the depth never blocks on a send.
	result chan rootResult
}

type rootResult struct {
	score int
	nodes uint64
	err   error
}

// workerPool runs root tasks on a fixed set of goroutines, created once
// and reused across depths and across successive move decisions.
type workerPool struct {
	tasks   chan *rootTask
	tt      *TranspositionTable
	weights *Weights
}

func newWorkerPool(n int, tt *TranspositionTable, weights *Weights) *workerPool {
	p := &workerPool{
		tasks:   make(chan *rootTask),
		tt:      tt,
		weights: weights,
	}
	for i := 0; i < n; i++ {
		go p.run()
	}
	return p
}

func (p *workerPool) run() {
	for t := range p.tasks {
		s := &searcher{tt: p.tt, weights: p.weights}

		var score int
		var err error
		// The root move has been applied, so the opposite side is on
		// the move inside the task.
		if t.state.Turn() == board.WhiteToMove {
			score, err = s.maxValue(t.ctx, t.state, -Infinity, Infinity, t.depth)
		} else {
			score, err = s.minValue(t.ctx, t.state, -Infinity, Infinity, t.depth)
		}

		t.result <- rootResult{score: score, nodes: s.nodes, err: err}
	}
}

// submit feeds tasks to the pool until done fires. Unsubmitted tasks are
// simply dropped; the driver has stopped listening by then.
func (p *workerPool) submit(done <-chan struct{}, tasks []*rootTask) {
	go func() {
		for _, t := range tasks {
			select {
			case p.tasks <- t:
			case <-done:
				return
			}
		}
	}()
}

// close stops the pool's goroutines. Only safe once no search is running.
func (p *workerPool) close() {
	close(p.tasks)
}

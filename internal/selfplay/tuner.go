// Package selfplay tunes heuristic weight vectors by playing engine
// instances against each other with a genetic algorithm.
package selfplay

import (
	"context"
	"math/rand"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mmazzocchetti/tablut/internal/board"
	"github.com/mmazzocchetti/tablut/internal/engine"
)

// Config controls the genetic algorithm.
type Config struct {
	Population       int           // genomes per generation
	Generations      int           // generations to evolve
	MatchesPerGenome int           // paired matches per genome per generation
	MutationRate     float64       // per-gene mutation probability
	MutationStep     float64       // maximum absolute gene perturbation
	MoveTime         time.Duration // budget per move inside a match
	MaxMoves         int           // plies before a match is called a draw
	Depth            int           // search depth cap inside matches (0 = none)
	Seed             int64
}

// DefaultConfig mirrors the calibration runs the default weights came from,
// with a shallow depth cap so a full run stays tractable.
func DefaultConfig() Config {
	return Config{
		Population:       50,
		Generations:      45,
		MatchesPerGenome: 5,
		MutationRate:     0.05,
		MutationStep:     100.0,
		MoveTime:         time.Second,
		MaxMoves:         200,
		Depth:            3,
		Seed:             time.Now().UnixNano(),
	}
}

// Fitness points per match outcome.
const (
	winPoints  = 3.0
	drawPoints = 1.0
)

// Genome is one candidate weight vector with its accumulated fitness.
type Genome struct {
	Weights engine.Weights
	Fitness float64
}

// Tuner evolves weight vectors through self-play.
type Tuner struct {
	cfg Config
	rng *rand.Rand
	log zerolog.Logger
}

// New creates a tuner.
func New(cfg Config, log zerolog.Logger) *Tuner {
	return &Tuner{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed)), log: log}
}

// Run evolves the population and returns the fittest genome seen across
// all generations. It stops early if the context is cancelled.
func (t *Tuner) Run(ctx context.Context) (Genome, error) {
	population := t.seedPopulation()
	best := population[0]

	for gen := 0; gen < t.cfg.Generations; gen++ {
		if err := t.evaluate(ctx, population); err != nil {
			return best, err
		}

		sort.SliceStable(population, func(i, j int) bool {
			return population[i].Fitness > population[j].Fitness
		})

		if population[0].Fitness > best.Fitness {
			best = population[0]
		}

		var sum float64
		for _, g := range population {
			sum += g.Fitness
		}
		t.log.Info().
			Int("generation", gen).
			Float64("best_fitness", population[0].Fitness).
			Float64("avg_fitness", sum/float64(len(population))).
			Msg("generation evaluated")

		population = t.nextGeneration(population)
	}

	return best, nil
}

// seedPopulation starts from the default vector and mutated copies of it.
func (t *Tuner) seedPopulation() []Genome {
	population := make([]Genome, t.cfg.Population)
	for i := range population {
		w := engine.DefaultWeights()
		if i > 0 {
			t.mutate(&w)
		}
		population[i] = Genome{Weights: w}
	}
	return population
}

// evaluate plays each genome's matches concurrently and accumulates
// fitness. Opponents are drawn up front so the shared RNG stays confined
// to the driver goroutine.
func (t *Tuner) evaluate(ctx context.Context, population []Genome) error {
	for i := range population {
		population[i].Fitness = 0
	}

	type pairing struct {
		genome, opponent int
	}
	var pairings []pairing
	for i := range population {
		for m := 0; m < t.cfg.MatchesPerGenome; m++ {
			pairings = append(pairings, pairing{genome: i, opponent: t.rng.Intn(len(population))})
		}
	}

	scores := make([]float64, len(population))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, p := range pairings {
		p := p
		g.Go(func() error {
			white := population[p.genome].Weights
			black := population[p.opponent].Weights

			// Paired matches with colors swapped cancel out the
			// first-move advantage.
			first, err := t.playMatch(gctx, white, black)
			if err != nil {
				return err
			}
			second, err := t.playMatch(gctx, black, white)
			if err != nil {
				return err
			}

			mu.Lock()
			scores[p.genome] += pointsFor(first, board.White) + pointsFor(second, board.Black)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i := range population {
		population[i].Fitness = scores[i]
	}
	return nil
}

// pointsFor scores a match outcome from the perspective of one side.
func pointsFor(winner board.Turn, side board.Color) float64 {
	switch winner {
	case board.WhiteWin:
		if side == board.White {
			return winPoints
		}
		return 0
	case board.BlackWin:
		if side == board.Black {
			return winPoints
		}
		return 0
	}
	return drawPoints
}

// playMatch plays one full game between two weight vectors and returns
// WhiteWin, BlackWin, or WhiteToMove for a draw by move limit.
func (t *Tuner) playMatch(ctx context.Context, white, black engine.Weights) (board.Turn, error) {
	limits := engine.SearchLimits{Depth: t.cfg.Depth}

	whiteEngine := engine.NewEngine(board.White, white, 8, zerolog.Nop())
	whiteEngine.SetLimits(limits)
	defer whiteEngine.Close()

	blackEngine := engine.NewEngine(board.Black, black, 8, zerolog.Nop())
	blackEngine.SetLimits(limits)
	defer blackEngine.Close()

	b := board.New()
	for ply := 0; ply < t.cfg.MaxMoves; ply++ {
		if err := ctx.Err(); err != nil {
			return b.Turn(), err
		}

		e := whiteEngine
		if b.Turn() == board.BlackToMove {
			e = blackEngine
		}

		move, ok := e.PickBestMove(ctx, b, t.cfg.MoveTime)
		if !ok {
			// No legal move loses the game for the stuck side.
			if b.Turn() == board.WhiteToMove {
				return board.BlackWin, nil
			}
			return board.WhiteWin, nil
		}
		if !b.Apply(move) {
			if b.Turn() == board.WhiteToMove {
				return board.BlackWin, nil
			}
			return board.WhiteWin, nil
		}

		if b.Turn().Terminal() {
			return b.Turn(), nil
		}
	}

	return board.WhiteToMove, nil // draw by move limit
}

// nextGeneration keeps the top half and refills with crossover children.
func (t *Tuner) nextGeneration(sorted []Genome) []Genome {
	parents := sorted[:len(sorted)/2]

	next := make([]Genome, 0, t.cfg.Population)
	for _, p := range parents {
		next = append(next, Genome{Weights: p.Weights})
	}
	for len(next) < t.cfg.Population {
		p1 := parents[t.rng.Intn(len(parents))]
		p2 := parents[t.rng.Intn(len(parents))]
		child := t.crossover(p1.Weights, p2.Weights)
		t.mutate(&child)
		next = append(next, Genome{Weights: child})
	}
	return next
}

// crossover splices two parents at a random point.
func (t *Tuner) crossover(p1, p2 engine.Weights) engine.Weights {
	point := t.rng.Intn(len(p1))
	var child engine.Weights
	for i := range child {
		if i < point {
			child[i] = p1[i]
		} else {
			child[i] = p2[i]
		}
	}
	return child
}

// mutate perturbs genes in place with the configured rate and step.
func (t *Tuner) mutate(w *engine.Weights) {
	for i := range w {
		if t.rng.Float64() < t.cfg.MutationRate {
			w[i] += t.rng.Float64()*t.cfg.MutationStep*2 - t.cfg.MutationStep
		}
	}
}

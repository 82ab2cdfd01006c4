package main

import (
	"context"
	"flag"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/mmazzocchetti/tablut/internal/board"
	"github.com/mmazzocchetti/tablut/internal/client"
	"github.com/mmazzocchetti/tablut/internal/engine"
	"github.com/mmazzocchetti/tablut/internal/storage"
)

var (
	role       = flag.String("role", "white", "side to play: white or black")
	name       = flag.String("name", "tablut-agent", "player name declared to the server")
	host       = flag.String("host", "localhost", "game server host")
	timeout    = flag.Int("timeout", 59, "per-move time budget in seconds")
	profile    = flag.String("profile", "", "stored weight profile to play with (default: active profile)")
	ttSize     = flag.Int("hash", 64, "transposition table size in MB")
	debug      = flag.Bool("debug", false, "enable debug logging")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !*debug {
		log = log.Level(zerolog.InfoLevel)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	color, err := parseRole(*role)
	if err != nil {
		log.Fatal().Err(err).Msg("bad role")
	}

	store, err := storage.NewStorage()
	if err != nil {
		log.Warn().Err(err).Msg("store unavailable, playing without persistence")
		store = nil
	} else {
		defer store.Close()
	}

	weights, err := loadWeights(store, *profile, log)
	if err != nil {
		log.Fatal().Err(err).Msg("loading weight profile")
	}

	eng := engine.NewEngine(color, weights, *ttSize, log)
	defer eng.Close()

	ctx := context.Background()
	conn, err := client.Dial(ctx, *host, color, *name, log)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to server")
	}
	defer conn.Close()

	budget := time.Duration(*timeout)*time.Second - 2*time.Second

	if err := play(ctx, conn, eng, store, budget, log); err != nil {
		log.Fatal().Err(err).Msg("match aborted")
	}
}

// gameConn is the slice of the client play needs.
type gameConn interface {
	ReadState() (*client.State, error)
	SendMove(board.Move) error
}

// play runs the turn loop until the server announces a result, or until
// this side has no legal move left, which loses the match on the spot.
func play(ctx context.Context, conn gameConn, eng *engine.Engine, store *storage.Storage, budget time.Duration, log zerolog.Logger) error {
	start := time.Now()
	for {
		state, err := conn.ReadState()
		if err != nil {
			return err
		}

		if state.Status.Terminal() {
			recordResult(store, matchResult(state.Status, eng.Color(), time.Since(start)), log)
			log.Info().
				Str("result", state.Status.String()).
				Dur("match_time", time.Since(start)).
				Msg("match over")
			return nil
		}

		if state.ToMove != eng.Color() {
			log.Debug().Msg("waiting for opponent")
			continue
		}

		move, ok := eng.PickBestMove(ctx, state.Board, budget)
		if !ok {
			loss := client.BlackWon
			if eng.Color() == board.Black {
				loss = client.WhiteWon
			}
			recordResult(store, matchResult(loss, eng.Color(), time.Since(start)), log)
			log.Info().
				Dur("match_time", time.Since(start)).
				Msg("no legal move available, match lost")
			return nil
		}
		if err := conn.SendMove(move); err != nil {
			return err
		}
	}
}

// matchResult translates a final status into this side's match record.
func matchResult(status client.Status, color board.Color, elapsed time.Duration) storage.MatchResult {
	side := "WHITE"
	if color == board.Black {
		side = "BLACK"
	}
	return storage.MatchResult{
		Won: (status == client.WhiteWon && color == board.White) ||
			(status == client.BlackWon && color == board.Black),
		Draw:     status == client.Drawn,
		Side:     side,
		Duration: elapsed,
	}
}

func recordResult(store *storage.Storage, result storage.MatchResult, log zerolog.Logger) {
	if store == nil {
		return
	}
	if err := store.RecordMatch(result); err != nil {
		log.Warn().Err(err).Msg("recording match result")
	}
}

func parseRole(s string) (board.Color, error) {
	switch strings.ToLower(s) {
	case "white":
		return board.White, nil
	case "black":
		return board.Black, nil
	}
	return 0, errBadRole(s)
}

type errBadRole string

func (e errBadRole) Error() string {
	return "role must be white or black, got " + string(e)
}

// loadWeights resolves the weight vector to play with: an explicitly named
// profile, else the stored active profile, else the built-in defaults.
func loadWeights(store *storage.Storage, name string, log zerolog.Logger) (engine.Weights, error) {
	if store == nil {
		return engine.DefaultWeights(), nil
	}

	if name == "" {
		active, err := store.ActiveProfile()
		if err != nil {
			return engine.Weights{}, err
		}
		if active == "" {
			return engine.DefaultWeights(), nil
		}
		name = active
	}

	profile, err := store.LoadProfile(name)
	if err != nil {
		return engine.Weights{}, err
	}
	log.Info().Str("profile", profile.Name).Msg("weight profile loaded")
	return profile.Weights, nil
}

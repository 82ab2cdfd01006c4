package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"

	"github.com/mmazzocchetti/tablut/internal/selfplay"
	"github.com/mmazzocchetti/tablut/internal/storage"
)

var (
	population  = flag.Int("population", 50, "genomes per generation")
	generations = flag.Int("generations", 45, "generations to evolve")
	matches     = flag.Int("matches", 5, "paired matches per genome per generation")
	moveTime    = flag.Duration("movetime", time.Second, "time budget per move")
	depth       = flag.Int("depth", 3, "search depth cap inside matches (0 = none)")
	seed        = flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	profileName = flag.String("save-as", "tuned", "profile name to store the result under")
	activate    = flag.Bool("activate", false, "mark the stored profile as active")
	debug       = flag.Bool("debug", false, "enable debug logging")
)

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	if !*debug {
		log = log.Level(zerolog.InfoLevel)
	}

	cfg := selfplay.DefaultConfig()
	cfg.Population = *population
	cfg.Generations = *generations
	cfg.MatchesPerGenome = *matches
	cfg.MoveTime = *moveTime
	cfg.Depth = *depth
	if *seed != 0 {
		cfg.Seed = *seed
	}

	// Ctrl-C stops after the current generation and keeps the best so far.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().
		Int("population", cfg.Population).
		Int("generations", cfg.Generations).
		Int("matches_per_genome", cfg.MatchesPerGenome).
		Dur("move_time", cfg.MoveTime).
		Msg("tuning started")

	tuner := selfplay.New(cfg, log)
	best, err := tuner.Run(ctx)
	if err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("tuning failed")
	}

	store, err := storage.NewStorage()
	if err != nil {
		log.Fatal().Err(err).Msg("opening profile store")
	}
	defer store.Close()

	profile := &storage.WeightProfile{
		Name:    *profileName,
		Weights: best.Weights,
		Fitness: best.Fitness,
	}
	if err := store.SaveProfile(profile); err != nil {
		log.Fatal().Err(err).Msg("saving profile")
	}
	if *activate {
		if err := store.SetActiveProfile(*profileName); err != nil {
			log.Fatal().Err(err).Msg("activating profile")
		}
	}

	log.Info().
		Str("profile", *profileName).
		Float64("fitness", best.Fitness).
		Floats64("weights", best.Weights[:]).
		Msg("tuning finished")
}

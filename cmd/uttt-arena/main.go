package main

/*

Ultimate tic tac toe arena

Plays the alpha-beta engine, with the configured depth and arena movetime,
against a random player and prints the summary.

*/

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-uttt/pkg/bench"
	"github.com/IlikeChooros/go-uttt/pkg/config"
	"github.com/IlikeChooros/go-uttt/pkg/search"
)

func main() {
	cfg := config.New()
	if err := cfg.Load(os.Args[1:]); err != nil {
		panic(err)
	}

	logger, err := cfg.Logger()
	if err != nil {
		panic(err)
	}
	log.Logger = logger
	zerolog.DefaultContextLogger = &logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	limits := search.DefaultLimits().
		SetDepth(cfg.GetInt(config.ConfigDepth)).
		SetMovetime(cfg.GetInt(config.ConfigArenaMovetime))

	arena := bench.NewVersusArena(
		bench.NewEnginePlayer(limits),
		bench.NewRandomPlayer(time.Now().UnixNano()),
	).Setup(cfg.GetInt(config.ConfigArenaGames), cfg.GetInt(config.ConfigArenaWorkers))

	var output *termenv.Output
	if cfg.GetString(config.ConfigLogLevel) == "debug" {
		output = termenv.NewOutput(os.Stdout)
	}

	summary, err := arena.Run(ctx, bench.NewArenaListener(output))
	fmt.Println(summary)
	if err != nil {
		logger.Error().Err(err).Msg("arena-interrupted")
		os.Exit(1)
	}
}

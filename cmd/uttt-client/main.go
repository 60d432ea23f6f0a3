package main

/*

Ultimate tic tac toe game server client

Connects to the server (first positional argument, or --server-host) and
plays the game with the alpha-beta engine, one decision per server request.

*/

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-uttt/pkg/client"
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
	logger.Info().Interface("config", cfg.AllSettings()).Msg("loaded-config")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithContext(ctx)

	addr := cfg.ServerAddr()
	conn, err := client.Dial(ctx, addr, cfg.GetInt(config.ConfigDialAttempts))
	if err != nil {
		logger.Error().Err(err).Str("addr", addr).Msg("cannot-connect")
		os.Exit(1)
	}
	logger.Info().Str("addr", addr).Msg("connected")

	engine := search.NewEngine().SetLimits(cfg.Limits())
	c := client.New(conn, engine)
	if cfg.GetString(config.ConfigLogLevel) == "debug" {
		c.Output = termenv.NewOutput(os.Stdout)
	}

	if err := c.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("game-aborted")
		os.Exit(1)
	}
	logger.Info().Msg("bye")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ThakurMayank5/Collect-Server/config"
	"github.com/ThakurMayank5/Collect-Server/dispatch"
	"github.com/ThakurMayank5/Collect-Server/game"
	"github.com/ThakurMayank5/Collect-Server/hub"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	config.LoadEnv()

	var cfg config.Config
	ctx := kong.Parse(&cfg,
		kong.Name("collect-server"),
		kong.Description("Authoritative game-state server for the collect-the-items lobby."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}))
	ctx.FatalIfErrorf(cfg.Validate())

	setupLogger(cfg.LogLevel)

	dispatcher := dispatch.New(game.New(cfg.Game()), hub.New(), cfg.TickInterval)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: newServer(&cfg, dispatcher).setupRouter(),
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("🚀 server starting")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")
	dispatcher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown error")
	}
}

func setupLogger(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if lvl == zerolog.DebugLevel {
		log.Warn().Msg("debug logging enabled")
	}
}

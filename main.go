package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Abdel00zz/Reflexe4Arabic/assets"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/config"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/httpserver"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/sqlite"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.Env == "local" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	if err := content.Init(cfg.ContentFile); err != nil {
		log.Fatal().Err(err).Str("file", cfg.ContentFile).Msg("failed to load content")
	}

	migrations, err := assets.Migrations()
	if err != nil {
		log.Fatal().Err(err).Msg("open migrations")
	}
	db, err := sqlite.OpenMigrated(cfg.DB.Path, migrations)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DB.Path).Msg("open database")
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(cfg, store.NewMemoryStore(), db, content.Default())
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return
	}
	log.Info().Msg("server stopped")
}

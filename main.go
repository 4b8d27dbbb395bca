package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"cafe-menu/internal/config"
	"cafe-menu/internal/logger"
	"cafe-menu/internal/router"
	"cafe-menu/internal/services"
	"cafe-menu/internal/store"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.InitLogger()
	log.Info().Msg("Starting cafe menu server")

	st, err := store.Open(cfg.DataDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open data store")
	}

	if err := st.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Schema migration failed")
	}

	userService := services.NewUserService(st, log)
	if err := services.SeedDefaults(st, userService, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default data")
	}

	r, err := router.SetupRouter(st, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up router")
	}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}

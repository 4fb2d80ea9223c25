package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lookup-service/internal/config"
	serverhttp "lookup-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config")
	}

	schema, err := config.LoadSchema(cfg.SchemaFile)
	if err != nil {
		logger.Fatal().Err(err).Str("file", cfg.SchemaFile).Msg("schema")
	}

	r := serverhttp.NewRouter(cfg, schema, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       2 * time.Minute, // большие книги
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       time.Minute,
	}
	logger.Info().
		Str("addr", cfg.Addr()).
		Str("scope", string(cfg.Scope)).
		Str("schema", cfg.SchemaFile).
		Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}

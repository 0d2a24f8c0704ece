package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"access-denied-lite/internal/config"
	"access-denied-lite/internal/logger"
	"access-denied-lite/internal/metrics"
	"access-denied-lite/internal/server"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL: %v\n", err)
		os.Exit(1)
	}

	gin.SetMode(cfg.GinMode)
	deps := server.Wire(cfg, log, metrics.New())
	defer deps.Limiter.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Int("port", cfg.Port).Str("organization", cfg.OrganizationName).Msg("listening")
	if err := server.Run(ctx, cfg, server.NewRouter(deps)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

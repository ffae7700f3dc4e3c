package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/aura/internal/logging"
	"github.com/dmitrijs2005/aura/internal/server"
	"github.com/dmitrijs2005/aura/internal/server/config"
)

func main() {
	ctx := context.Background()

	cfg := config.LoadConfig()
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel).With("service", "aura")

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/builderos/builderos/internal/api"
	"github.com/builderos/builderos/internal/config"
	"github.com/builderos/builderos/internal/format"
	"github.com/builderos/builderos/internal/logging"
	"github.com/builderos/builderos/internal/tui"
	"github.com/builderos/builderos/internal/upload"
	"github.com/builderos/builderos/internal/views"
)

func main() {
	ctx := context.Background()

	// .env is optional; env vars override file values either way
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Path)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting builderos",
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.String("log_level", cfg.Logging.Level))

	loc, err := time.LoadLocation(cfg.UI.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using local", zap.String("timezone", cfg.UI.Timezone))
		loc = time.Local
	}
	format.Configure(cfg.UI.CurrencySymbol, cfg.UI.DateFormat, loc)

	client := api.New(cfg.API.BaseURL, cfg.API.Timeout(), logger)
	loader := views.NewLoader(client, logger)
	workflow := upload.NewWorkflow(client, upload.NewPoller(), logger)

	p := tea.NewProgram(tui.New(ctx, loader, workflow, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"deckview/internal/config"
	"deckview/internal/database"
	"deckview/internal/database/repository"
	"deckview/internal/logging"
	"deckview/internal/service"
	"deckview/internal/tui"
)

func main() {
	deckFlag := flag.String("deck", "", "deck to open (overrides config)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *deckFlag != "" {
		cfg.UI.Deck = *deckFlag
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatalf("seed defaults: %v", err)
	}

	deckRepo := repository.NewDeckRepo(db)
	cardRepo := repository.NewCardRepo(db)

	library := &service.LibraryService{Decks: deckRepo, Cards: cardRepo}
	ingest := &service.IngestService{DB: db}

	logger.Info("starting",
		zap.String("db", cfg.Database.Path),
		zap.String("deck", cfg.UI.Deck),
		zap.Int("cell_width_px", cfg.UI.CellWidthPx),
		zap.Bool("coarse_pointer", cfg.UI.CoarsePointer),
	)

	app := tui.New(cfg, logger, library, ingest)
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", zap.Error(err))
		log.Fatalf("error: %v", err)
	}
}

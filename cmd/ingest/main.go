package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/ingestion"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	filePath := flag.String("file", "data/vgsales.csv", "Relative path to the vgsales CSV")
	initOnly := flag.Bool("init-only", false, "Create the empty games table and view without loading data")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("Unable to load env variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := setup.LoadConfig()

	gate, err := setup.LoadGate()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load gate policy")
	}

	db, err := setup.ConnectDatabase(ctx, cfg, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	pipeline := ingestion.NewPipeline(ingestion.NewParser(), db, gate.Policy().AllowedRelation)

	if *initOnly {
		if err := pipeline.InitSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Schema initialization failed")
		}
		return
	}

	rows, err := pipeline.Ingest(ctx, *filePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	log.Info().Int64("rows", rows).Msg("Database initialized with CSV data")
}

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/audit"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/redis"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/setup"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	group := flag.String("group", "audit-group", "Consumer group name")
	interval := flag.Duration("interval", time.Minute, "How often to log the verdict summary")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := setup.LoadConfig()
	if cfg.RedisAddr == "" || cfg.AuditStream == "" {
		log.Fatal().Msg("REDIS_ADDR and AUDIT_STREAM are required")
	}

	client, err := redis.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisMaxRetries, &logger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer client.Close()

	consumerName, _ := os.Hostname()
	if consumerName == "" {
		consumerName = "audit-consumer"
	}

	stats := audit.NewStats()
	consumer := audit.NewConsumer(client, cfg.AuditStream, *group, consumerName, stats, &logger)

	if err := consumer.Setup(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up consumer group")
	}

	go func() {
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				logSummary(stats.Summary())
			}
		}
	}()

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Audit consumer stopped")
	}

	logSummary(stats.Summary())
}

func logSummary(s audit.Summary) {
	event := log.Info().
		Int("total", s.Total).
		Int("passed", s.Passed).
		Int("rejected", s.Rejected).
		Int("failed", s.Failed).
		Float64("rejection_rate", s.RejectionRate)
	for kw, n := range s.ByKeyword {
		event = event.Int("keyword_"+kw, n)
	}
	event.Msg("Audit summary")
}

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/setup"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	logger := log.Logger

	sql := flag.String("sql", "", "Validate a SQL statement against the gate without executing it")
	question := flag.String("question", "", "Ask a natural-language question and print the answer")
	stdin := flag.Bool("stdin", false, "Read statements from stdin, one per line, and validate each")

	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found")
	}

	switch {
	case *stdin:
		gate := loadGate()
		if err := validateLines(os.Stdin, os.Stdout, gate); err != nil {
			log.Fatal().Err(err).Msg("Failed to read stdin")
		}
	case *sql != "":
		verdict := loadGate().Validate(*sql)
		printJSON(os.Stdout, verdict)
		if !verdict.Passed {
			os.Exit(2)
		}
	case *question != "":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		deps, err := setup.Wire(ctx, setup.LoadConfig(), &logger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to wire dependencies")
		}
		defer deps.Close()

		answer, err := deps.Service.Ask(ctx, *question)
		if err != nil {
			deps.Close()
			log.Fatal().Err(err).Msg("Question failed")
		}
		printJSON(os.Stdout, answer)
	default:
		fmt.Fprintln(os.Stderr, "usage: vgs -sql <statement> | -question <text> | -stdin")
		flag.PrintDefaults()
		os.Exit(1)
	}
}

func loadGate() *sqlgate.Gate {
	gate, err := setup.LoadGate()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load gate policy")
	}
	return gate
}

// validateLines writes one JSON verdict per non-empty input line.
func validateLines(r io.Reader, w io.Writer, gate *sqlgate.Gate) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	encoder := json.NewEncoder(w)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := encoder.Encode(gate.Validate(line)); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func printJSON(w io.Writer, v any) {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode output")
	}
}

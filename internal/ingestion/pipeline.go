package ingestion

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/database"
	"github.com/rs/zerolog/log"
)

// GameStore is implemented by *database.DB.
type GameStore interface {
	ReplaceGames(ctx context.Context, relation string, games []database.Game) (int64, error)
	InitSchema(ctx context.Context, relation string) error
}

type Pipeline struct {
	parser   *Parser
	store    GameStore
	relation string
}

func NewPipeline(parser *Parser, store GameStore, relation string) *Pipeline {
	return &Pipeline{
		parser:   parser,
		store:    store,
		relation: relation,
	}
}

// Ingest loads a vgsales CSV, replacing the games table, and returns the
// number of rows stored.
func (p *Pipeline) Ingest(ctx context.Context, filePath string) (int64, error) {
	log.Info().Str("file", filePath).Msg("Starting ingestion")

	games, err := p.parser.ParseFile(filePath)
	if err != nil {
		return 0, fmt.Errorf("Failed to parse file. Error: %w", err)
	}
	log.Info().Int("rows", len(games)).Msg("CSV parsed")

	copied, err := p.store.ReplaceGames(ctx, p.relation, games)
	if err != nil {
		return 0, fmt.Errorf("failed to store games: %w", err)
	}

	log.Info().
		Int64("rows", copied).
		Str("view", p.relation).
		Msg("Ingestion complete")

	return copied, nil
}

// InitSchema creates the empty table and view without loading data.
func (p *Pipeline) InitSchema(ctx context.Context) error {
	if err := p.store.InitSchema(ctx, p.relation); err != nil {
		return err
	}
	log.Info().Str("view", p.relation).Msg("Schema initialized")
	return nil
}

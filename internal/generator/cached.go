package generator

import (
	"context"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/cache"
	"github.com/rs/zerolog"
)

// SQLGenerator is implemented by Generator and CachedGenerator.
type SQLGenerator interface {
	Generate(ctx context.Context, question string) (Result, error)
}

// CachedGenerator serves repeated questions from the SQL cache. Only parsed
// results with a non-empty SQL are stored.
type CachedGenerator struct {
	next   SQLGenerator
	cache  cache.SQLCache
	logger *zerolog.Logger
}

func NewCachedGenerator(next SQLGenerator, sqlCache cache.SQLCache, logger *zerolog.Logger) *CachedGenerator {
	return &CachedGenerator{
		next:   next,
		cache:  sqlCache,
		logger: logger,
	}
}

func (c *CachedGenerator) Generate(ctx context.Context, question string) (Result, error) {
	if entry, ok := c.cache.Get(ctx, question); ok {
		c.logger.Debug().Str("question", question).Msg("sql cache hit")
		return Result{SQL: entry.SQL, Description: entry.Description}, nil
	}

	result, err := c.next.Generate(ctx, question)
	if err != nil {
		return Result{}, err
	}

	if result.SQL != "" {
		if err := c.cache.Set(ctx, question, cache.Entry{SQL: result.SQL, Description: result.Description}); err != nil {
			c.logger.Warn().Err(err).Msg("failed to cache generated sql")
		}
	}

	return result, nil
}

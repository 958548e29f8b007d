package generator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/llm"
	"github.com/rs/zerolog"
)

var (
	ErrEmptyQuestion = errors.New("question must not be empty")
	ErrGeneration    = errors.New("sql generation failed")
)

// Result is the structured output of the model. SQL is empty when the model
// answered with something that could not be parsed; Description then holds
// the raw output.
type Result struct {
	SQL         string `json:"sql"`
	Description string `json:"desc"`
}

type Generator struct {
	client    llm.LLMClient
	relation  string
	maxTokens int
	logger    *zerolog.Logger
}

func NewGenerator(client llm.LLMClient, relation string, logger *zerolog.Logger) *Generator {
	return &Generator{
		client:    client,
		relation:  relation,
		maxTokens: 512,
		logger:    logger,
	}
}

// Generate asks the model to translate question into SQL. The returned SQL is
// untrusted and must go through the gate before it is executed.
func (g *Generator) Generate(ctx context.Context, question string) (Result, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return Result{}, ErrEmptyQuestion
	}

	response, err := g.client.InvokeModelWithRetry(ctx, llm.LLMRequest{
		System:      buildSystemPrompt(g.relation),
		Prompt:      buildUserPrompt(question),
		MaxTokens:   g.maxTokens,
		Temperature: 0.0,
		JSONOutput:  true,
	})
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	raw := strings.TrimSpace(response.Content)
	g.logger.Debug().
		Str("model", g.client.ModelName()).
		Str("raw_output", raw).
		Msg("model output")

	return g.parseResponse(raw), nil
}

func (g *Generator) parseResponse(raw string) Result {
	if result, ok := decodeResult(raw); ok {
		return result
	}

	g.logger.Warn().Msg("model output is not strict JSON, stripping markdown fences")
	if result, ok := decodeResult(stripFences(raw)); ok {
		return result
	}

	g.logger.Error().Msg("unable to parse model output, returning raw text")
	return Result{SQL: "", Description: raw}
}

func decodeResult(s string) (Result, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(s), &fields); err != nil {
		return Result{}, false
	}

	sql, _ := fields["sql"].(string)
	desc, _ := fields["desc"].(string)
	return Result{SQL: strings.TrimSpace(sql), Description: desc}, true
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

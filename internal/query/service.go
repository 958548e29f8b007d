package query

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/audit"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/database"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/generator"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/reqid"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
	"github.com/rs/zerolog"
)

const (
	topSellersCount = 10
	pingTimeout     = 2 * time.Second
)

//go:generate mockgen -source=service.go -destination=mocks/service_mock.go -package=mocks

// SQLGenerator turns a question into candidate SQL.
type SQLGenerator interface {
	Generate(ctx context.Context, question string) (generator.Result, error)
}

// Executor runs admitted statements. *database.DB implements it.
type Executor interface {
	Run(ctx context.Context, sql string) (*database.QueryResult, error)
	TopSellers(ctx context.Context, relation string, n int) ([]database.TopSeller, error)
	Ping(ctx context.Context) error
}

type Service struct {
	gate      *sqlgate.Gate
	generator SQLGenerator
	executor  Executor
	recorder  audit.Recorder
	logger    *zerolog.Logger
	requestID func() string
}

// NewService builds the question pipeline. executor may be nil, in which
// case the service runs without a database.
func NewService(
	gate *sqlgate.Gate,
	generator SQLGenerator,
	executor Executor,
	recorder audit.Recorder,
	logger *zerolog.Logger,
) *Service {
	return &Service{
		gate:      gate,
		generator: generator,
		executor:  executor,
		recorder:  recorder,
		logger:    logger,
		requestID: reqid.New,
	}
}

// requestIDFor reuses the id attached by the HTTP layer when there is one.
func (s *Service) requestIDFor(ctx context.Context) string {
	if id, ok := reqid.FromContext(ctx); ok {
		return id
	}
	return s.requestID()
}

// Ask generates SQL for question, gates it and executes the admitted form.
// A gate rejection is returned as *RejectedError.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, generator.ErrEmptyQuestion
	}

	reqID := s.requestIDFor(ctx)
	start := time.Now()
	logger := s.logger.With().Str("req_id", reqID).Logger()

	logger.Info().Str("stage", "request").Str("question", question).Msg("question received")

	result, err := s.generator.Generate(ctx, question)
	if err != nil {
		logger.Error().Err(err).Str("stage", "error").Msg("sql generation failed")
		s.recorder.Record(ctx, audit.Entry{
			RequestID: reqID,
			Question:  question,
			Error:     err.Error(),
			Elapsed:   time.Since(start),
			CreatedAt: time.Now().UTC(),
		})
		return nil, err
	}

	generated := strings.TrimSpace(result.SQL)
	logger.Info().Str("stage", "generation").Str("sql", generated).Msg("sql generated")

	verdict := s.gate.Validate(generated)
	entry := audit.NewEntry(reqID, question, generated, verdict)

	if !verdict.Passed {
		logger.Warn().
			Str("stage", "blocked").
			Stringer("tag", verdict.Tag).
			Str("reason", verdict.Reason()).
			Msg("sql rejected")
		entry.Elapsed = time.Since(start)
		s.recorder.Record(ctx, entry)
		return nil, &RejectedError{RequestID: reqID, Description: result.Description, Verdict: verdict}
	}

	logger.Info().Str("stage", "security").Stringer("tag", verdict.Tag).Msg("sql passed validation")

	if s.executor == nil {
		entry.Error = ErrDatabaseNotConfigured.Error()
		entry.Elapsed = time.Since(start)
		s.recorder.Record(ctx, entry)
		return nil, ErrDatabaseNotConfigured
	}

	rows, err := s.executor.Run(ctx, verdict.SQL)
	elapsed := time.Since(start)
	entry.Elapsed = elapsed
	if err != nil {
		logger.Error().Err(err).Str("stage", "error").Msg("sql execution failed")
		entry.Error = err.Error()
		s.recorder.Record(ctx, entry)
		return nil, fmt.Errorf("%w: %w", ErrExecution, err)
	}

	entry.Rows = len(rows.Rows)
	s.recorder.Record(ctx, entry)

	logger.Info().
		Str("stage", "execution").
		Int("rows", len(rows.Rows)).
		Dur("elapsed", elapsed).
		Msg("sql executed")

	return &Answer{
		Columns:     rows.Columns,
		Data:        rows.Rows,
		SQL:         verdict.SQL,
		Elapsed:     math.Round(elapsed.Seconds()*1000) / 1000,
		RequestID:   reqID,
		Description: result.Description,
	}, nil
}

// Validate runs sql through the gate without executing it. The verdict is
// audited like one produced by Ask.
func (s *Service) Validate(ctx context.Context, sql string) sqlgate.Verdict {
	verdict := s.gate.Validate(sql)
	s.recorder.Record(ctx, audit.NewEntry(s.requestIDFor(ctx), "", sql, verdict))
	return verdict
}

// TopSellers returns the best selling games, or placeholder rows when no
// database is configured.
func (s *Service) TopSellers(ctx context.Context) ([]database.TopSeller, error) {
	if s.executor == nil {
		zero := 0.0
		return []database.TopSeller{
			{Name: "Demo Game", GlobalSales: &zero},
			{Name: "Placeholder", GlobalSales: &zero},
		}, nil
	}

	sellers, err := s.executor.TopSellers(ctx, s.gate.Policy().AllowedRelation, topSellersCount)
	if err != nil {
		s.logger.Error().Err(err).Msg("top sellers query failed")
		return nil, fmt.Errorf("%w: %w", ErrExecution, err)
	}
	return sellers, nil
}

// Health reports database reachability. It never returns an error: a failed
// ping is reported in the DB field.
func (s *Service) Health(ctx context.Context) HealthStatus {
	if s.executor == nil {
		return HealthStatus{Status: "ok", DB: DBNotConfigured}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := s.executor.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("database ping failed")
		return HealthStatus{Status: "ok", DB: "error: " + err.Error()}
	}
	return HealthStatus{Status: "ok", DB: DBConnected}
}

func (s *Service) Policy() sqlgate.Policy {
	return s.gate.Policy()
}

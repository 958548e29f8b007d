package query

import (
	"errors"

	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
)

var (
	ErrDatabaseNotConfigured = errors.New("database is not configured")
	ErrExecution             = errors.New("query execution failed")
)

// Answer is the response to a natural-language question.
type Answer struct {
	Columns     []string `json:"columns"`
	Data        [][]any  `json:"data"`
	SQL         string   `json:"sql"`
	Elapsed     float64  `json:"elapsed"`
	RequestID   string   `json:"req_id"`
	Description string   `json:"desc"`
}

type HealthStatus struct {
	Status string `json:"status"`
	DB     string `json:"db"`
}

const (
	DBNotConfigured = "not_configured"
	DBConnected     = "connected"
)

// RejectedError is returned by Ask when the generated SQL fails the gate.
type RejectedError struct {
	RequestID   string
	Description string
	Verdict     sqlgate.Verdict
}

func (e *RejectedError) Error() string {
	return e.Verdict.Reason()
}

func (e *RejectedError) Unwrap() error {
	return e.Verdict.Err()
}

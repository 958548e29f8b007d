package api

import (
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
)

const maxQuestionLength = 1000

type ValidateRequest struct {
	SQL string `json:"sql"`
}

// RejectionResponse is returned with 400 when generated SQL fails the gate.
type RejectionResponse struct {
	Error       string      `json:"error"`
	Code        int         `json:"code"`
	Tag         sqlgate.Tag `json:"tag"`
	Keyword     string      `json:"keyword,omitempty"`
	RequestID   string      `json:"req_id"`
	Description string      `json:"desc,omitempty"`
}

type CacheClearResponse struct {
	Deleted int `json:"deleted"`
}

package mcpadapter

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/query"
	"github.com/povarna/generative-ai-agents/vgs-agent/internal/sqlgate"
)

// ValidateInput is the MCP tool input schema for validate_sql.
type ValidateInput struct {
	SQL string `json:"sql" jsonschema:"SQL statement to check against the gate; it is never executed"`
}

// AskInput is the MCP tool input schema for ask_question.
type AskInput struct {
	Question string `json:"question" jsonschema:"natural-language question about video game sales"`
}

// AskOutput carries either the answer or the gate verdict that blocked it.
type AskOutput struct {
	Passed    bool             `json:"passed"`
	RequestID string           `json:"req_id"`
	Answer    *query.Answer    `json:"answer,omitempty"`
	Rejection *sqlgate.Verdict `json:"rejection,omitempty"`
}

// NewValidateHandler returns a tool handler that runs SQL through the gate.
// Pass the returned function to mcp.AddTool.
func NewValidateHandler(service *query.Service) func(context.Context, *mcp.CallToolRequest, ValidateInput) (*mcp.CallToolResult, sqlgate.Verdict, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ValidateInput) (*mcp.CallToolResult, sqlgate.Verdict, error) {
		return nil, service.Validate(ctx, input.SQL), nil
	}
}

// NewAskHandler returns a tool handler for the full question pipeline.
// Pass the returned function to mcp.AddTool.
func NewAskHandler(service *query.Service) func(context.Context, *mcp.CallToolRequest, AskInput) (*mcp.CallToolResult, AskOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AskInput) (*mcp.CallToolResult, AskOutput, error) {
		return Ask(ctx, service, input)
	}
}

// Ask answers the question. A gate rejection is a successful tool call
// with Passed=false; any other failure is returned as a tool error.
func Ask(ctx context.Context, service *query.Service, input AskInput) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := service.Ask(ctx, input.Question)
	if err != nil {
		var rejected *query.RejectedError
		if errors.As(err, &rejected) {
			verdict := rejected.Verdict
			return nil, AskOutput{Passed: false, RequestID: rejected.RequestID, Rejection: &verdict}, nil
		}
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{Passed: true, RequestID: answer.RequestID, Answer: answer}, nil
}

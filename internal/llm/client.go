package llm

import (
	"context"
)

// LLMClient invokes a text generation model. Both the Bedrock and the OpenAI
// providers implement it, and tests substitute the generated mock.
//
//go:generate mockgen -source=client.go -destination=mocks/client_mock.go -package=mocks
type LLMClient interface {
	InvokeModel(ctx context.Context, request LLMRequest) (*LLMResponse, error)
	InvokeModelWithRetry(ctx context.Context, request LLMRequest) (*LLMResponse, error)
	ModelName() string
}

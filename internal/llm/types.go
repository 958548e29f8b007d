package llm

// LLMRequest is a single-turn completion request. System is optional and is
// sent as the provider's system instruction when set. JSONOutput asks the
// provider to constrain the reply to a single JSON object.
type LLMRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
	JSONOutput  bool
}

type LLMResponse struct {
	Content    string
	StopReason string
}

const (
	ProviderBedrock = "bedrock"
	ProviderOpenAI  = "openai"
)

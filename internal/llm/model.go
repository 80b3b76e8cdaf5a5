package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/artemis-io/agent/internal/models"
)

// Model is the decision function of the agent loop: given the request and
// what happened so far, pick a tool or answer.
type Model interface {
	GetModelName() string
	Decide(ctx context.Context, req *Request) (*Decision, error)
}

type Request struct {
	Utterance string
	Tools     []models.ToolDescriptor
	Steps     []models.AgentStep
}

// Decision is either a tool invocation or a final answer.
type Decision struct {
	Tool   string
	Input  string
	Answer string
	Final  bool

	// Raw model output, replayed to the model on the next step
	Raw string
}

func NewToolDecision(tool, input, raw string) *Decision {
	return &Decision{Tool: tool, Input: input, Raw: raw}
}

func NewFinalDecision(answer, raw string) *Decision {
	return &Decision{Answer: answer, Final: true, Raw: raw}
}

// NewModel builds the configured provider.
func NewModel(ctx context.Context, config *models.LargeLanguageModelConfig) (Model, error) {

	if config == nil {
		return nil, fmt.Errorf("%w: llm config is nil", models.ErrMissingConfiguration)
	}

	if len(config.APIKey) == 0 {
		return nil, fmt.Errorf("%w: llm api key", models.ErrMissingConfiguration)
	}

	switch models.LargeLanguageModelProvider(strings.ToLower(string(config.Provider))) {
	case models.LargeLanguageModelProviderOpenAI, "":
		return NewOpenAIModel(config)
	case models.LargeLanguageModelProviderGemini:
		return NewGeminiModel(ctx, config)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", config.Provider)
	}
}

func findDescriptor(tools []models.ToolDescriptor, name string) (models.ToolDescriptor, bool) {
	for _, tool := range tools {
		if tool.Matches(name) {
			return tool, true
		}
	}
	return models.ToolDescriptor{}, false
}

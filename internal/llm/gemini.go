package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/artemis-io/agent/internal/models"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// inputParameter is the single string argument every tool accepts.
const inputParameter = "input"

// ContentGenerator is the part of the genai client the model needs.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// GeminiModel uses native function calling instead of the text protocol.
type GeminiModel struct {
	config    *models.LargeLanguageModelConfig
	generator ContentGenerator
}

func NewGeminiModel(ctx context.Context, config *models.LargeLanguageModelConfig) (*GeminiModel, error) {

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})

	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return NewGeminiModelWithGenerator(config, client.Models), nil
}

func NewGeminiModelWithGenerator(config *models.LargeLanguageModelConfig, generator ContentGenerator) *GeminiModel {
	return &GeminiModel{
		config:    config,
		generator: generator,
	}
}

func (m *GeminiModel) GetModelName() string {
	if len(m.config.Model) == 0 || strings.HasPrefix(m.config.Model, "llama") {
		return DefaultGeminiModel
	}
	return m.config.Model
}

func (m *GeminiModel) Decide(ctx context.Context, req *Request) (*Decision, error) {

	temperature := m.config.Temperature

	response, err := m.generator.GenerateContent(
		ctx,
		m.GetModelName(),
		buildGeminiContents(req),
		&genai.GenerateContentConfig{
			Tools: getToolchain(req.Tools),
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{
					{Text: AssistantPrompt},
				},
				Role: string(genai.RoleModel),
			},
			ToolConfig: &genai.ToolConfig{
				FunctionCallingConfig: &genai.FunctionCallingConfig{
					Mode: genai.FunctionCallingConfigModeAuto,
				},
			},
			Temperature: &temperature,
		},
	)

	if err != nil {
		logrus.WithError(err).Error("failed to generate content")
		return nil, fmt.Errorf("generate content: %w", err)
	}

	return extractDecision(req.Tools, response)
}

func getToolchain(tools []models.ToolDescriptor) []*genai.Tool {

	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))

	for _, tool := range tools {
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        tool.Identifier,
			Description: tool.Description,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					inputParameter: {
						Type:        genai.TypeString,
						Description: "The tool input, using the format from the tool description",
					},
				},
			},
		})
	}

	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

// buildGeminiContents replays previous steps as function call and
// response pairs.
func buildGeminiContents(req *Request) []*genai.Content {

	contents := []*genai.Content{
		newTextContent(req.Utterance),
	}

	for _, step := range req.Steps {

		if step.Malformed || len(step.Tool) == 0 {
			contents = append(contents, newTextContent(
				fmt.Sprintf("%s %s", observationMarker, step.Output)))
			continue
		}

		name := step.Tool
		if descriptor, ok := findDescriptor(req.Tools, step.Tool); ok {
			name = descriptor.Identifier
		}

		contents = append(contents,
			&genai.Content{
				Role: string(genai.RoleModel),
				Parts: []*genai.Part{{
					FunctionCall: &genai.FunctionCall{
						Name: name,
						Args: map[string]any{inputParameter: step.Input},
					},
				}},
			},
			&genai.Content{
				Role: string(genai.RoleUser),
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						Name:     name,
						Response: map[string]any{"output": step.Output},
					},
				}},
			},
		)
	}

	return contents
}

func newTextContent(text string) *genai.Content {
	return &genai.Content{
		Role:  string(genai.RoleUser),
		Parts: []*genai.Part{{Text: text}},
	}
}

func extractDecision(tools []models.ToolDescriptor, response *genai.GenerateContentResponse) (*Decision, error) {

	if response == nil || len(response.Candidates) == 0 {
		return nil, models.NewMalformedOutputError("no candidates returned", "")
	}

	candidate := response.Candidates[0]

	if candidate.Content == nil {
		return nil, models.NewMalformedOutputError(
			fmt.Sprintf("empty candidate (finish reason %s)", candidate.FinishReason), "")
	}

	var text []string

	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		if part.FunctionCall != nil {
			input := ""
			if value, ok := part.FunctionCall.Args[inputParameter]; ok && value != nil {
				input = fmt.Sprint(value)
			}
			name := part.FunctionCall.Name
			if descriptor, ok := findDescriptor(tools, name); ok {
				name = descriptor.Name
			}
			raw := fmt.Sprintf("Action: %s\nAction Input: %s", name, input)
			return NewToolDecision(name, strings.TrimSpace(input), raw), nil
		}
		if len(part.Text) > 0 && !part.Thought {
			text = append(text, part.Text)
		}
	}

	answer := strings.TrimSpace(strings.Join(text, ""))

	if len(answer) == 0 {
		return nil, models.NewMalformedOutputError("no function call or text returned", "")
	}

	return NewFinalDecision(answer, answer), nil
}

package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/artemis-io/agent/internal/models"
)

const (
	DefaultOpenAIBaseURL = "https://api.groq.com/openai/v1"
	DefaultOpenAIModel   = "llama3-8b-8192"
)

// OpenAIModel drives any OpenAI compatible chat completions endpoint
// (Groq by default) with the ReAct text protocol.
type OpenAIModel struct {
	config *models.LargeLanguageModelConfig
	client *resty.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	Stop        []string      `json:"stop,omitempty"`
}

func NewOpenAIModel(config *models.LargeLanguageModelConfig) (*OpenAIModel, error) {

	if len(config.APIKey) == 0 {
		return nil, fmt.Errorf("%w: llm api key", models.ErrMissingConfiguration)
	}

	baseURL := config.BaseURL
	if len(baseURL) == 0 {
		baseURL = DefaultOpenAIBaseURL
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetAuthToken(config.APIKey).
		SetHeader("Content-Type", "application/json")

	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	return &OpenAIModel{
		config: config,
		client: client,
	}, nil
}

func (m *OpenAIModel) GetModelName() string {
	if len(m.config.Model) == 0 {
		return DefaultOpenAIModel
	}
	return m.config.Model
}

func (m *OpenAIModel) Decide(ctx context.Context, req *Request) (*Decision, error) {

	res, err := m.client.R().
		SetContext(ctx).
		SetBody(&chatRequest{
			Model: m.GetModelName(),
			Messages: []chatMessage{
				{Role: "system", Content: BuildReActSystemPrompt(req.Tools)},
				{Role: "user", Content: BuildReActScratchpad(req)},
			},
			Temperature: m.config.Temperature,
			Stop:        []string{"\n" + observationMarker},
		}).
		Post("/chat/completions")

	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}

	if !res.IsSuccess() {
		logrus.WithFields(logrus.Fields{
			"model":  m.GetModelName(),
			"status": res.StatusCode(),
		}).Error("Chat completion failed")
		return nil, fmt.Errorf("chat completion failed with status %d: %s", res.StatusCode(), res.String())
	}

	content := gjson.GetBytes(res.Body(), "choices.0.message.content").String()

	logrus.WithFields(logrus.Fields{
		"model":  m.GetModelName(),
		"tokens": gjson.GetBytes(res.Body(), "usage.total_tokens").Int(),
	}).Debugf("Model output: %s", content)

	return ParseReAct(content)
}

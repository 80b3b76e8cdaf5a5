package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"github.com/artemis-io/agent/internal/models"
)

const (
	DefaultBaseURL = "https://api.notion.com"
	DefaultVersion = "2022-06-28"
)

// Config is the explicit client configuration. Nothing is read from the
// process environment here.
type Config = models.NotionConfig

// Client talks to a single Notion database holding the planner tasks.
type Client struct {
	config *Config
	client *resty.Client
}

func NewClient(config *Config) (*Client, error) {

	if config == nil {
		return nil, fmt.Errorf("%w: notion config is nil", models.ErrMissingConfiguration)
	}

	var missing []string
	if len(config.APIKey) == 0 {
		missing = append(missing, "notion api key")
	}
	if len(config.DatabaseID) == 0 {
		missing = append(missing, "notion database id")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	baseURL := config.BaseURL
	if len(baseURL) == 0 {
		baseURL = DefaultBaseURL
	}

	version := config.Version
	if len(version) == 0 {
		version = DefaultVersion
	}

	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetAuthToken(config.APIKey).
		SetHeader("Notion-Version", version).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if config.Timeout > 0 {
		client.SetTimeout(config.Timeout)
	}

	return &Client{
		config: config,
		client: client,
	}, nil
}

func (c *Client) GetDatabaseID() string {
	return c.config.DatabaseID
}

// send executes one request and converts transport failures and non-2xx
// answers into errors wrapping models.ErrRemoteUnavailable.
func (c *Client) send(
	ctx context.Context,
	operation string,
	method string,
	path string,
	body any,
) (*resty.Response, error) {

	req := c.client.R().SetContext(ctx)

	if body != nil {
		req.SetBody(body)
	}

	res, err := req.Execute(method, path)

	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s: %w", operation, err)
		}
		logrus.WithFields(logrus.Fields{
			"operation": operation,
			"path":      path,
		}).WithError(err).Error("Failed to reach Notion")
		return nil, fmt.Errorf("%s: %w: %w", operation, models.ErrRemoteUnavailable, err)
	}

	logrus.WithFields(logrus.Fields{
		"operation": operation,
		"method":    method,
		"status":    res.StatusCode(),
		"duration":  res.Time(),
	}).Debug("Notion request completed")

	if !res.IsSuccess() {
		return nil, &models.RemoteError{
			Operation:  operation,
			StatusCode: res.StatusCode(),
			Body:       res.String(),
		}
	}

	return res, nil
}

func (c *Client) post(ctx context.Context, operation string, path string, body any) (*resty.Response, error) {
	return c.send(ctx, operation, http.MethodPost, path, body)
}

func (c *Client) patch(ctx context.Context, operation string, path string, body any) (*resty.Response, error) {
	return c.send(ctx, operation, http.MethodPatch, path, body)
}

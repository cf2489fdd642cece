package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIConfig holds construction parameters for OpenAIClient
type OpenAIConfig struct {
	APIKey            string
	Model             string
	BaseURL           string // any OpenAI-compatible server (Groq, Ollama, llama.cpp)
	Timeout           time.Duration
	RequestsPerMinute float64
	HTTPClient        *http.Client
}

// OpenAIClient asks an OpenAI-compatible chat completions endpoint for
// strict json_schema output
type OpenAIClient struct {
	client      openai.Client
	model       string
	timeout     time.Duration
	rateLimiter *RateLimiter
	logger      *zap.Logger
}

// NewOpenAIClient creates a client. The SDK's own retries are disabled: a
// failed lookup is reported, never silently repeated.
func NewOpenAIClient(cfg OpenAIConfig, logger *zap.Logger) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultOpenAIModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}

	logger.Info("openai client initialized",
		zap.String("model", model),
		zap.String("base_url", cfg.BaseURL),
		zap.Float64("rpm", cfg.RequestsPerMinute),
	)

	return &OpenAIClient{
		client:      openai.NewClient(opts...),
		model:       model,
		timeout:     cfg.Timeout,
		rateLimiter: NewRateLimiter(cfg.RequestsPerMinute),
		logger:      logger,
	}, nil
}

func responseFormat(shape Shape) openai.ChatCompletionNewParamsResponseFormatUnion {
	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        shape.String(),
		Description: openai.String("car catalog record with market price, license class and DIY fixes"),
		Schema:      jsonSchemaFor(shape),
		Strict:      openai.Bool(true),
	}
	return openai.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: schemaParam,
		},
	}
}

// Generate sends the prompt and returns the JSON text. List answers are
// unwrapped from their {"cars": [...]} envelope.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	startTime := time.Now()
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Model:          shared.ChatModel(c.model),
		ResponseFormat: responseFormat(req.Shape),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	content := completion.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("openai returned an empty response")
	}

	c.logger.Debug("openai request completed",
		zap.String("shape", req.Shape.String()),
		zap.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		zap.Int64("total_tokens", completion.Usage.TotalTokens),
	)

	if req.Shape == ShapeCarList {
		return unwrapCarList(content)
	}
	return content, nil
}

// unwrapCarList extracts the array from {"cars": [...]}. A bare array is
// passed through for servers that ignore the envelope.
func unwrapCarList(content string) (string, error) {
	if !gjson.Valid(content) {
		return "", fmt.Errorf("parse openai list envelope: invalid json")
	}

	parsed := gjson.Parse(content)
	if parsed.IsArray() {
		return parsed.Raw, nil
	}

	cars := parsed.Get("cars")
	if !cars.Exists() || !cars.IsArray() {
		return "", fmt.Errorf("openai list envelope has no cars array")
	}
	return cars.Raw, nil
}

// Name identifies provider and model
func (c *OpenAIClient) Name() string {
	return "openai:" + c.model
}

// Close releases the rate limiter
func (c *OpenAIClient) Close() error {
	c.rateLimiter.Stop()
	return nil
}

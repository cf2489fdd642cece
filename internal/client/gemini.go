package client

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-3-flash-preview"

// GeminiConfig holds construction parameters for GeminiClient
type GeminiConfig struct {
	APIKey            string
	Model             string
	BaseURL           string // empty uses the public endpoint
	Timeout           time.Duration
	RequestsPerMinute float64
	HTTPClient        *http.Client
}

// GeminiClient asks Google Gemini for schema-constrained JSON
type GeminiClient struct {
	client      *genai.Client
	model       string
	timeout     time.Duration
	rateLimiter *RateLimiter
	logger      *zap.Logger
}

// NewGeminiClient creates a Gemini client. The API key is required and is
// bound to this client only.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultGeminiModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: strings.TrimRight(cfg.BaseURL, "/") + "/"}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger.Info("gemini client initialized",
		zap.String("model", model),
		zap.Float64("rpm", cfg.RequestsPerMinute),
	)

	return &GeminiClient{
		client:      client,
		model:       model,
		timeout:     cfg.Timeout,
		rateLimiter: NewRateLimiter(cfg.RequestsPerMinute),
		logger:      logger,
	}, nil
}

// Generate sends the prompt with a JSON response schema matching req.Shape
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait failed: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	startTime := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   genaiSchemaFor(req.Shape),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}

	fields := []zap.Field{
		zap.String("shape", req.Shape.String()),
		zap.Int64("latency_ms", time.Since(startTime).Milliseconds()),
	}
	if resp.UsageMetadata != nil {
		fields = append(fields, zap.Int32("total_tokens", resp.UsageMetadata.TotalTokenCount))
	}
	c.logger.Debug("gemini request completed", fields...)

	return text, nil
}

// Name identifies provider and model
func (c *GeminiClient) Name() string {
	return "gemini:" + c.model
}

// Close releases the rate limiter
func (c *GeminiClient) Close() error {
	c.rateLimiter.Stop()
	return nil
}

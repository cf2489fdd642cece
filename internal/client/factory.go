package client

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"autosphere-api/internal/config"
)

// New builds the oracle selected by cfg.Provider
func New(ctx context.Context, cfg config.OracleConfig, logger *zap.Logger) (Oracle, error) {
	switch cfg.Provider {
	case "", "gemini":
		c, err := NewGeminiClient(ctx, GeminiConfig{
			APIKey:            cfg.APIKey,
			Model:             cfg.Model,
			BaseURL:           cfg.BaseURL,
			Timeout:           cfg.Timeout,
			RequestsPerMinute: cfg.RPM,
		}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "openai":
		c, err := NewOpenAIClient(OpenAIConfig{
			APIKey:            cfg.APIKey,
			Model:             cfg.Model,
			BaseURL:           cfg.BaseURL,
			Timeout:           cfg.Timeout,
			RequestsPerMinute: cfg.RPM,
		}, logger)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown oracle provider %q", cfg.Provider)
	}
}

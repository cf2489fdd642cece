package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"autosphere-api/internal/config"
)

func TestNew(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("gemini is the default", func(t *testing.T) {
		o, err := New(context.Background(), config.OracleConfig{APIKey: "k"}, logger)
		require.NoError(t, err)
		defer o.Close()
		assert.IsType(t, &GeminiClient{}, o)
	})

	t.Run("openai", func(t *testing.T) {
		o, err := New(context.Background(), config.OracleConfig{Provider: "openai", APIKey: "k", Model: "llama3.1"}, logger)
		require.NoError(t, err)
		defer o.Close()
		assert.Equal(t, "openai:llama3.1", o.Name())
	})

	t.Run("missing key", func(t *testing.T) {
		o, err := New(context.Background(), config.OracleConfig{Provider: "openai"}, logger)
		assert.Error(t, err)
		assert.Nil(t, o)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(context.Background(), config.OracleConfig{Provider: "palm", APIKey: "k"}, logger)
		assert.ErrorContains(t, err, "unknown oracle provider")
	})
}

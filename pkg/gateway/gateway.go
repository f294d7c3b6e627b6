package gateway

import (
	"context"
	"errors"
	"time"

	"ai-rooms-be/internal/pkg/logger"
	"ai-rooms-be/pkg/embedding"
	"ai-rooms-be/pkg/llm"

	backoff "github.com/cenkalti/backoff/v5"
)

// ErrNotConfigured is returned when no model credentials were provided.
var ErrNotConfigured = errors.New("model gateway is not configured")

// Gateway is the single chokepoint for every model call the pipeline makes.
// All calls retry transient provider failures with exponential backoff and
// jitter; anything else surfaces immediately.
type Gateway interface {
	Configured() bool
	Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error)
	Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error)
	StartConversation(ctx context.Context, cfg llm.ConversationConfig) (llm.Conversation, error)
	Embed(ctx context.Context, text, taskType string) ([]float32, error)
}

type ModelGateway struct {
	provider   llm.LLMProvider
	embedder   embedding.EmbeddingProvider
	configured bool
	maxTries   uint
	logger     logger.ILogger
}

func NewModelGateway(provider llm.LLMProvider, embedder embedding.EmbeddingProvider, configured bool, maxRetries int, log logger.ILogger) Gateway {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &ModelGateway{
		provider:   provider,
		embedder:   embedder,
		configured: configured,
		maxTries:   uint(maxRetries),
		logger:     log,
	}
}

func (g *ModelGateway) Configured() bool {
	return g.configured
}

// retryCall runs op until it succeeds, fails permanently, or exhausts the
// retry budget. Only transient API errors are retried.
func retryCall[T any](ctx context.Context, g *ModelGateway, label string, op func() (T, error)) (T, error) {
	attempt := 0
	wrapped := func() (T, error) {
		attempt++
		v, err := op()
		if err != nil {
			var apiErr *llm.APIError
			if errors.As(err, &apiErr) && apiErr.Transient() {
				g.logger.Warn("Gateway", "Transient model failure, will retry", map[string]interface{}{
					"call":    label,
					"attempt": attempt,
					"status":  apiErr.StatusCode,
				})
				return v, err
			}
			return v, backoff.Permanent(err)
		}
		return v, nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 500 * time.Millisecond
	expo.MaxInterval = 10 * time.Second

	return backoff.Retry(ctx, wrapped,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(g.maxTries),
	)
}

func (g *ModelGateway) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	if !g.configured {
		return "", ErrNotConfigured
	}
	return retryCall(ctx, g, "generate", func() (string, error) {
		return g.provider.Generate(ctx, prompt, opts...)
	})
}

func (g *ModelGateway) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if !g.configured {
		return "", ErrNotConfigured
	}
	return retryCall(ctx, g, "chat", func() (string, error) {
		return g.provider.Chat(ctx, history, opts...)
	})
}

func (g *ModelGateway) StartConversation(ctx context.Context, cfg llm.ConversationConfig) (llm.Conversation, error) {
	if !g.configured {
		return nil, ErrNotConfigured
	}
	inner, err := g.provider.StartConversation(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &retryingConversation{inner: inner, gateway: g}, nil
}

func (g *ModelGateway) Embed(ctx context.Context, text, taskType string) ([]float32, error) {
	if !g.configured {
		return nil, ErrNotConfigured
	}
	res, err := retryCall(ctx, g, "embed", func() (*embedding.EmbeddingResponse, error) {
		return g.embedder.Generate(ctx, text, taskType)
	})
	if err != nil {
		return nil, err
	}
	return res.Embedding.Values, nil
}

// retryingConversation retries each model exchange. The tool work between
// exchanges happens outside and is never replayed.
type retryingConversation struct {
	inner   llm.Conversation
	gateway *ModelGateway
}

func (c *retryingConversation) Send(ctx context.Context, text string) (*llm.Turn, error) {
	return retryCall(ctx, c.gateway, "conversation.send", func() (*llm.Turn, error) {
		return c.inner.Send(ctx, text)
	})
}

func (c *retryingConversation) SendToolResult(ctx context.Context, name string, result map[string]interface{}) (*llm.Turn, error) {
	return retryCall(ctx, c.gateway, "conversation.tool_result", func() (*llm.Turn, error) {
		return c.inner.SendToolResult(ctx, name, result)
	})
}

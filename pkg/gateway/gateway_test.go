package gateway

import (
	"context"
	"errors"
	"testing"

	"ai-rooms-be/pkg/embedding"
	"ai-rooms-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type scriptedProvider struct {
	calls int
	errs  []error // error returned per call; nil means success
}

func (p *scriptedProvider) step() error {
	var err error
	if p.calls < len(p.errs) {
		err = p.errs[p.calls]
	}
	p.calls++
	return err
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if err := p.step(); err != nil {
		return "", err
	}
	return "ok", nil
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	if err := p.step(); err != nil {
		return "", err
	}
	return "ok", nil
}

func (p *scriptedProvider) StartConversation(ctx context.Context, cfg llm.ConversationConfig) (llm.Conversation, error) {
	return nil, errors.New("not used")
}

type staticEmbedder struct {
	calls   int
	err     error
	lastCtx context.Context
}

func (e *staticEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	e.calls++
	e.lastCtx = ctx
	if e.err != nil {
		return nil, e.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2}},
	}, nil
}

func TestGenerateRetriesTransientErrors(t *testing.T) {
	transient := &llm.APIError{StatusCode: 503, Message: "overloaded"}
	provider := &scriptedProvider{errs: []error{transient, transient, nil}}
	gw := NewModelGateway(provider, &staticEmbedder{}, true, 3, nopLogger{})

	got, err := gw.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if got != "ok" {
		t.Errorf("unexpected response %q", got)
	}
	if provider.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", provider.calls)
	}
}

func TestGenerateDoesNotRetryPermanentErrors(t *testing.T) {
	permanent := &llm.APIError{StatusCode: 400, Status: "INVALID_ARGUMENT", Message: "bad request"}
	provider := &scriptedProvider{errs: []error{permanent, nil}}
	gw := NewModelGateway(provider, &staticEmbedder{}, true, 3, nopLogger{})

	_, err := gw.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if provider.calls != 1 {
		t.Errorf("permanent errors must not be retried, got %d attempts", provider.calls)
	}
}

func TestGenerateGivesUpAfterMaxTries(t *testing.T) {
	transient := &llm.APIError{StatusCode: 429}
	provider := &scriptedProvider{errs: []error{transient, transient, transient, transient}}
	gw := NewModelGateway(provider, &staticEmbedder{}, true, 3, nopLogger{})

	_, err := gw.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error after budget exhausted")
	}
	if provider.calls != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", provider.calls)
	}
}

func TestUnconfiguredGatewayRefusesCalls(t *testing.T) {
	provider := &scriptedProvider{}
	gw := NewModelGateway(provider, &staticEmbedder{}, false, 3, nopLogger{})

	if gw.Configured() {
		t.Error("gateway should report unconfigured")
	}
	if _, err := gw.Generate(context.Background(), "x"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Generate error = %v, want ErrNotConfigured", err)
	}
	if _, err := gw.Chat(context.Background(), nil); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Chat error = %v, want ErrNotConfigured", err)
	}
	if _, err := gw.Embed(context.Background(), "x", "RETRIEVAL_QUERY"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Embed error = %v, want ErrNotConfigured", err)
	}
	if provider.calls != 0 {
		t.Errorf("provider must not be called when unconfigured, got %d calls", provider.calls)
	}
}

func TestEmbedReturnsVector(t *testing.T) {
	embedder := &staticEmbedder{}
	gw := NewModelGateway(&scriptedProvider{}, embedder, true, 3, nopLogger{})

	vec, err := gw.Embed(context.Background(), "some text", "RETRIEVAL_DOCUMENT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vec) != 2 {
		t.Errorf("unexpected vector %v", vec)
	}
	if embedder.calls != 1 {
		t.Errorf("expected 1 embedder call, got %d", embedder.calls)
	}
}

func TestEmbedPropagatesContext(t *testing.T) {
	embedder := &staticEmbedder{}
	gw := NewModelGateway(&scriptedProvider{}, embedder, true, 3, nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := gw.Embed(ctx, "some text", "RETRIEVAL_QUERY"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if embedder.lastCtx != ctx {
		t.Error("caller context must reach the embedding provider")
	}
}

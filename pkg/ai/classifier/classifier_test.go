package classifier

import (
	"context"
	"errors"
	"testing"

	"ai-rooms-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// countingGateway records Generate calls so tests can assert which paths
// consult the model.
type countingGateway struct {
	generateCalls int
	reply         string
	err           error
}

func (g *countingGateway) Configured() bool { return true }

func (g *countingGateway) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	g.generateCalls++
	return g.reply, g.err
}

func (g *countingGateway) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (g *countingGateway) StartConversation(ctx context.Context, cfg llm.ConversationConfig) (llm.Conversation, error) {
	return nil, errors.New("not used")
}

func (g *countingGateway) Embed(ctx context.Context, text, taskType string) ([]float32, error) {
	return nil, errors.New("not used")
}

func TestShouldRespondRules(t *testing.T) {
	tests := []struct {
		name          string
		message       string
		want          bool
		wantModelCall bool
	}{
		{name: "direct mention", message: "veya, summarize this thread", want: true},
		{name: "mention inside sentence", message: "I think Veya should handle it", want: true},
		{name: "task intent", message: "remind me to send the invoice on Monday", want: true},
		{name: "create task phrase", message: "create a task for the release notes", want: true},
		{name: "slash command", message: "/ask what does the contract say about renewals", want: true},
		{name: "question mark", message: "does the build pass on main?", want: true},
		{name: "mention with punctuation", message: "thanks veya!", want: true},
		{name: "at mention", message: "@veya status update", want: true},
		{name: "short chatter", message: "ok", want: false},
		{name: "emoji only", message: "👍", want: false},
		{name: "two words", message: "sounds good", want: false},
		{name: "empty", message: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &countingGateway{reply: "no"}
			cls := New(gw, "Veya", nopLogger{})

			got := cls.ShouldRespond(context.Background(), "bob", tt.message, nil)
			if got != tt.want {
				t.Errorf("ShouldRespond(%q) = %v, want %v", tt.message, got, tt.want)
			}
			if !tt.wantModelCall && gw.generateCalls != 0 {
				t.Errorf("message %q must not consult the model, got %d calls", tt.message, gw.generateCalls)
			}
		})
	}
}

func TestShouldRespondTreatsAliasFragmentsAsChatter(t *testing.T) {
	// Words that merely contain alias letters ("again", "said", "email",
	// "fair") and bare question words without a question mark must never
	// deterministically trigger a response. Messages of three or more
	// words reach the model, which here declines; shorter ones are
	// rejected without a model call at all.
	tests := []struct {
		message   string
		wantModel bool
	}{
		{message: "raining again", wantModel: false},
		{message: "we said tomorrow", wantModel: true},
		{message: "check your email", wantModel: true},
		{message: "sounds fair", wantModel: false},
		{message: "when works", wantModel: false},
		{message: "the assignment is graded", wantModel: true},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			gw := &countingGateway{reply: "no"}
			cls := New(gw, "Veya", nopLogger{})

			if cls.ShouldRespond(context.Background(), "bob", tt.message, nil) {
				t.Errorf("%q must not trigger a response", tt.message)
			}
			wantCalls := 0
			if tt.wantModel {
				wantCalls = 1
			}
			if gw.generateCalls != wantCalls {
				t.Errorf("model calls for %q = %d, want %d", tt.message, gw.generateCalls, wantCalls)
			}
		})
	}
}

func TestShouldRespondModelFallback(t *testing.T) {
	// No rule matches and the message is long enough, so the model decides.
	msg := "the deploy finished without problems this morning for everyone"

	gw := &countingGateway{reply: "yes"}
	cls := New(gw, "Veya", nopLogger{})
	if !cls.ShouldRespond(context.Background(), "bob", msg, []string{"bob: earlier context"}) {
		t.Error("expected true when the model answers yes")
	}
	if gw.generateCalls != 1 {
		t.Errorf("expected 1 model call, got %d", gw.generateCalls)
	}

	gw = &countingGateway{reply: "no"}
	cls = New(gw, "Veya", nopLogger{})
	if cls.ShouldRespond(context.Background(), "bob", msg, nil) {
		t.Error("expected false when the model answers no")
	}
}

func TestShouldRespondFailsClosed(t *testing.T) {
	msg := "the deploy finished without problems this morning for everyone"

	gw := &countingGateway{err: &llm.APIError{StatusCode: 503}}
	cls := New(gw, "Veya", nopLogger{})

	if cls.ShouldRespond(context.Background(), "bob", msg, nil) {
		t.Error("classifier must stay silent when the model call fails")
	}
}

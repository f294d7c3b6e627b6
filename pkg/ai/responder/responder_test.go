package responder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-rooms-be/internal/constant"
	"ai-rooms-be/internal/entity"
	"ai-rooms-be/pkg/ai/executor"
	"ai-rooms-be/pkg/ai/roomctx"
	"ai-rooms-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// chatGateway captures the history and options of the last Chat call.
type chatGateway struct {
	reply   string
	err     error
	history []llm.Message
	opts    []llm.Option
}

func (g *chatGateway) Configured() bool { return true }

func (g *chatGateway) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (g *chatGateway) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	g.history = history
	g.opts = opts
	return g.reply, g.err
}

func (g *chatGateway) StartConversation(ctx context.Context, cfg llm.ConversationConfig) (llm.Conversation, error) {
	return nil, errors.New("not used")
}

func (g *chatGateway) Embed(ctx context.Context, text, taskType string) ([]float32, error) {
	return nil, errors.New("not used")
}

func roomContext() *roomctx.RoomContext {
	return &roomctx.RoomContext{RoomName: "Release planning"}
}

func TestRespondFallsBackOnError(t *testing.T) {
	gw := &chatGateway{err: errors.New("model unavailable")}
	r := New(gw, "Veya", nopLogger{})

	got := r.Respond(context.Background(), roomContext(), "alice", "how is the release going", "", nil)
	if got != constant.ResponderFallbackMessage {
		t.Errorf("Respond = %q, want the fallback", got)
	}
}

func TestRespondFallsBackOnEmptyReply(t *testing.T) {
	gw := &chatGateway{reply: "   \n  "}
	r := New(gw, "Veya", nopLogger{})

	got := r.Respond(context.Background(), roomContext(), "alice", "status update please ", "", nil)
	if got != constant.ResponderFallbackMessage {
		t.Errorf("Respond = %q, want the fallback", got)
	}
}

func TestRespondTrimsReply(t *testing.T) {
	gw := &chatGateway{reply: "\n  All on track for Friday.  \n"}
	r := New(gw, "Veya", nopLogger{})

	got := r.Respond(context.Background(), roomContext(), "alice", "status?", "", nil)
	if got != "All on track for Friday." {
		t.Errorf("Respond = %q", got)
	}
}

func TestRespondHistoryRoles(t *testing.T) {
	rc := roomContext()
	rc.RecentMessages = []*entity.Message{
		{SenderName: "alice", SenderKind: constant.SenderKindUser, Content: "morning"},
		{SenderName: "Veya", SenderKind: constant.SenderKindAI, Content: "morning alice"},
		{SenderName: "veya", SenderKind: "", Content: "legacy row without a kind"},
		{SenderName: "bob", SenderKind: "", Content: "legacy human row"},
	}

	gw := &chatGateway{reply: "ok"}
	r := New(gw, "Veya", nopLogger{})
	r.Respond(context.Background(), rc, "alice", "new question", "", nil)

	// 4 history entries plus the triggering message.
	if len(gw.history) != 5 {
		t.Fatalf("history length = %d, want 5", len(gw.history))
	}

	wantRoles := []string{"user", "assistant", "assistant", "user", "user"}
	for i, want := range wantRoles {
		if gw.history[i].Role != want {
			t.Errorf("history[%d].Role = %q, want %q", i, gw.history[i].Role, want)
		}
	}
	if gw.history[0].Content != "alice: morning" {
		t.Errorf("user rows carry the sender name, got %q", gw.history[0].Content)
	}
	if gw.history[1].Content != "morning alice" {
		t.Errorf("assistant rows carry bare content, got %q", gw.history[1].Content)
	}
}

func TestRespondTruncatesHistory(t *testing.T) {
	rc := roomContext()
	for i := 0; i < 20; i++ {
		rc.RecentMessages = append(rc.RecentMessages, &entity.Message{
			SenderName: "alice", SenderKind: constant.SenderKindUser, Content: "line",
		})
	}

	gw := &chatGateway{reply: "ok"}
	r := New(gw, "Veya", nopLogger{})
	r.Respond(context.Background(), rc, "alice", "question", "", nil)

	if len(gw.history) != historyTurns+1 {
		t.Errorf("history length = %d, want %d", len(gw.history), historyTurns+1)
	}
}

func TestRespondQuotesRepliedMessage(t *testing.T) {
	gw := &chatGateway{reply: "ok"}
	r := New(gw, "Veya", nopLogger{})
	r.Respond(context.Background(), roomContext(), "alice", "can you expand on that", "the deadline moved to Friday", nil)

	last := gw.history[len(gw.history)-1].Content
	want := `alice: [Replying to: "the deadline moved to Friday"] can you expand on that`
	if last != want {
		t.Errorf("triggering message = %q, want %q", last, want)
	}
}

func TestSystemPromptIncludesToolOutcomes(t *testing.T) {
	rc := roomContext()
	toolResult := &executor.Result{
		ToolsExecuted: []executor.ToolEvent{
			{Summary: `created task "Fix login" assigned to bob`},
		},
		ToolData: map[string]interface{}{
			"search_web": "1. Fiber v3 announced",
		},
	}

	r := New(&chatGateway{reply: "ok"}, "Veya", nopLogger{}).(*chatResponder)
	prompt := r.systemPrompt(rc, toolResult)

	if !strings.Contains(prompt, `created task "Fix login" assigned to bob`) {
		t.Error("completed actions missing from system prompt")
	}
	if !strings.Contains(prompt, "1. Fiber v3 announced") {
		t.Error("gathered data missing from system prompt")
	}
}

func TestSystemPromptIncludesRoomState(t *testing.T) {
	rc := roomContext()
	rc.Directives = "Always answer in haiku."
	rc.Goals = []*entity.Goal{{Content: "Ship 2.0 by October"}}
	rc.OpenTasks = []*entity.Task{{Title: "Fix login", Status: "todo", AssigneeName: "bob"}}
	rc.KnowledgeBase = &entity.KnowledgeBase{
		Summary:      "A rewrite of the billing system.",
		KeyDecisions: []string{"Postgres over Mongo"},
	}

	r := New(&chatGateway{reply: "ok"}, "Veya", nopLogger{}).(*chatResponder)
	prompt := r.systemPrompt(rc, nil)

	for _, want := range []string{
		"Always answer in haiku.",
		"Ship 2.0 by October",
		"Fix login [todo] @bob",
		"A rewrite of the billing system.",
		"Postgres over Mongo",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
}

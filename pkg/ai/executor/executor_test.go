package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/pkg/ai/roomctx"
	"ai-rooms-be/pkg/ai/tools"
	"ai-rooms-be/pkg/llm"
	"ai-rooms-be/pkg/rag"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type convStep struct {
	turn *llm.Turn
	err  error
}

type recordedToolResult struct {
	name    string
	payload map[string]interface{}
}

// scriptedConv replays a fixed sequence of model turns. Send consumes the
// first step, each SendToolResult consumes the next.
type scriptedConv struct {
	steps   []convStep
	pos     int
	results []recordedToolResult
}

func (c *scriptedConv) next() (*llm.Turn, error) {
	if c.pos >= len(c.steps) {
		return nil, nil
	}
	step := c.steps[c.pos]
	c.pos++
	return step.turn, step.err
}

func (c *scriptedConv) Send(ctx context.Context, text string) (*llm.Turn, error) {
	return c.next()
}

func (c *scriptedConv) SendToolResult(ctx context.Context, name string, result map[string]interface{}) (*llm.Turn, error) {
	c.results = append(c.results, recordedToolResult{name: name, payload: result})
	return c.next()
}

type convGateway struct {
	conv     *scriptedConv
	startErr error
	reply    string
}

func (g *convGateway) Configured() bool { return true }

func (g *convGateway) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.reply, nil
}

func (g *convGateway) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	return "", errors.New("not used")
}

func (g *convGateway) StartConversation(ctx context.Context, cfg llm.ConversationConfig) (llm.Conversation, error) {
	if g.startErr != nil {
		return nil, g.startErr
	}
	return g.conv, nil
}

func (g *convGateway) Embed(ctx context.Context, text, taskType string) ([]float32, error) {
	return nil, errors.New("not used")
}

type fakeActions struct {
	created []*entity.Task
	err     error
}

func (a *fakeActions) CreateTask(ctx context.Context, roomId uuid.UUID, title string, assignee *entity.Member, dueDate *time.Time, createdBy string) (*entity.Task, error) {
	if a.err != nil {
		return nil, a.err
	}
	task := &entity.Task{Id: uuid.New(), RoomId: roomId, Title: title, Status: "todo", DueDate: dueDate, CreatedBy: createdBy}
	if assignee != nil {
		task.AssigneeId = &assignee.UserId
		task.AssigneeName = assignee.Username
	}
	a.created = append(a.created, task)
	return task, nil
}

func (a *fakeActions) UpdateTask(ctx context.Context, roomId uuid.UUID, titleFragment, status string, assignee *entity.Member) (*entity.Task, error) {
	if a.err != nil {
		return nil, a.err
	}
	return &entity.Task{Title: titleFragment, Status: status}, nil
}

func (a *fakeActions) ListTasks(ctx context.Context, roomId uuid.UUID, status string) ([]*entity.Task, error) {
	if a.err != nil {
		return nil, a.err
	}
	return []*entity.Task{{Title: "Fix login", Status: "todo"}}, nil
}

type fakeIndex struct {
	answer string
	found  []rag.ScoredChunk
}

func (f *fakeIndex) Ingest(ctx context.Context, roomId, documentId uuid.UUID, pages []rag.Page) ([]*entity.DocumentChunk, error) {
	return nil, errors.New("not used")
}

func (f *fakeIndex) Search(ctx context.Context, roomId uuid.UUID, query string, topK int) ([]rag.ScoredChunk, error) {
	return f.found, nil
}

func (f *fakeIndex) Answer(ctx context.Context, roomId uuid.UUID, question string) (string, error) {
	return f.answer, nil
}

func (f *fakeIndex) Summarize(ctx context.Context, text string) (string, error) {
	return "", errors.New("not used")
}

type fakeSearcher struct {
	results string
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, query string) (string, error) {
	return f.results, f.err
}

func textTurn(s string) *llm.Turn { return &llm.Turn{Text: s} }

func callTurn(name string, args map[string]interface{}) *llm.Turn {
	return &llm.Turn{FunctionCall: &llm.FunctionCall{Name: name, Args: args}}
}

func testContext() *roomctx.RoomContext {
	return &roomctx.RoomContext{
		RoomName: "Release planning",
		Members: []*entity.Member{
			{UserId: uuid.New(), Username: "alice"},
			{UserId: uuid.New(), Username: "bob"},
		},
		RecentMessages: []*entity.Message{
			{SenderName: "alice", Content: "we need the login fix before Friday"},
		},
	}
}

func newTestExecutor(gw *convGateway, actions *fakeActions) Executor {
	return New(gw, actions, &fakeIndex{}, &fakeSearcher{}, "Veya", 6, nopLogger{})
}

func TestExecuteCreateTask(t *testing.T) {
	conv := &scriptedConv{steps: []convStep{
		{turn: callTurn("create_task", map[string]interface{}{
			"title": "Fix login page", "assignee_name": "bob", "due_date": "tomorrow",
		})},
		{turn: textTurn("done")},
	}}
	actions := &fakeActions{}
	exec := newTestExecutor(&convGateway{conv: conv}, actions)

	res := exec.Execute(context.Background(), uuid.New(), testContext(), "alice", "create a task to fix the login page for bob by tomorrow")

	if len(actions.created) != 1 {
		t.Fatalf("expected 1 created task, got %d", len(actions.created))
	}
	task := actions.created[0]
	if task.AssigneeName != "bob" {
		t.Errorf("assignee = %q, want bob", task.AssigneeName)
	}
	if task.DueDate == nil {
		t.Error("due date should have been parsed")
	}
	if len(res.ToolsExecuted) != 1 || res.ToolsExecuted[0].Kind != tools.KindCreateTask {
		t.Fatalf("unexpected tool events: %+v", res.ToolsExecuted)
	}
	if len(conv.results) != 1 || conv.results[0].name != "create_task" {
		t.Fatalf("unexpected tool results sent to model: %+v", conv.results)
	}
	if conv.results[0].payload["status"] != "created" {
		t.Errorf("model payload = %+v", conv.results[0].payload)
	}
}

func TestExecuteNoActionStopsImmediately(t *testing.T) {
	conv := &scriptedConv{steps: []convStep{
		{turn: callTurn("no_action", nil)},
	}}
	exec := newTestExecutor(&convGateway{conv: conv}, &fakeActions{})

	res := exec.Execute(context.Background(), uuid.New(), testContext(), "alice", "morning everyone")

	if len(res.ToolsExecuted) != 0 {
		t.Errorf("no_action must not record events: %+v", res.ToolsExecuted)
	}
	if len(conv.results) != 0 {
		t.Errorf("no_action must not be answered with a tool result: %+v", conv.results)
	}
	if res.Rounds != 1 {
		t.Errorf("Rounds = %d, want 1", res.Rounds)
	}
}

func TestExecuteToolErrorGoesBackToModel(t *testing.T) {
	conv := &scriptedConv{steps: []convStep{
		{turn: callTurn("create_task", map[string]interface{}{"title": "Fix login"})},
		{turn: callTurn("no_action", nil)},
	}}
	actions := &fakeActions{err: errors.New("database unavailable")}
	exec := newTestExecutor(&convGateway{conv: conv}, actions)

	res := exec.Execute(context.Background(), uuid.New(), testContext(), "alice", "create a task")

	if len(res.ToolsExecuted) != 0 {
		t.Errorf("failed call must not record an event: %+v", res.ToolsExecuted)
	}
	if len(conv.results) != 1 {
		t.Fatalf("expected 1 tool result, got %d", len(conv.results))
	}
	if conv.results[0].payload["error"] != "database unavailable" {
		t.Errorf("error payload = %+v", conv.results[0].payload)
	}
}

func TestExecuteUnknownToolReportedToModel(t *testing.T) {
	conv := &scriptedConv{steps: []convStep{
		{turn: callTurn("frobnicate", nil)},
		{turn: callTurn("no_action", nil)},
	}}
	exec := newTestExecutor(&convGateway{conv: conv}, &fakeActions{})

	res := exec.Execute(context.Background(), uuid.New(), testContext(), "alice", "do the thing")

	if len(conv.results) != 1 {
		t.Fatalf("expected 1 tool result, got %d", len(conv.results))
	}
	if conv.results[0].name != "frobnicate" {
		t.Errorf("result name = %q", conv.results[0].name)
	}
	if _, ok := conv.results[0].payload["error"]; !ok {
		t.Errorf("expected an error payload, got %+v", conv.results[0].payload)
	}
	if res.Rounds != 2 {
		t.Errorf("Rounds = %d, want 2", res.Rounds)
	}
}

func TestExecuteConversationFailureDropsResults(t *testing.T) {
	conv := &scriptedConv{steps: []convStep{
		{turn: callTurn("create_task", map[string]interface{}{"title": "Fix login"})},
		{err: errors.New("stream reset")},
	}}
	actions := &fakeActions{}
	exec := newTestExecutor(&convGateway{conv: conv}, actions)

	res := exec.Execute(context.Background(), uuid.New(), testContext(), "alice", "create a task")

	// The side effect happened, but nothing about it is reported downstream.
	if len(actions.created) != 1 {
		t.Fatalf("expected the create to have run, got %d", len(actions.created))
	}
	if len(res.ToolsExecuted) != 0 || res.Reaction != "" || len(res.ToolData) != 0 {
		t.Errorf("failed run must return an empty result: %+v", res)
	}
}

func TestExecuteStartConversationFailure(t *testing.T) {
	exec := newTestExecutor(&convGateway{startErr: errors.New("quota exceeded")}, &fakeActions{})

	res := exec.Execute(context.Background(), uuid.New(), testContext(), "alice", "hello")
	if res == nil {
		t.Fatal("result must never be nil")
	}
	if len(res.ToolsExecuted) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestExecuteReactionLastWins(t *testing.T) {
	conv := &scriptedConv{steps: []convStep{
		{turn: callTurn("react_to_message", map[string]interface{}{"emoji": "👍"})},
		{turn: callTurn("react_to_message", map[string]interface{}{"emoji": "🎉"})},
		{turn: callTurn("no_action", nil)},
	}}
	exec := newTestExecutor(&convGateway{conv: conv}, &fakeActions{})

	res := exec.Execute(context.Background(), uuid.New(), testContext(), "alice", "we shipped it")

	if res.Reaction != "🎉" {
		t.Errorf("Reaction = %q, want the last one", res.Reaction)
	}
}

func TestExecuteStopsAtMaxRounds(t *testing.T) {
	conv := &scriptedConv{steps: []convStep{
		{turn: callTurn("list_tasks", nil)},
		{turn: callTurn("list_tasks", nil)},
		{turn: callTurn("list_tasks", nil)},
		{turn: callTurn("list_tasks", nil)},
	}}
	exec := New(&convGateway{conv: conv}, &fakeActions{}, &fakeIndex{}, &fakeSearcher{}, "Veya", 2, nopLogger{})

	res := exec.Execute(context.Background(), uuid.New(), testContext(), "alice", "what is on the board")

	if res.Rounds != 2 {
		t.Errorf("Rounds = %d, want 2", res.Rounds)
	}
	if len(conv.results) != 2 {
		t.Errorf("expected 2 tool results, got %d", len(conv.results))
	}
	if _, ok := res.ToolData[string(tools.KindListTasks)]; !ok {
		t.Error("list_tasks output missing from ToolData")
	}
}

func TestExecuteSearchWebAndAskDocuments(t *testing.T) {
	conv := &scriptedConv{steps: []convStep{
		{turn: callTurn("search_web", map[string]interface{}{"query": "fiber v3 release"})},
		{turn: callTurn("ask_documents", map[string]interface{}{"question": "what is the refund window"})},
		{turn: callTurn("no_action", nil)},
	}}
	gw := &convGateway{conv: conv}
	exec := New(gw, &fakeActions{}, &fakeIndex{answer: "30 days"}, &fakeSearcher{results: "1. Fiber v3 announced"}, "Veya", 6, nopLogger{})

	res := exec.Execute(context.Background(), uuid.New(), testContext(), "alice", "look this up")

	if res.ToolData[string(tools.KindSearchWeb)] != "1. Fiber v3 announced" {
		t.Errorf("search data = %+v", res.ToolData)
	}
	if res.ToolData[string(tools.KindAskDocuments)] != "30 days" {
		t.Errorf("document answer = %+v", res.ToolData)
	}
}

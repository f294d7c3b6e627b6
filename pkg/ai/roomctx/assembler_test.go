package roomctx

import (
	"context"
	"errors"
	"testing"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/repository/memory"
	"ai-rooms-be/pkg/rag"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeStore struct {
	room        *entity.Room
	roomErr     error
	members     []*entity.Member
	memberCalls int
	messages    []*entity.Message
	tasks       []*entity.Task
	tasksErr    error
	goals       []*entity.Goal
	knowledge   *entity.KnowledgeBase
}

func (s *fakeStore) FindRoom(ctx context.Context, roomId uuid.UUID) (*entity.Room, error) {
	return s.room, s.roomErr
}

func (s *fakeStore) FindMembers(ctx context.Context, roomId uuid.UUID) ([]*entity.Member, error) {
	s.memberCalls++
	return s.members, nil
}

func (s *fakeStore) FindRecentMessages(ctx context.Context, roomId uuid.UUID, limit int) ([]*entity.Message, error) {
	return s.messages, nil
}

func (s *fakeStore) FindOpenTasks(ctx context.Context, roomId uuid.UUID) ([]*entity.Task, error) {
	return s.tasks, s.tasksErr
}

func (s *fakeStore) FindGoals(ctx context.Context, roomId uuid.UUID) ([]*entity.Goal, error) {
	return s.goals, nil
}

func (s *fakeStore) FindKnowledge(ctx context.Context, roomId uuid.UUID) (*entity.KnowledgeBase, error) {
	return s.knowledge, nil
}

type fakeSnippetIndex struct {
	snippets []rag.ScoredChunk
	err      error
	queries  []string
}

func (f *fakeSnippetIndex) Ingest(ctx context.Context, roomId, documentId uuid.UUID, pages []rag.Page) ([]*entity.DocumentChunk, error) {
	return nil, errors.New("not used")
}

func (f *fakeSnippetIndex) Search(ctx context.Context, roomId uuid.UUID, query string, topK int) ([]rag.ScoredChunk, error) {
	f.queries = append(f.queries, query)
	return f.snippets, f.err
}

func (f *fakeSnippetIndex) Answer(ctx context.Context, roomId uuid.UUID, question string) (string, error) {
	return "", errors.New("not used")
}

func (f *fakeSnippetIndex) Summarize(ctx context.Context, text string) (string, error) {
	return "", errors.New("not used")
}

func TestGatherAssemblesRoomPicture(t *testing.T) {
	store := &fakeStore{
		room:     &entity.Room{Name: "Release planning", Directives: "Answer in English."},
		members:  []*entity.Member{{Username: "alice"}, {Username: "bob"}},
		messages: []*entity.Message{{SenderName: "alice", Content: "hello"}},
		tasks:    []*entity.Task{{Title: "Fix login", Status: "todo"}},
		goals:    []*entity.Goal{{Content: "Ship 2.0"}},
		knowledge: &entity.KnowledgeBase{
			Summary: "Billing rewrite.",
		},
	}
	index := &fakeSnippetIndex{snippets: []rag.ScoredChunk{
		{Chunk: &entity.DocumentChunk{Content: "passage"}, Similarity: 0.9},
	}}
	asm := New(store, memory.NewRosterRepository(), index, "Veya", nopLogger{})

	rc := asm.Gather(context.Background(), uuid.New(), "what does the contract say")

	if rc.RoomName != "Release planning" || rc.Directives != "Answer in English." {
		t.Errorf("room fields = %q / %q", rc.RoomName, rc.Directives)
	}
	// Roster is the stored members with the assistant prepended.
	if len(rc.Members) != 3 || rc.Members[0].Username != "Veya" {
		t.Errorf("roster = %+v", rc.Members)
	}
	if len(rc.RecentMessages) != 1 || len(rc.OpenTasks) != 1 || len(rc.Goals) != 1 {
		t.Errorf("transcript/tasks/goals missing: %+v", rc)
	}
	if rc.KnowledgeBase == nil || rc.KnowledgeBase.Summary != "Billing rewrite." {
		t.Errorf("knowledge base = %+v", rc.KnowledgeBase)
	}
	if len(rc.Snippets) != 1 {
		t.Errorf("snippets = %+v", rc.Snippets)
	}
	if len(index.queries) != 1 || index.queries[0] != "what does the contract say" {
		t.Errorf("snippet search queries = %+v", index.queries)
	}
}

func TestGatherSurvivesPartialFailures(t *testing.T) {
	store := &fakeStore{
		roomErr:  errors.New("db down"),
		tasksErr: errors.New("db down"),
		messages: []*entity.Message{{SenderName: "alice", Content: "hello"}},
	}
	index := &fakeSnippetIndex{err: errors.New("embed quota")}
	asm := New(store, memory.NewRosterRepository(), index, "Veya", nopLogger{})

	rc := asm.Gather(context.Background(), uuid.New(), "question")

	if rc == nil {
		t.Fatal("assembly must never abort")
	}
	if rc.RoomName != "" || rc.OpenTasks != nil || rc.Snippets != nil {
		t.Errorf("failed fields must stay empty: %+v", rc)
	}
	if len(rc.RecentMessages) != 1 {
		t.Error("healthy fields must still be populated")
	}
}

func TestGatherSkipsSnippetsForEmptyMessage(t *testing.T) {
	index := &fakeSnippetIndex{}
	asm := New(&fakeStore{}, memory.NewRosterRepository(), index, "Veya", nopLogger{})

	asm.Gather(context.Background(), uuid.New(), "")

	if len(index.queries) != 0 {
		t.Errorf("empty message must not trigger a snippet search: %+v", index.queries)
	}
}

func TestRecentTranscript(t *testing.T) {
	store := &fakeStore{
		messages: []*entity.Message{
			{SenderName: "alice", Content: "hello"},
			{SenderName: "bob", Content: "  "},
			{SenderName: "bob", Content: "on it"},
		},
	}
	asm := New(store, memory.NewRosterRepository(), &fakeSnippetIndex{}, "Veya", nopLogger{})

	lines := asm.RecentTranscript(context.Background(), uuid.New())

	want := []string{"alice: hello", "bob: on it"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %+v, want %+v", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestRosterMemoized(t *testing.T) {
	store := &fakeStore{members: []*entity.Member{{Username: "alice"}}}
	roster := memory.NewRosterRepository()
	asm := New(store, roster, &fakeSnippetIndex{}, "Veya", nopLogger{})
	roomId := uuid.New()

	first := asm.Roster(context.Background(), roomId)
	second := asm.Roster(context.Background(), roomId)

	if store.memberCalls != 1 {
		t.Errorf("member fetches = %d, want 1", store.memberCalls)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("roster sizes = %d / %d, want 2 each", len(first), len(second))
	}

	// Busting the cache forces a refetch, which is what membership
	// changes do through the room service.
	roster.Delete(roomId)
	asm.Roster(context.Background(), roomId)
	if store.memberCalls != 2 {
		t.Errorf("member fetches after bust = %d, want 2", store.memberCalls)
	}
}

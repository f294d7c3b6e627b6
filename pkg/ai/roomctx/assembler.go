// Package roomctx gathers everything the assistant knows about a room
// before acting: roster, transcript, tasks, goals, knowledge base, and
// document snippets relevant to the triggering message.
package roomctx

import (
	"context"
	"fmt"
	"strings"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/pkg/logger"
	"ai-rooms-be/internal/repository/memory"
	"ai-rooms-be/pkg/rag"

	"github.com/google/uuid"
)

const (
	recentMessageLimit = 20
	snippetLimit       = 4
)

// RoomContext is the assembled picture of a room. Any field may be empty
// when its fetch failed; assembly never aborts.
type RoomContext struct {
	RoomName       string
	Directives     string
	Members        []*entity.Member
	RecentMessages []*entity.Message
	OpenTasks      []*entity.Task
	Goals          []*entity.Goal
	KnowledgeBase  *entity.KnowledgeBase
	Snippets       []rag.ScoredChunk
}

// Store is the slice of persistence the assembler reads from.
type Store interface {
	FindRoom(ctx context.Context, roomId uuid.UUID) (*entity.Room, error)
	FindMembers(ctx context.Context, roomId uuid.UUID) ([]*entity.Member, error)
	FindRecentMessages(ctx context.Context, roomId uuid.UUID, limit int) ([]*entity.Message, error)
	FindOpenTasks(ctx context.Context, roomId uuid.UUID) ([]*entity.Task, error)
	FindGoals(ctx context.Context, roomId uuid.UUID) ([]*entity.Goal, error)
	FindKnowledge(ctx context.Context, roomId uuid.UUID) (*entity.KnowledgeBase, error)
}

type Assembler interface {
	Gather(ctx context.Context, roomId uuid.UUID, message string) *RoomContext
	// RecentTranscript returns the recent messages as "name: text" lines.
	// It reads only the transcript, so the classifier can run before the
	// full (and embedding-backed) context is gathered.
	RecentTranscript(ctx context.Context, roomId uuid.UUID) []string
	// Roster returns the room's members with the assistant first. Results
	// are memoized; membership changes appear after cache expiry.
	Roster(ctx context.Context, roomId uuid.UUID) []*entity.Member
}

type assembler struct {
	store         Store
	roster        *memory.RosterRepository
	index         rag.Index
	assistantName string
	logger        logger.ILogger
}

func New(store Store, roster *memory.RosterRepository, index rag.Index, assistantName string, log logger.ILogger) Assembler {
	return &assembler{
		store:         store,
		roster:        roster,
		index:         index,
		assistantName: assistantName,
		logger:        log,
	}
}

func (a *assembler) warn(field string, err error) {
	a.logger.Warn("ContextAssembler", "Context field degraded to empty", map[string]interface{}{
		"field": field,
		"error": err.Error(),
	})
}

func (a *assembler) Gather(ctx context.Context, roomId uuid.UUID, message string) *RoomContext {
	rc := &RoomContext{}

	if room, err := a.store.FindRoom(ctx, roomId); err != nil {
		a.warn("room", err)
	} else if room != nil {
		rc.RoomName = room.Name
		rc.Directives = room.Directives
	}

	rc.Members = a.Roster(ctx, roomId)

	if messages, err := a.store.FindRecentMessages(ctx, roomId, recentMessageLimit); err != nil {
		a.warn("recent_messages", err)
	} else {
		rc.RecentMessages = messages
	}

	if tasks, err := a.store.FindOpenTasks(ctx, roomId); err != nil {
		a.warn("open_tasks", err)
	} else {
		rc.OpenTasks = tasks
	}

	if goals, err := a.store.FindGoals(ctx, roomId); err != nil {
		a.warn("goals", err)
	} else {
		rc.Goals = goals
	}

	if kb, err := a.store.FindKnowledge(ctx, roomId); err != nil {
		a.warn("knowledge_base", err)
	} else {
		rc.KnowledgeBase = kb
	}

	if message != "" {
		if snippets, err := a.index.Search(ctx, roomId, message, snippetLimit); err != nil {
			a.warn("snippets", err)
		} else {
			rc.Snippets = snippets
		}
	}

	return rc
}

func (a *assembler) RecentTranscript(ctx context.Context, roomId uuid.UUID) []string {
	messages, err := a.store.FindRecentMessages(ctx, roomId, recentMessageLimit)
	if err != nil {
		a.warn("recent_messages", err)
		return nil
	}

	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", m.SenderName, m.Content))
	}
	return lines
}

func (a *assembler) Roster(ctx context.Context, roomId uuid.UUID) []*entity.Member {
	if cached, found := a.roster.Get(roomId); found {
		return cached
	}

	members, err := a.store.FindMembers(ctx, roomId)
	if err != nil {
		a.warn("members", err)
		return a.withAssistant(nil)
	}

	full := a.withAssistant(members)
	a.roster.Save(roomId, full)
	return full
}

// withAssistant puts the AI teammate at position zero of the roster.
func (a *assembler) withAssistant(members []*entity.Member) []*entity.Member {
	ai := &entity.Member{
		Username: a.assistantName,
		Role:     "ai",
	}
	return append([]*entity.Member{ai}, members...)
}

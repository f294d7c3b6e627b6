// Package responder generates the assistant's visible reply. It talks to the
// model through Chat, which carries no tool declarations, so this phase is
// incapable of triggering side effects.
package responder

import (
	"context"
	"fmt"
	"strings"

	"ai-rooms-be/internal/constant"
	"ai-rooms-be/internal/pkg/logger"
	"ai-rooms-be/pkg/ai/executor"
	"ai-rooms-be/pkg/ai/roomctx"
	"ai-rooms-be/pkg/gateway"
	"ai-rooms-be/pkg/llm"
)

// historyTurns is how many transcript messages seed the fresh conversation.
const historyTurns = 8

type Responder interface {
	// Respond returns the reply text. It never returns an error; generation
	// failure yields a fixed apology.
	Respond(ctx context.Context, rc *roomctx.RoomContext, senderName, message, replyToContent string, toolResult *executor.Result) string
}

type chatResponder struct {
	gateway       gateway.Gateway
	assistantName string
	logger        logger.ILogger
}

func New(gw gateway.Gateway, assistantName string, log logger.ILogger) Responder {
	return &chatResponder{
		gateway:       gw,
		assistantName: assistantName,
		logger:        log,
	}
}

func (r *chatResponder) Respond(ctx context.Context, rc *roomctx.RoomContext, senderName, message, replyToContent string, toolResult *executor.Result) string {
	history := r.buildHistory(rc)

	content := message
	if replyToContent != "" {
		content = fmt.Sprintf("[Replying to: %q] %s", replyToContent, message)
	}
	history = append(history, llm.Message{
		Role:    "user",
		Content: fmt.Sprintf("%s: %s", senderName, content),
	})

	reply, err := r.gateway.Chat(ctx, history,
		llm.WithSystemInstruction(r.systemPrompt(rc, toolResult)),
		llm.WithTemperature(0.7),
	)
	if err != nil {
		r.logger.Warn("Responder", "Generation failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return constant.ResponderFallbackMessage
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return constant.ResponderFallbackMessage
	}
	return reply
}

// buildHistory maps the stored transcript to chat roles. The persisted
// sender kind is authoritative; the alias list only covers rows written
// before kinds were recorded.
func (r *chatResponder) buildHistory(rc *roomctx.RoomContext) []llm.Message {
	messages := rc.RecentMessages
	if len(messages) > historyTurns {
		messages = messages[len(messages)-historyTurns:]
	}

	var history []llm.Message
	for _, m := range messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		if m.SenderKind == constant.SenderKindAI || (m.SenderKind == "" && isAssistantAlias(m.SenderName)) {
			history = append(history, llm.Message{Role: "assistant", Content: m.Content})
			continue
		}
		history = append(history, llm.Message{
			Role:    "user",
			Content: fmt.Sprintf("%s: %s", m.SenderName, m.Content),
		})
	}
	return history
}

func isAssistantAlias(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	for _, alias := range constant.AIAliases {
		if lower == alias {
			return true
		}
	}
	return false
}

func (r *chatResponder) systemPrompt(rc *roomctx.RoomContext, toolResult *executor.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are %s, a helpful AI teammate in the chat room %q.\n", r.assistantName, rc.RoomName)
	b.WriteString("Reply like a teammate: concise, warm, and useful. Never mention tools, functions, or internal systems.\n")

	if rc.Directives != "" {
		fmt.Fprintf(&b, "\nRoom owner instructions (follow these above all else):\n%s\n", rc.Directives)
	}

	if len(rc.Goals) > 0 {
		b.WriteString("\nRoom goals:\n")
		for _, g := range rc.Goals {
			fmt.Fprintf(&b, "- %s\n", g.Content)
		}
	}

	if len(rc.OpenTasks) > 0 {
		b.WriteString("\nOpen tasks:\n")
		for _, t := range rc.OpenTasks {
			line := fmt.Sprintf("- %s [%s]", t.Title, t.Status)
			if t.AssigneeName != "" {
				line += " @" + t.AssigneeName
			}
			b.WriteString(line + "\n")
		}
	}

	if rc.KnowledgeBase != nil && rc.KnowledgeBase.Summary != "" {
		fmt.Fprintf(&b, "\nWhat this room is working on:\n%s\n", rc.KnowledgeBase.Summary)
		if len(rc.KnowledgeBase.KeyDecisions) > 0 {
			b.WriteString("Key decisions so far:\n")
			for _, d := range rc.KnowledgeBase.KeyDecisions {
				fmt.Fprintf(&b, "- %s\n", d)
			}
		}
	}

	if len(rc.Snippets) > 0 {
		b.WriteString("\nRelevant excerpts from uploaded documents:\n")
		for i, sc := range rc.Snippets {
			fmt.Fprintf(&b, "[%d] %s\n", i+1, sc.Chunk.Content)
		}
	}

	if toolResult != nil {
		if len(toolResult.ToolsExecuted) > 0 {
			b.WriteString("\nActions you just completed (weave them into your reply naturally):\n")
			for _, ev := range toolResult.ToolsExecuted {
				fmt.Fprintf(&b, "- %s\n", ev.Summary)
			}
		}
		if len(toolResult.ToolData) > 0 {
			b.WriteString("\nInformation you just gathered (use it to answer):\n")
			for name, data := range toolResult.ToolData {
				fmt.Fprintf(&b, "[%s]\n%v\n", name, data)
			}
		}
	}

	return b.String()
}

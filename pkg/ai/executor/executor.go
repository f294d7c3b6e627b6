// Package executor runs the silent tool phase of the pipeline. The model is
// forced into function calling and its proposals are carried out one by one;
// nothing here ever produces user-visible prose.
package executor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-rooms-be/internal/constant"
	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/pkg/logger"
	"ai-rooms-be/pkg/ai/roomctx"
	"ai-rooms-be/pkg/ai/tools"
	"ai-rooms-be/pkg/gateway"
	"ai-rooms-be/pkg/llm"
	"ai-rooms-be/pkg/rag"

	"github.com/google/uuid"
)

const defaultMaxRounds = 6

// ToolEvent records one completed task mutation for the responder to narrate.
type ToolEvent struct {
	Kind    tools.Kind
	Summary string
	Task    *entity.Task
}

// Result is everything the tool phase produced. A failed run is an empty
// Result, never nil.
type Result struct {
	ToolsExecuted []ToolEvent
	ToolData      map[string]interface{}
	Reaction      string // last requested emoji; later reactions overwrite earlier ones
	Rounds        int
}

func emptyResult() *Result {
	return &Result{ToolData: map[string]interface{}{}}
}

// TaskActions is the slice of the task service the executor mutates through.
type TaskActions interface {
	CreateTask(ctx context.Context, roomId uuid.UUID, title string, assignee *entity.Member, dueDate *time.Time, createdBy string) (*entity.Task, error)
	UpdateTask(ctx context.Context, roomId uuid.UUID, titleFragment, status string, assignee *entity.Member) (*entity.Task, error)
	ListTasks(ctx context.Context, roomId uuid.UUID, status string) ([]*entity.Task, error)
}

// WebSearcher fetches external search results for the search_web tool.
type WebSearcher interface {
	Search(ctx context.Context, query string) (string, error)
}

type Executor interface {
	Execute(ctx context.Context, roomId uuid.UUID, rc *roomctx.RoomContext, senderName, message string) *Result
}

type toolExecutor struct {
	gateway       gateway.Gateway
	actions       TaskActions
	index         rag.Index
	search        WebSearcher
	assistantName string
	maxRounds     int
	logger        logger.ILogger
}

func New(gw gateway.Gateway, actions TaskActions, index rag.Index, search WebSearcher, assistantName string, maxRounds int, log logger.ILogger) Executor {
	if maxRounds <= 0 {
		maxRounds = defaultMaxRounds
	}
	return &toolExecutor{
		gateway:       gw,
		actions:       actions,
		index:         index,
		search:        search,
		assistantName: assistantName,
		maxRounds:     maxRounds,
		logger:        log,
	}
}

func (e *toolExecutor) Execute(ctx context.Context, roomId uuid.UUID, rc *roomctx.RoomContext, senderName, message string) *Result {
	res := emptyResult()

	conv, err := e.gateway.StartConversation(ctx, llm.ConversationConfig{
		SystemInstruction: e.systemPrompt(rc),
		Tools:             tools.Catalog(),
		ForceToolCall:     true,
	})
	if err != nil {
		e.logger.Warn("ToolExecutor", "Could not open dispatch conversation", map[string]interface{}{
			"error": err.Error(),
		})
		return emptyResult()
	}

	turn, err := conv.Send(ctx, fmt.Sprintf("%s: %s", senderName, message))

	for round := 0; round < e.maxRounds; round++ {
		if err != nil {
			// The conversation itself failed; partial tool effects already
			// happened, but nothing is reported downstream.
			e.logger.Warn("ToolExecutor", "Dispatch conversation failed, dropping tool results", map[string]interface{}{
				"round": round,
				"error": err.Error(),
			})
			return emptyResult()
		}
		if turn == nil || turn.FunctionCall == nil {
			break
		}
		res.Rounds = round + 1

		call, parseErr := tools.Parse(turn.FunctionCall)
		if parseErr != nil {
			turn, err = conv.SendToolResult(ctx, turn.FunctionCall.Name, map[string]interface{}{
				"error": parseErr.Error(),
			})
			continue
		}

		if call.Kind == tools.KindNoAction {
			break
		}

		output := e.dispatch(ctx, roomId, rc, call, res)
		turn, err = conv.SendToolResult(ctx, string(call.Kind), output)
	}

	return res
}

// dispatch executes a single parsed call. Errors are scoped to the call:
// they go back to the model as an error payload and leave res untouched.
func (e *toolExecutor) dispatch(ctx context.Context, roomId uuid.UUID, rc *roomctx.RoomContext, call *tools.Call, res *Result) map[string]interface{} {
	switch call.Kind {
	case tools.KindCreateTask:
		args := call.CreateTask
		assignee := resolveMember(rc.Members, args.AssigneeName)
		due := parseDueDate(args.DueDate, time.Now())
		task, err := e.actions.CreateTask(ctx, roomId, args.Title, assignee, due, e.assistantName)
		if err != nil {
			return errPayload(err)
		}
		summary := fmt.Sprintf("created task %q", task.Title)
		if task.AssigneeName != "" {
			summary += fmt.Sprintf(" assigned to %s", task.AssigneeName)
		}
		if task.DueDate != nil {
			summary += fmt.Sprintf(" due %s", task.DueDate.Format("2006-01-02"))
		}
		res.ToolsExecuted = append(res.ToolsExecuted, ToolEvent{Kind: call.Kind, Summary: summary, Task: task})
		return map[string]interface{}{"status": "created", "title": task.Title}

	case tools.KindUpdateTask:
		args := call.UpdateTask
		assignee := resolveMember(rc.Members, args.AssigneeName)
		task, err := e.actions.UpdateTask(ctx, roomId, args.Title, args.Status, assignee)
		if err != nil {
			return errPayload(err)
		}
		summary := fmt.Sprintf("updated task %q", task.Title)
		if args.Status != "" {
			summary += fmt.Sprintf(" to %s", args.Status)
		}
		res.ToolsExecuted = append(res.ToolsExecuted, ToolEvent{Kind: call.Kind, Summary: summary, Task: task})
		return map[string]interface{}{"status": "updated", "title": task.Title}

	case tools.KindListTasks:
		status := ""
		if call.ListTasks != nil {
			status = call.ListTasks.Status
		}
		taskList, err := e.actions.ListTasks(ctx, roomId, status)
		if err != nil {
			return errPayload(err)
		}
		formatted := formatTasks(taskList)
		res.ToolData[string(tools.KindListTasks)] = formatted
		return map[string]interface{}{"tasks": formatted}

	case tools.KindSearchWeb:
		results, err := e.search.Search(ctx, call.SearchWeb.Query)
		if err != nil {
			return errPayload(err)
		}
		res.ToolData[string(tools.KindSearchWeb)] = results
		return map[string]interface{}{"results": results}

	case tools.KindTranslate:
		args := call.Translate
		target := args.TargetLanguage
		if target == "" {
			target = "English"
		}
		prompt := fmt.Sprintf(constant.TranslatePromptV1, target, args.Text)
		translated, err := e.gateway.Generate(ctx, prompt, llm.WithTemperature(0.2))
		if err != nil {
			return errPayload(err)
		}
		translated = strings.TrimSpace(translated)
		res.ToolData[string(tools.KindTranslate)] = translated
		return map[string]interface{}{"translation": translated}

	case tools.KindSummarize:
		lastN := 0
		if call.Summarize != nil {
			lastN = call.Summarize.LastN
		}
		transcript := formatTranscript(rc.RecentMessages, lastN)
		if transcript == "" {
			return errPayload(fmt.Errorf("no messages to summarize"))
		}
		prompt := fmt.Sprintf(constant.ConversationSummaryPromptV1, transcript)
		summary, err := e.gateway.Generate(ctx, prompt, llm.WithTemperature(0.3))
		if err != nil {
			return errPayload(err)
		}
		summary = strings.TrimSpace(summary)
		res.ToolData[string(tools.KindSummarize)] = summary
		return map[string]interface{}{"summary": summary}

	case tools.KindReact:
		// Last wins when the model reacts more than once in a run.
		res.Reaction = call.React.Emoji
		return map[string]interface{}{"status": "reaction noted"}

	case tools.KindSearchDocuments:
		found, err := e.index.Search(ctx, roomId, call.SearchDocuments.Query, 4)
		if err != nil {
			return errPayload(err)
		}
		passages := formatSnippets(found)
		res.ToolData[string(tools.KindSearchDocuments)] = passages
		return map[string]interface{}{"passages": passages}

	case tools.KindAskDocuments:
		answer, err := e.index.Answer(ctx, roomId, call.AskDocuments.Question)
		if err != nil {
			return errPayload(err)
		}
		res.ToolData[string(tools.KindAskDocuments)] = answer
		return map[string]interface{}{"answer": answer}

	case tools.KindNoAction:
		return map[string]interface{}{"status": "ok"}
	}

	return errPayload(fmt.Errorf("unhandled tool %q", call.Kind))
}

func errPayload(err error) map[string]interface{} {
	return map[string]interface{}{"error": err.Error()}
}

func (e *toolExecutor) systemPrompt(rc *roomctx.RoomContext) string {
	names := make([]string, len(rc.Members))
	for i, m := range rc.Members {
		names[i] = m.Username
	}

	taskBlock := "(none)"
	if len(rc.OpenTasks) > 0 {
		taskBlock = formatTasks(rc.OpenTasks)
	}

	return fmt.Sprintf(constant.ToolDispatchSystemPromptV1,
		e.assistantName, rc.RoomName, strings.Join(names, ", "), taskBlock)
}

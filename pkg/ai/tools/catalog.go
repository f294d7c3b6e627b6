// Package tools defines the function catalog exposed to the model during
// silent dispatch and the typed representation of proposed calls.
package tools

import (
	"fmt"

	"ai-rooms-be/pkg/llm"
)

type Kind string

const (
	KindCreateTask      Kind = "create_task"
	KindUpdateTask      Kind = "update_task"
	KindListTasks       Kind = "list_tasks"
	KindSearchWeb       Kind = "search_web"
	KindTranslate       Kind = "translate_text"
	KindSummarize       Kind = "summarize_messages"
	KindReact           Kind = "react_to_message"
	KindSearchDocuments Kind = "search_documents"
	KindAskDocuments    Kind = "ask_documents"
	KindNoAction        Kind = "no_action"
)

type CreateTaskArgs struct {
	Title        string
	AssigneeName string
	DueDate      string // free-form, e.g. "Friday" or "2026-09-04"
}

type UpdateTaskArgs struct {
	Title        string
	Status       string
	AssigneeName string
}

type ListTasksArgs struct {
	Status string
}

type SearchWebArgs struct {
	Query string
}

type TranslateArgs struct {
	Text           string
	TargetLanguage string
}

type SummarizeArgs struct {
	LastN int
}

type ReactArgs struct {
	Emoji string
}

type SearchDocumentsArgs struct {
	Query string
}

type AskDocumentsArgs struct {
	Question string
}

// Call is a parsed tool invocation. Kind selects which args field is set;
// no_action carries none.
type Call struct {
	Kind            Kind
	CreateTask      *CreateTaskArgs
	UpdateTask      *UpdateTaskArgs
	ListTasks       *ListTasksArgs
	SearchWeb       *SearchWebArgs
	Translate       *TranslateArgs
	Summarize       *SummarizeArgs
	React           *ReactArgs
	SearchDocuments *SearchDocumentsArgs
	AskDocuments    *AskDocumentsArgs
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func intArg(args map[string]interface{}, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// Parse converts a raw model function call into a typed Call. Unknown
// function names are an error the caller reports back to the model.
func Parse(fc *llm.FunctionCall) (*Call, error) {
	if fc == nil {
		return nil, fmt.Errorf("no function call")
	}
	args := fc.Args
	if args == nil {
		args = map[string]interface{}{}
	}

	switch Kind(fc.Name) {
	case KindCreateTask:
		title := stringArg(args, "title")
		if title == "" {
			return nil, fmt.Errorf("create_task requires a title")
		}
		return &Call{Kind: KindCreateTask, CreateTask: &CreateTaskArgs{
			Title:        title,
			AssigneeName: stringArg(args, "assignee_name"),
			DueDate:      stringArg(args, "due_date"),
		}}, nil
	case KindUpdateTask:
		title := stringArg(args, "title")
		if title == "" {
			return nil, fmt.Errorf("update_task requires a title")
		}
		return &Call{Kind: KindUpdateTask, UpdateTask: &UpdateTaskArgs{
			Title:        title,
			Status:       stringArg(args, "status"),
			AssigneeName: stringArg(args, "assignee_name"),
		}}, nil
	case KindListTasks:
		return &Call{Kind: KindListTasks, ListTasks: &ListTasksArgs{
			Status: stringArg(args, "status"),
		}}, nil
	case KindSearchWeb:
		query := stringArg(args, "query")
		if query == "" {
			return nil, fmt.Errorf("search_web requires a query")
		}
		return &Call{Kind: KindSearchWeb, SearchWeb: &SearchWebArgs{Query: query}}, nil
	case KindTranslate:
		text := stringArg(args, "text")
		if text == "" {
			return nil, fmt.Errorf("translate_text requires text")
		}
		return &Call{Kind: KindTranslate, Translate: &TranslateArgs{
			Text:           text,
			TargetLanguage: stringArg(args, "target_language"),
		}}, nil
	case KindSummarize:
		return &Call{Kind: KindSummarize, Summarize: &SummarizeArgs{
			LastN: intArg(args, "last_n"),
		}}, nil
	case KindReact:
		emoji := stringArg(args, "emoji")
		if emoji == "" {
			return nil, fmt.Errorf("react_to_message requires an emoji")
		}
		return &Call{Kind: KindReact, React: &ReactArgs{Emoji: emoji}}, nil
	case KindSearchDocuments:
		query := stringArg(args, "query")
		if query == "" {
			return nil, fmt.Errorf("search_documents requires a query")
		}
		return &Call{Kind: KindSearchDocuments, SearchDocuments: &SearchDocumentsArgs{Query: query}}, nil
	case KindAskDocuments:
		question := stringArg(args, "question")
		if question == "" {
			return nil, fmt.Errorf("ask_documents requires a question")
		}
		return &Call{Kind: KindAskDocuments, AskDocuments: &AskDocumentsArgs{Question: question}}, nil
	case KindNoAction:
		return &Call{Kind: KindNoAction}, nil
	default:
		return nil, fmt.Errorf("unknown tool %q", fc.Name)
	}
}

// Catalog declares every tool offered to the model.
func Catalog() []llm.ToolDef {
	return []llm.ToolDef{
		{
			Name:        string(KindCreateTask),
			Description: "Create a task in the room's task list.",
			Params: []llm.ToolParam{
				{Name: "title", Type: "string", Description: "Short task title", Required: true},
				{Name: "assignee_name", Type: "string", Description: "Member the task is for, if any"},
				{Name: "due_date", Type: "string", Description: "Due date as mentioned, e.g. 'Friday'"},
			},
		},
		{
			Name:        string(KindUpdateTask),
			Description: "Update an existing task's status or assignee. Matches the task by title.",
			Params: []llm.ToolParam{
				{Name: "title", Type: "string", Description: "Title or fragment of the task to update", Required: true},
				{Name: "status", Type: "string", Description: "New status", Enum: []string{"todo", "in_progress", "done"}},
				{Name: "assignee_name", Type: "string", Description: "New assignee"},
			},
		},
		{
			Name:        string(KindListTasks),
			Description: "List the room's tasks, optionally filtered by status.",
			Params: []llm.ToolParam{
				{Name: "status", Type: "string", Description: "Filter", Enum: []string{"todo", "in_progress", "done"}},
			},
		},
		{
			Name:        string(KindSearchWeb),
			Description: "Search the web for current information.",
			Params: []llm.ToolParam{
				{Name: "query", Type: "string", Description: "Search query", Required: true},
			},
		},
		{
			Name:        string(KindTranslate),
			Description: "Translate text into another language.",
			Params: []llm.ToolParam{
				{Name: "text", Type: "string", Description: "Text to translate", Required: true},
				{Name: "target_language", Type: "string", Description: "Language to translate into", Required: true},
			},
		},
		{
			Name:        string(KindSummarize),
			Description: "Summarize the recent conversation in this room.",
			Params: []llm.ToolParam{
				{Name: "last_n", Type: "integer", Description: "How many recent messages to cover"},
			},
		},
		{
			Name:        string(KindReact),
			Description: "Add an emoji reaction to the message being handled.",
			Params: []llm.ToolParam{
				{Name: "emoji", Type: "string", Description: "A single emoji", Required: true},
			},
		},
		{
			Name:        string(KindSearchDocuments),
			Description: "Search the room's uploaded documents for relevant passages.",
			Params: []llm.ToolParam{
				{Name: "query", Type: "string", Description: "Search query", Required: true},
			},
		},
		{
			Name:        string(KindAskDocuments),
			Description: "Answer a question using the room's uploaded documents.",
			Params: []llm.ToolParam{
				{Name: "question", Type: "string", Description: "The question to answer", Required: true},
			},
		},
		{
			Name:        string(KindNoAction),
			Description: "Call when the message needs no action.",
		},
	}
}

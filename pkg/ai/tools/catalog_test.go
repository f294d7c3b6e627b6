package tools

import (
	"testing"

	"ai-rooms-be/pkg/llm"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		fc      *llm.FunctionCall
		want    Kind
		wantErr bool
	}{
		{
			name: "create task with all args",
			fc: &llm.FunctionCall{Name: "create_task", Args: map[string]interface{}{
				"title": "Fix login page", "assignee_name": "bob", "due_date": "Friday",
			}},
			want: KindCreateTask,
		},
		{
			name:    "create task without title",
			fc:      &llm.FunctionCall{Name: "create_task", Args: map[string]interface{}{"assignee_name": "bob"}},
			wantErr: true,
		},
		{
			name: "update task",
			fc: &llm.FunctionCall{Name: "update_task", Args: map[string]interface{}{
				"title": "login", "status": "done",
			}},
			want: KindUpdateTask,
		},
		{
			name:    "update task without title",
			fc:      &llm.FunctionCall{Name: "update_task", Args: map[string]interface{}{"status": "done"}},
			wantErr: true,
		},
		{
			name: "list tasks without filter",
			fc:   &llm.FunctionCall{Name: "list_tasks"},
			want: KindListTasks,
		},
		{
			name:    "search web requires query",
			fc:      &llm.FunctionCall{Name: "search_web", Args: map[string]interface{}{}},
			wantErr: true,
		},
		{
			name: "search web",
			fc:   &llm.FunctionCall{Name: "search_web", Args: map[string]interface{}{"query": "go 1.24 release notes"}},
			want: KindSearchWeb,
		},
		{
			name: "translate",
			fc: &llm.FunctionCall{Name: "translate_text", Args: map[string]interface{}{
				"text": "hello", "target_language": "French",
			}},
			want: KindTranslate,
		},
		{
			name: "summarize with float count",
			fc:   &llm.FunctionCall{Name: "summarize_messages", Args: map[string]interface{}{"last_n": float64(20)}},
			want: KindSummarize,
		},
		{
			name: "react",
			fc:   &llm.FunctionCall{Name: "react_to_message", Args: map[string]interface{}{"emoji": "🎉"}},
			want: KindReact,
		},
		{
			name:    "react without emoji",
			fc:      &llm.FunctionCall{Name: "react_to_message"},
			wantErr: true,
		},
		{
			name: "search documents",
			fc:   &llm.FunctionCall{Name: "search_documents", Args: map[string]interface{}{"query": "pricing"}},
			want: KindSearchDocuments,
		},
		{
			name: "ask documents",
			fc:   &llm.FunctionCall{Name: "ask_documents", Args: map[string]interface{}{"question": "what is the refund window"}},
			want: KindAskDocuments,
		},
		{
			name: "no action",
			fc:   &llm.FunctionCall{Name: "no_action"},
			want: KindNoAction,
		},
		{
			name:    "unknown tool",
			fc:      &llm.FunctionCall{Name: "delete_everything"},
			wantErr: true,
		},
		{
			name:    "nil call",
			fc:      nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, err := Parse(tt.fc)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if call.Kind != tt.want {
				t.Errorf("Kind = %q, want %q", call.Kind, tt.want)
			}
		})
	}
}

func TestParseTypedArgs(t *testing.T) {
	call, err := Parse(&llm.FunctionCall{Name: "create_task", Args: map[string]interface{}{
		"title": "Ship release", "assignee_name": "alice", "due_date": "2026-09-04",
	}})
	if err != nil {
		t.Fatal(err)
	}
	if call.CreateTask == nil {
		t.Fatal("CreateTask args not populated")
	}
	if call.CreateTask.Title != "Ship release" || call.CreateTask.AssigneeName != "alice" || call.CreateTask.DueDate != "2026-09-04" {
		t.Errorf("unexpected args: %+v", call.CreateTask)
	}

	call, err = Parse(&llm.FunctionCall{Name: "summarize_messages", Args: map[string]interface{}{"last_n": float64(15)}})
	if err != nil {
		t.Fatal(err)
	}
	if call.Summarize.LastN != 15 {
		t.Errorf("LastN = %d, want 15", call.Summarize.LastN)
	}
}

func TestCatalogCoversEveryKind(t *testing.T) {
	defs := Catalog()
	byName := map[string]bool{}
	for _, d := range defs {
		byName[d.Name] = true
	}
	for _, kind := range []Kind{
		KindCreateTask, KindUpdateTask, KindListTasks, KindSearchWeb,
		KindTranslate, KindSummarize, KindReact, KindSearchDocuments,
		KindAskDocuments, KindNoAction,
	} {
		if !byName[string(kind)] {
			t.Errorf("catalog missing tool %q", kind)
		}
	}
}

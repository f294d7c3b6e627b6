package executor

import (
	"testing"
	"time"

	"ai-rooms-be/internal/entity"
)

func TestResolveMember(t *testing.T) {
	members := []*entity.Member{
		{Username: "alice"},
		{Username: "Bob"},
	}

	tests := []struct {
		name   string
		needle string
		want   string // expected username, "" means nil
	}{
		{name: "exact match", needle: "alice", want: "alice"},
		{name: "case insensitive", needle: "BOB", want: "Bob"},
		{name: "prefix of username", needle: "ali", want: "alice"},
		{name: "needle contains username", needle: "alice smith", want: "alice"},
		{name: "unknown name", needle: "charlie", want: ""},
		{name: "empty", needle: "", want: ""},
		{name: "whitespace only", needle: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveMember(members, tt.needle)
			if tt.want == "" {
				if got != nil {
					t.Errorf("resolveMember(%q) = %q, want nil", tt.needle, got.Username)
				}
				return
			}
			if got == nil {
				t.Fatalf("resolveMember(%q) = nil, want %q", tt.needle, tt.want)
			}
			if got.Username != tt.want {
				t.Errorf("resolveMember(%q) = %q, want %q", tt.needle, got.Username, tt.want)
			}
		})
	}
}

func TestParseDueDate(t *testing.T) {
	// A Monday.
	now := time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
		want string // "2006-01-02", "" means nil
	}{
		{name: "empty", raw: "", want: ""},
		{name: "today", raw: "today", want: "2026-08-31"},
		{name: "tomorrow", raw: "Tomorrow", want: "2026-09-01"},
		{name: "weekday later this week", raw: "friday", want: "2026-09-04"},
		{name: "same weekday rolls a week", raw: "monday", want: "2026-09-07"},
		{name: "next prefix", raw: "next tuesday", want: "2026-09-01"},
		{name: "by prefix", raw: "by Friday", want: "2026-09-04"},
		{name: "on prefix", raw: "on wednesday", want: "2026-09-02"},
		{name: "iso date", raw: "2026-09-15", want: "2026-09-15"},
		{name: "unparseable", raw: "someday soonish", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDueDate(tt.raw, now)
			if tt.want == "" {
				if got != nil {
					t.Errorf("parseDueDate(%q) = %s, want nil", tt.raw, got.Format("2006-01-02"))
				}
				return
			}
			if got == nil {
				t.Fatalf("parseDueDate(%q) = nil, want %s", tt.raw, tt.want)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("parseDueDate(%q) = %s, want %s", tt.raw, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestFormatTranscript(t *testing.T) {
	messages := []*entity.Message{
		{SenderName: "alice", Content: "first"},
		{SenderName: "bob", Content: "second"},
		{SenderName: "alice", Content: "  "},
		{SenderName: "bob", Content: "third"},
	}

	got := formatTranscript(messages, 0)
	want := "alice: first\nbob: second\nbob: third"
	if got != want {
		t.Errorf("full transcript = %q, want %q", got, want)
	}

	got = formatTranscript(messages, 2)
	want = "bob: third"
	if got != want {
		t.Errorf("last 2 = %q, want %q", got, want)
	}

	if formatTranscript(nil, 5) != "" {
		t.Error("empty input must yield an empty transcript")
	}
}

func TestFormatTasks(t *testing.T) {
	if got := formatTasks(nil); got != "(no tasks)" {
		t.Errorf("empty list = %q", got)
	}

	due := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	tasks := []*entity.Task{
		{Title: "Fix login", Status: "todo"},
		{Title: "Ship release", Status: "in_progress", AssigneeName: "bob", DueDate: &due},
	}
	got := formatTasks(tasks)
	want := "- Fix login [todo]\n- Ship release [in_progress] @bob due 2026-09-04"
	if got != want {
		t.Errorf("formatTasks = %q, want %q", got, want)
	}
}

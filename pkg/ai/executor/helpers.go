package executor

import (
	"fmt"
	"strings"
	"time"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/pkg/rag"
)

// resolveMember matches a spoken name against the roster. Matching is
// case-insensitive substring in either direction; the first hit wins.
func resolveMember(members []*entity.Member, name string) *entity.Member {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}
	for _, m := range members {
		username := strings.ToLower(m.Username)
		if username == "" {
			continue
		}
		if strings.Contains(username, needle) || strings.Contains(needle, username) {
			return m
		}
	}
	return nil
}

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// parseDueDate turns free-form date talk into a concrete date. Unparseable
// input yields nil rather than a wrong guess.
func parseDueDate(raw string, now time.Time) *time.Time {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil
	}

	switch s {
	case "today":
		t := now
		return &t
	case "tomorrow":
		t := now.AddDate(0, 0, 1)
		return &t
	}

	s = strings.TrimPrefix(s, "next ")
	s = strings.TrimPrefix(s, "by ")
	s = strings.TrimPrefix(s, "on ")

	if wd, ok := weekdays[s]; ok {
		days := int(wd-now.Weekday()+7) % 7
		if days == 0 {
			days = 7
		}
		t := now.AddDate(0, 0, days)
		return &t
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	return nil
}

func formatTasks(tasks []*entity.Task) string {
	if len(tasks) == 0 {
		return "(no tasks)"
	}
	var b strings.Builder
	for _, t := range tasks {
		line := fmt.Sprintf("- %s [%s]", t.Title, t.Status)
		if t.AssigneeName != "" {
			line += " @" + t.AssigneeName
		}
		if t.DueDate != nil {
			line += " due " + t.DueDate.Format("2006-01-02")
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

// formatTranscript renders the newest lastN messages as "name: content"
// lines, oldest first. lastN <= 0 means all.
func formatTranscript(messages []*entity.Message, lastN int) string {
	if lastN > 0 && lastN < len(messages) {
		messages = messages[len(messages)-lastN:]
	}
	var lines []string
	for _, m := range messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", m.SenderName, m.Content))
	}
	return strings.Join(lines, "\n")
}

func formatSnippets(found []rag.ScoredChunk) string {
	if len(found) == 0 {
		return "(no matching passages)"
	}
	var b strings.Builder
	for i, sc := range found {
		fmt.Fprintf(&b, "[%d] (page %d) %s\n", i+1, sc.Chunk.PageNumber, sc.Chunk.Content)
	}
	return strings.TrimSpace(b.String())
}

package rag

import (
	"strings"
	"testing"
)

func TestSplitShortText(t *testing.T) {
	chunks := Split("hello world", 1000, 200)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "hello world" {
		t.Errorf("unexpected chunk content: %q", chunks[0])
	}
}

func TestSplitEmpty(t *testing.T) {
	if got := Split("", 1000, 200); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := Split("   \n  ", 1000, 200); got != nil {
		t.Errorf("expected nil for whitespace input, got %v", got)
	}
}

func TestSplitPrefersSentenceBoundary(t *testing.T) {
	// First sentence ends within the boundary window of the cut point, so
	// the first chunk should end exactly at that sentence.
	first := strings.Repeat("a", 60) + ". "
	second := strings.Repeat("b", 100)
	chunks := Split(first+second, 100, 10)

	if len(chunks) < 2 {
		t.Fatalf("expected at least 2 chunks, got %d", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk should end at the sentence boundary, got %q", chunks[0])
	}
	if strings.Contains(chunks[0], "b") {
		t.Errorf("first chunk leaked into the second sentence: %q", chunks[0])
	}
}

func TestSplitHardCutWithoutBoundary(t *testing.T) {
	text := strings.Repeat("x", 250)
	chunks := Split(text, 100, 20)

	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks, got %d", len(chunks))
	}
	if len(chunks[0]) != 100 {
		t.Errorf("expected a hard cut at chunkSize, got len %d", len(chunks[0]))
	}
}

func TestSplitOverlapCarriesContext(t *testing.T) {
	text := strings.Repeat("y", 300)
	chunks := Split(text, 100, 20)

	for i := 1; i < len(chunks); i++ {
		prevTail := chunks[i-1][len(chunks[i-1])-20:]
		if !strings.HasPrefix(chunks[i], prevTail) {
			t.Errorf("chunk %d does not start with previous chunk's tail", i)
		}
	}
}

func TestSplitCoversAllContent(t *testing.T) {
	text := strings.Repeat("word ", 500)
	chunks := Split(text, DefaultChunkSize, DefaultChunkOverlap)

	var joined strings.Builder
	for _, c := range chunks {
		joined.WriteString(c)
	}
	// Every chunk is non-empty and the last chunk ends where the text does.
	for i, c := range chunks {
		if strings.TrimSpace(c) == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(strings.TrimSpace(text), last) {
		t.Errorf("last chunk does not end at the end of the text")
	}
}

func TestSplitDegenerateParams(t *testing.T) {
	text := strings.Repeat("z", 3000)

	// Invalid sizes fall back to defaults instead of looping forever.
	chunks := Split(text, 0, -5)
	if len(chunks) == 0 {
		t.Fatal("expected chunks with fallback parameters")
	}

	// Overlap >= chunkSize would never advance; it must also fall back.
	chunks = Split(text, 100, 100)
	if len(chunks) == 0 {
		t.Fatal("expected chunks when overlap >= chunkSize")
	}
}

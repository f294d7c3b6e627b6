package rag

import "strings"

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200

	// boundaryWindow is how far back from the cut point a sentence or word
	// boundary may be and still be preferred over a hard cut.
	boundaryWindow = 100
)

// Separators tried in order of preference when looking for a cut point.
var chunkSeparators = []string{". ", ".\n", "\n\n", "\n", " "}

// Split cuts text into overlapping chunks of roughly chunkSize characters.
// When a separator falls inside the final boundaryWindow characters of a
// chunk, the cut moves back to it so words and sentences stay intact.
func Split(text string, chunkSize, overlap int) []string {
	runes := []rune(text)
	total := len(runes)
	if total == 0 {
		return nil
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = DefaultChunkOverlap
	}
	if total <= chunkSize {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	var chunks []string
	start := 0
	for start < total {
		end := start + chunkSize
		if end < total {
			lo := end - boundaryWindow
			if lo < start {
				lo = start
			}
			for _, sep := range chunkSeparators {
				sepRunes := []rune(sep)
				if idx := lastIndexRunes(runes, sepRunes, lo, end); idx > start {
					end = idx + len(sepRunes)
					break
				}
			}
		} else {
			end = total
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end >= total {
			break
		}
		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// lastIndexRunes finds the last occurrence of sep starting in [lo, hi-len(sep)].
func lastIndexRunes(runes, sep []rune, lo, hi int) int {
	for i := hi - len(sep); i >= lo; i-- {
		match := true
		for j := range sep {
			if runes[i+j] != sep[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// Package classifier decides whether the assistant should handle a message
// at all. Cheap deterministic rules run first; the model is only consulted
// for messages the rules cannot settle.
package classifier

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"ai-rooms-be/internal/constant"
	"ai-rooms-be/internal/pkg/logger"
	"ai-rooms-be/pkg/gateway"
	"ai-rooms-be/pkg/llm"
)

type Classifier interface {
	// ShouldRespond reports whether the assistant should act on the message.
	// It fails closed: if the model fallback errors, the answer is no.
	ShouldRespond(ctx context.Context, senderName, message string, recentMessages []string) bool
}

type responseClassifier struct {
	gateway       gateway.Gateway
	assistantName string
	logger        logger.ILogger
}

func New(gw gateway.Gateway, assistantName string, log logger.ILogger) Classifier {
	return &responseClassifier{
		gateway:       gw,
		assistantName: assistantName,
		logger:        log,
	}
}

func (c *responseClassifier) ShouldRespond(ctx context.Context, senderName, message string, recentMessages []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return false
	}

	// Rule 1: the assistant is addressed directly. Aliases match only on
	// word boundaries, so "again" or "email" is not a mention of "ai",
	// while "@veya" and "hey veya!" are.
	if hasWord(normalized, strings.ToLower(c.assistantName)) {
		return true
	}
	for _, mention := range constant.AIMentions {
		if hasWord(normalized, mention) {
			return true
		}
	}

	// Rule 2: task bookkeeping intent.
	for _, phrase := range constant.TaskIntentPhrases {
		if hasWord(normalized, phrase) {
			return true
		}
	}

	// Rule 3: slash commands always go to the assistant.
	if strings.HasPrefix(normalized, "/") {
		return true
	}

	// Rule 4: explicit questions carry a literal question mark. Bare
	// question words ("when", "what") are everyday chatter and fall
	// through to the model.
	if strings.Contains(normalized, "?") {
		return true
	}

	// Very short messages with no rule hit are ambient chatter. This path
	// must stay model-free.
	if len(strings.Fields(normalized)) < 3 {
		return false
	}

	return c.askModel(ctx, senderName, message, recentMessages)
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// hasWord reports whether phrase occurs in s with non-word characters (or
// the string edge) on both sides.
func hasWord(s, phrase string) bool {
	if phrase == "" {
		return false
	}
	for from := 0; ; from++ {
		i := strings.Index(s[from:], phrase)
		if i < 0 {
			return false
		}
		from += i
		end := from + len(phrase)

		boundedLeft := from == 0
		if !boundedLeft {
			r, _ := utf8.DecodeLastRuneInString(s[:from])
			boundedLeft = !isWordChar(r)
		}
		boundedRight := end == len(s)
		if !boundedRight {
			r, _ := utf8.DecodeRuneInString(s[end:])
			boundedRight = !isWordChar(r)
		}
		if boundedLeft && boundedRight {
			return true
		}
	}
}

func (c *responseClassifier) askModel(ctx context.Context, senderName, message string, recentMessages []string) bool {
	contextBlock := "(no recent messages)"
	if len(recentMessages) > 0 {
		contextBlock = strings.Join(recentMessages, "\n")
	}

	prompt := fmt.Sprintf(constant.ShouldRespondPromptV1, c.assistantName, contextBlock, senderName, message)
	reply, err := c.gateway.Generate(ctx, prompt, llm.WithTemperature(0))
	if err != nil {
		c.logger.Warn("Classifier", "Model fallback failed, staying silent", map[string]interface{}{
			"error": err.Error(),
		})
		return false
	}

	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(reply)), "y")
}

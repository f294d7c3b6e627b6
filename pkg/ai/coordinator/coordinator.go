// Package coordinator wires the pipeline phases together: classify, gather
// context, run silent tools, then decide whether a text reply is owed.
package coordinator

import (
	"context"
	"strings"

	"ai-rooms-be/internal/constant"
	"ai-rooms-be/internal/pkg/logger"
	"ai-rooms-be/pkg/ai/classifier"
	"ai-rooms-be/pkg/ai/executor"
	"ai-rooms-be/pkg/ai/responder"
	"ai-rooms-be/pkg/ai/roomctx"
	"ai-rooms-be/pkg/gateway"

	"github.com/google/uuid"
)

// Outcome is what one pipeline run produced. A nil Outcome means the
// assistant stays silent entirely.
type Outcome struct {
	Reply         string // empty when the reply was suppressed
	Reaction      string
	ToolsExecuted []executor.ToolEvent
	ToolData      map[string]interface{}
}

type PipelineCoordinator struct {
	gateway    gateway.Gateway
	classifier classifier.Classifier
	assembler  roomctx.Assembler
	executor   executor.Executor
	responder  responder.Responder
	logger     logger.ILogger
}

// New returns nil when the gateway has no credentials; callers treat a nil
// coordinator as "no AI teammate in this deployment".
func New(gw gateway.Gateway, cls classifier.Classifier, asm roomctx.Assembler, exec executor.Executor, rsp responder.Responder, log logger.ILogger) *PipelineCoordinator {
	if gw == nil || !gw.Configured() {
		return nil
	}
	return &PipelineCoordinator{
		gateway:    gw,
		classifier: cls,
		assembler:  asm,
		executor:   exec,
		responder:  rsp,
		logger:     log,
	}
}

// HandleMessage runs the full pipeline for one inbound room message. The
// classifier sees only the recent transcript; the full context, including
// the embedding-backed snippet search, is gathered after a positive verdict
// so declined messages cost no gateway traffic. The tool phase always
// completes before the responder starts.
func (c *PipelineCoordinator) HandleMessage(ctx context.Context, roomId uuid.UUID, senderName, content, replyToContent string) *Outcome {
	recentLines := c.assembler.RecentTranscript(ctx, roomId)

	if !c.classifier.ShouldRespond(ctx, senderName, content, recentLines) {
		c.logger.Debug("Coordinator", "Message does not call for a response", map[string]interface{}{
			"room_id": roomId.String(),
		})
		return nil
	}

	rc := c.assembler.Gather(ctx, roomId, content)
	res := c.executor.Execute(ctx, roomId, rc, senderName, content)

	outcome := &Outcome{
		Reaction:      res.Reaction,
		ToolsExecuted: res.ToolsExecuted,
		ToolData:      res.ToolData,
	}

	if !c.textRequired(res, content) {
		c.logger.Info("Coordinator", "Reply suppressed, reaction covers it", map[string]interface{}{
			"room_id":  roomId.String(),
			"reaction": res.Reaction,
		})
		return outcome
	}

	outcome.Reply = c.responder.Respond(ctx, rc, senderName, content, replyToContent, res)
	return outcome
}

// textRequired implements the reply decision, first match wins: a run whose
// sole effect was reacting needs no words on top; gathered data must be
// surfaced; task changes must be acknowledged; questions and mentions get an
// answer; everything else that passed the classifier gets a reply too.
func (c *PipelineCoordinator) textRequired(res *executor.Result, content string) bool {
	if res.Reaction != "" && len(res.ToolsExecuted) == 0 && len(res.ToolData) == 0 {
		return false
	}
	if len(res.ToolData) > 0 {
		return true
	}
	if len(res.ToolsExecuted) > 0 {
		return true
	}
	normalized := strings.ToLower(content)
	if strings.Contains(normalized, "?") {
		return true
	}
	for _, word := range constant.QuestionTriggerWords {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return true
}

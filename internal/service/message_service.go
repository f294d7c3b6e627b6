package service

import (
	"context"
	"time"

	"ai-rooms-be/internal/constant"
	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/pkg/logger"
	"ai-rooms-be/internal/repository/specification"
	"ai-rooms-be/internal/repository/unitofwork"
	"ai-rooms-be/pkg/ai/coordinator"
	"ai-rooms-be/pkg/events"
	pktNats "ai-rooms-be/pkg/nats"

	"github.com/google/uuid"
)

// pipelineTimeout bounds one background AI run; the posting request never
// waits on it.
const pipelineTimeout = 2 * time.Minute

// RoomBroadcaster pushes room events to connected websocket clients.
type RoomBroadcaster interface {
	BroadcastToRoom(roomID uuid.UUID, eventType string, payload interface{})
}

type IMessageService interface {
	Create(ctx context.Context, req *dto.CreateMessageRequest) (*dto.MessageResponse, error)
	List(ctx context.Context, roomId uuid.UUID, limit int) ([]*dto.MessageResponse, error)
	AddReaction(ctx context.Context, req *dto.AddReactionRequest) (*dto.ReactionResponse, error)
}

type messageService struct {
	uowFactory     unitofwork.RepositoryFactory
	coordinator    *coordinator.PipelineCoordinator
	hub            RoomBroadcaster
	eventPublisher *pktNats.Publisher
	assistantName  string
	logger         logger.ILogger
}

func NewMessageService(
	uowFactory unitofwork.RepositoryFactory,
	pipeline *coordinator.PipelineCoordinator,
	hub RoomBroadcaster,
	eventPublisher *pktNats.Publisher,
	assistantName string,
	log logger.ILogger,
) IMessageService {
	return &messageService{
		uowFactory:     uowFactory,
		coordinator:    pipeline,
		hub:            hub,
		eventPublisher: eventPublisher,
		assistantName:  assistantName,
		logger:         log,
	}
}

func (s *messageService) Create(ctx context.Context, req *dto.CreateMessageRequest) (*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	senderId := req.SenderId
	msg := entity.Message{
		Id:         uuid.New(),
		RoomId:     req.RoomId,
		SenderId:   &senderId,
		SenderName: req.SenderName,
		SenderKind: constant.SenderKindUser,
		Content:    req.Content,
		ReplyToId:  req.ReplyToId,
		CreatedAt:  time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &msg); err != nil {
		return nil, err
	}

	replyToContent := ""
	if req.ReplyToId != nil {
		parent, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: *req.ReplyToId})
		if err == nil && parent != nil {
			replyToContent = parent.Content
		}
	}

	res := toMessageResponse(&msg)

	if s.hub != nil {
		s.hub.BroadcastToRoom(req.RoomId, "message_created", res)
	}
	s.publishMessageEvent(ctx, "MESSAGE_CREATED", &msg)

	// The AI teammate runs after the human message is already stored and
	// broadcast; its reply arrives as a separate room event.
	if s.coordinator != nil {
		go s.runPipeline(msg, replyToContent)
	}

	return res, nil
}

func (s *messageService) runPipeline(msg entity.Message, replyToContent string) {
	ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
	defer cancel()

	outcome := s.coordinator.HandleMessage(ctx, msg.RoomId, msg.SenderName, msg.Content, replyToContent)
	if outcome == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	if outcome.Reaction != "" {
		reaction := entity.Reaction{
			Id:        uuid.New(),
			MessageId: msg.Id,
			ActorKind: constant.SenderKindAI,
			Emoji:     outcome.Reaction,
			CreatedAt: time.Now(),
		}
		if err := uow.MessageRepository().AddReaction(ctx, &reaction); err != nil {
			s.logger.Error("MessageService", "Failed to persist AI reaction", map[string]interface{}{
				"message_id": msg.Id,
				"error":      err.Error(),
			})
		} else if s.hub != nil {
			s.hub.BroadcastToRoom(msg.RoomId, "reaction_added", &dto.ReactionResponse{
				Id:        reaction.Id,
				ActorKind: reaction.ActorKind,
				Emoji:     reaction.Emoji,
			})
		}
	}

	if outcome.Reply == "" {
		return
	}

	reply := entity.Message{
		Id:         uuid.New(),
		RoomId:     msg.RoomId,
		SenderName: s.assistantName,
		SenderKind: constant.SenderKindAI,
		Content:    outcome.Reply,
		ReplyToId:  &msg.Id,
		ToolData:   outcome.ToolData,
		CreatedAt:  time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &reply); err != nil {
		s.logger.Error("MessageService", "Failed to persist AI reply", map[string]interface{}{
			"room_id": msg.RoomId,
			"error":   err.Error(),
		})
		return
	}

	if s.hub != nil {
		s.hub.BroadcastToRoom(msg.RoomId, "message_created", toMessageResponse(&reply))
	}
	s.publishMessageEvent(ctx, "AI_REPLIED", &reply)
}

func (s *messageService) List(ctx context.Context, roomId uuid.UUID, limit int) ([]*dto.MessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if limit <= 0 {
		limit = 50
	}
	messages, err := uow.MessageRepository().FindRecentByRoomId(ctx, roomId, limit)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, toMessageResponse(m))
	}
	return res, nil
}

func (s *messageService) AddReaction(ctx context.Context, req *dto.AddReactionRequest) (*dto.ReactionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	msg, err := uow.MessageRepository().FindOne(ctx, specification.ByID{ID: req.MessageId})
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, nil
	}

	actorId := req.ActorId
	reaction := entity.Reaction{
		Id:        uuid.New(),
		MessageId: req.MessageId,
		ActorId:   &actorId,
		ActorKind: constant.SenderKindUser,
		Emoji:     req.Emoji,
		CreatedAt: time.Now(),
	}
	if err := uow.MessageRepository().AddReaction(ctx, &reaction); err != nil {
		return nil, err
	}

	res := &dto.ReactionResponse{
		Id:        reaction.Id,
		ActorKind: reaction.ActorKind,
		Emoji:     reaction.Emoji,
	}
	if s.hub != nil {
		s.hub.BroadcastToRoom(msg.RoomId, "reaction_added", res)
	}
	return res, nil
}

func (s *messageService) publishMessageEvent(ctx context.Context, eventType string, msg *entity.Message) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"message_id":  msg.Id,
			"room_id":     msg.RoomId,
			"sender_kind": msg.SenderKind,
		},
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("MessageService", "Failed to publish event", map[string]interface{}{
			"type":  eventType,
			"error": err.Error(),
		})
	}
}

func toMessageResponse(m *entity.Message) *dto.MessageResponse {
	reactions := make([]dto.ReactionResponse, 0, len(m.Reactions))
	for _, r := range m.Reactions {
		reactions = append(reactions, dto.ReactionResponse{
			Id:        r.Id,
			ActorKind: r.ActorKind,
			Emoji:     r.Emoji,
		})
	}
	return &dto.MessageResponse{
		Id:         m.Id,
		RoomId:     m.RoomId,
		SenderId:   m.SenderId,
		SenderName: m.SenderName,
		SenderKind: m.SenderKind,
		Content:    m.Content,
		ReplyToId:  m.ReplyToId,
		ToolData:   m.ToolData,
		Reactions:  reactions,
		CreatedAt:  m.CreatedAt,
	}
}

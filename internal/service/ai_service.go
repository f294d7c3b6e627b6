package service

import (
	"context"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/repository/specification"
	"ai-rooms-be/internal/repository/unitofwork"
	"ai-rooms-be/pkg/ai/roomctx"

	"github.com/google/uuid"
)

// aiContextStore adapts the repository layer to what the AI context
// assembler reads.
type aiContextStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewAiContextStore(uowFactory unitofwork.RepositoryFactory) roomctx.Store {
	return &aiContextStore{uowFactory: uowFactory}
}

func (s *aiContextStore) FindRoom(ctx context.Context, roomId uuid.UUID) (*entity.Room, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.RoomRepository().FindOne(ctx, specification.ByID{ID: roomId})
}

func (s *aiContextStore) FindMembers(ctx context.Context, roomId uuid.UUID) ([]*entity.Member, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MemberRepository().FindAll(ctx, specification.ByRoomID{RoomID: roomId})
}

func (s *aiContextStore) FindRecentMessages(ctx context.Context, roomId uuid.UUID, limit int) ([]*entity.Message, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.MessageRepository().FindRecentByRoomId(ctx, roomId, limit)
}

func (s *aiContextStore) FindOpenTasks(ctx context.Context, roomId uuid.UUID) ([]*entity.Task, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.TaskRepository().FindAll(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.OpenTasks{},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
}

func (s *aiContextStore) FindGoals(ctx context.Context, roomId uuid.UUID) ([]*entity.Goal, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.GoalRepository().FindAll(ctx, specification.ByRoomID{RoomID: roomId})
}

func (s *aiContextStore) FindKnowledge(ctx context.Context, roomId uuid.UUID) (*entity.KnowledgeBase, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.KnowledgeRepository().FindByRoomId(ctx, roomId)
}

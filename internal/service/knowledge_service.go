package service

import (
	"context"
	"time"

	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IKnowledgeService interface {
	Upsert(ctx context.Context, req *dto.UpsertKnowledgeRequest) (*dto.KnowledgeResponse, error)
	Show(ctx context.Context, roomId uuid.UUID) (*dto.KnowledgeResponse, error)
}

type knowledgeService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewKnowledgeService(uowFactory unitofwork.RepositoryFactory) IKnowledgeService {
	return &knowledgeService{uowFactory: uowFactory}
}

func (s *knowledgeService) Upsert(ctx context.Context, req *dto.UpsertKnowledgeRequest) (*dto.KnowledgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	now := time.Now()
	kb := entity.KnowledgeBase{
		Id:           uuid.New(),
		RoomId:       req.RoomId,
		Summary:      req.Summary,
		KeyDecisions: req.KeyDecisions,
		CreatedAt:    now,
		UpdatedAt:    &now,
	}
	if err := uow.KnowledgeRepository().Upsert(ctx, &kb); err != nil {
		return nil, err
	}

	return &dto.KnowledgeResponse{
		RoomId:       kb.RoomId,
		Summary:      kb.Summary,
		KeyDecisions: kb.KeyDecisions,
		UpdatedAt:    kb.UpdatedAt,
	}, nil
}

func (s *knowledgeService) Show(ctx context.Context, roomId uuid.UUID) (*dto.KnowledgeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	kb, err := uow.KnowledgeRepository().FindByRoomId(ctx, roomId)
	if err != nil {
		return nil, err
	}
	if kb == nil {
		return nil, nil
	}

	return &dto.KnowledgeResponse{
		RoomId:       kb.RoomId,
		Summary:      kb.Summary,
		KeyDecisions: kb.KeyDecisions,
		UpdatedAt:    kb.UpdatedAt,
	}, nil
}

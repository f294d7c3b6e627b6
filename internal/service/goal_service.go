package service

import (
	"context"
	"time"

	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/repository/specification"
	"ai-rooms-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IGoalService interface {
	Create(ctx context.Context, req *dto.CreateGoalRequest) (*dto.GoalResponse, error)
	List(ctx context.Context, roomId uuid.UUID) ([]*dto.GoalResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type goalService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewGoalService(uowFactory unitofwork.RepositoryFactory) IGoalService {
	return &goalService{uowFactory: uowFactory}
}

func (s *goalService) Create(ctx context.Context, req *dto.CreateGoalRequest) (*dto.GoalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	goal := entity.Goal{
		Id:        uuid.New(),
		RoomId:    req.RoomId,
		Content:   req.Content,
		Priority:  req.Priority,
		CreatedAt: time.Now(),
	}
	if err := uow.GoalRepository().Create(ctx, &goal); err != nil {
		return nil, err
	}

	return &dto.GoalResponse{
		Id:       goal.Id,
		Content:  goal.Content,
		Priority: goal.Priority,
	}, nil
}

func (s *goalService) List(ctx context.Context, roomId uuid.UUID) ([]*dto.GoalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	goals, err := uow.GoalRepository().FindAll(ctx, specification.ByRoomID{RoomID: roomId})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.GoalResponse, 0, len(goals))
	for _, g := range goals {
		res = append(res, &dto.GoalResponse{
			Id:       g.Id,
			Content:  g.Content,
			Priority: g.Priority,
		})
	}
	return res, nil
}

func (s *goalService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.GoalRepository().Delete(ctx, id)
}

package service

import (
	"context"
	"fmt"
	"time"

	"ai-rooms-be/internal/constant"
	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/repository/specification"
	"ai-rooms-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type ITaskService interface {
	Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	Update(ctx context.Context, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	List(ctx context.Context, roomId uuid.UUID, status string) ([]*dto.TaskResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Tool-facing operations. The AI executor drives these with entities it
	// resolved from the room roster instead of request DTOs.
	CreateTask(ctx context.Context, roomId uuid.UUID, title string, assignee *entity.Member, dueDate *time.Time, createdBy string) (*entity.Task, error)
	UpdateTask(ctx context.Context, roomId uuid.UUID, titleFragment string, status string, assignee *entity.Member) (*entity.Task, error)
	ListTasks(ctx context.Context, roomId uuid.UUID, status string) ([]*entity.Task, error)
}

type taskService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewTaskService(uowFactory unitofwork.RepositoryFactory) ITaskService {
	return &taskService{uowFactory: uowFactory}
}

func (s *taskService) Create(ctx context.Context, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var assignee *entity.Member
	if req.AssigneeName != "" {
		members, err := uow.MemberRepository().FindAll(ctx, specification.ByRoomID{RoomID: req.RoomId})
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if m.Username == req.AssigneeName {
				assignee = m
				break
			}
		}
	}

	task, err := s.CreateTask(ctx, req.RoomId, req.Title, assignee, req.DueDate, "")
	if err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *taskService) Update(ctx context.Context, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := uow.TaskRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, nil
	}

	now := time.Now()
	if req.Title != "" {
		task.Title = req.Title
	}
	if req.Status != "" {
		task.Status = req.Status
	}
	if req.AssigneeName != "" {
		task.AssigneeName = req.AssigneeName
	}
	task.UpdatedAt = &now

	if err := uow.TaskRepository().Update(ctx, task); err != nil {
		return nil, err
	}
	return toTaskResponse(task), nil
}

func (s *taskService) List(ctx context.Context, roomId uuid.UUID, status string) ([]*dto.TaskResponse, error) {
	tasks, err := s.ListTasks(ctx, roomId, status)
	if err != nil {
		return nil, err
	}
	res := make([]*dto.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, toTaskResponse(t))
	}
	return res, nil
}

func (s *taskService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.TaskRepository().Delete(ctx, id)
}

func (s *taskService) CreateTask(ctx context.Context, roomId uuid.UUID, title string, assignee *entity.Member, dueDate *time.Time, createdBy string) (*entity.Task, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task := entity.Task{
		Id:        uuid.New(),
		RoomId:    roomId,
		Title:     title,
		Status:    constant.TaskStatusTodo,
		DueDate:   dueDate,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	if assignee != nil {
		task.AssigneeId = &assignee.UserId
		task.AssigneeName = assignee.Username
	}

	if err := uow.TaskRepository().Create(ctx, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, roomId uuid.UUID, titleFragment string, status string, assignee *entity.Member) (*entity.Task, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	task, err := uow.TaskRepository().FindByTitleLike(ctx, roomId, titleFragment)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("no task matching %q in this room", titleFragment)
	}

	now := time.Now()
	if status != "" {
		task.Status = status
	}
	if assignee != nil {
		task.AssigneeId = &assignee.UserId
		task.AssigneeName = assignee.Username
	}
	task.UpdatedAt = &now

	if err := uow.TaskRepository().Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, roomId uuid.UUID, status string) ([]*entity.Task, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ByRoomID{RoomID: roomId},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if status != "" {
		specs = append(specs, specification.ByStatus{Status: status})
	}

	return uow.TaskRepository().FindAll(ctx, specs...)
}

func toTaskResponse(t *entity.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		Id:           t.Id,
		Title:        t.Title,
		Status:       t.Status,
		AssigneeName: t.AssigneeName,
		DueDate:      t.DueDate,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
	}
}

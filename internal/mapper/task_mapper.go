package mapper

import (
	"time"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/model"

	"gorm.io/gorm"
)

type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

func (m *TaskMapper) ToEntity(t *model.Task) *entity.Task {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		ts := t.DeletedAt.Time
		deletedAt = &ts
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		ts := t.UpdatedAt
		updatedAt = &ts
	}

	return &entity.Task{
		Id:           t.Id,
		RoomId:       t.RoomId,
		Title:        t.Title,
		Status:       t.Status,
		AssigneeId:   t.AssigneeId,
		AssigneeName: t.AssigneeName,
		DueDate:      t.DueDate,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    t.DeletedAt.Valid,
	}
}

func (m *TaskMapper) ToModel(t *entity.Task) *model.Task {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	} else if t.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Task{
		Id:           t.Id,
		RoomId:       t.RoomId,
		Title:        t.Title,
		Status:       t.Status,
		AssigneeId:   t.AssigneeId,
		AssigneeName: t.AssigneeName,
		DueDate:      t.DueDate,
		CreatedBy:    t.CreatedBy,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    updatedAt,
		DeletedAt:    deletedAt,
	}
}

func (m *TaskMapper) ToEntities(tasks []*model.Task) []*entity.Task {
	entities := make([]*entity.Task, len(tasks))
	for i, t := range tasks {
		entities[i] = m.ToEntity(t)
	}
	return entities
}

func (m *TaskMapper) GoalToEntity(g *model.Goal) *entity.Goal {
	if g == nil {
		return nil
	}

	var updatedAt *time.Time
	if !g.UpdatedAt.IsZero() {
		ts := g.UpdatedAt
		updatedAt = &ts
	}

	return &entity.Goal{
		Id:        g.Id,
		RoomId:    g.RoomId,
		Content:   g.Content,
		Priority:  g.Priority,
		CreatedAt: g.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *TaskMapper) GoalToModel(g *entity.Goal) *model.Goal {
	if g == nil {
		return nil
	}

	var updatedAt time.Time
	if g.UpdatedAt != nil {
		updatedAt = *g.UpdatedAt
	}

	return &model.Goal{
		Id:        g.Id,
		RoomId:    g.RoomId,
		Content:   g.Content,
		Priority:  g.Priority,
		CreatedAt: g.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *TaskMapper) GoalsToEntities(goals []*model.Goal) []*entity.Goal {
	entities := make([]*entity.Goal, len(goals))
	for i, g := range goals {
		entities[i] = m.GoalToEntity(g)
	}
	return entities
}

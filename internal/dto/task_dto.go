package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	RoomId       uuid.UUID
	Title        string     `json:"title" validate:"required"`
	AssigneeName string     `json:"assignee_name"`
	DueDate      *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Id           uuid.UUID
	Title        string `json:"title"`
	Status       string `json:"status" validate:"omitempty,oneof=todo in_progress done"`
	AssigneeName string `json:"assignee_name"`
}

type TaskResponse struct {
	Id           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreatedBy    string     `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type CreateGoalRequest struct {
	RoomId   uuid.UUID
	Content  string `json:"content" validate:"required"`
	Priority int    `json:"priority"`
}

type GoalResponse struct {
	Id       uuid.UUID `json:"id"`
	Content  string    `json:"content"`
	Priority int       `json:"priority"`
}

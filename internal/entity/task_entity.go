package entity

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomId       uuid.UUID `gorm:"type:uuid;index"`
	Title        string
	Status       string // todo | in_progress | done
	AssigneeId   *uuid.UUID
	AssigneeName string
	DueDate      *time.Time
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}

type Goal struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomId    uuid.UUID `gorm:"type:uuid;index"`
	Content   string
	Priority  int
	CreatedAt time.Time
	UpdatedAt *time.Time
}

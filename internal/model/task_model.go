package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Task struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title        string         `gorm:"type:varchar(255);not null"`
	Status       string         `gorm:"type:varchar(20);not null;default:'todo'"`
	AssigneeId   *uuid.UUID     `gorm:"type:uuid;index"`
	AssigneeName string         `gorm:"type:varchar(100)"`
	DueDate      *time.Time     `gorm:"index"`
	CreatedBy    string         `gorm:"type:varchar(100)"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Task) TableName() string {
	return "tasks"
}

type Goal struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomId    uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:text;not null"`
	Priority  int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Goal) TableName() string {
	return "goals"
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeBase struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomId       uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Summary      string
	KeyDecisions []string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

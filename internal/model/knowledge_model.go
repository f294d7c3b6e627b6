package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type KnowledgeBase struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomId       uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Summary      string         `gorm:"type:text"`
	KeyDecisions datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (KnowledgeBase) TableName() string {
	return "knowledge_bases"
}

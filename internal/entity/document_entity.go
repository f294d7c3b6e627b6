package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomId     uuid.UUID `gorm:"type:uuid;index"`
	Filename   string
	Summary    string
	ChunkCount int
	UploadedBy *uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

type DocumentChunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DocumentId uuid.UUID `gorm:"type:uuid;index"`
	RoomId     uuid.UUID `gorm:"type:uuid;index"`
	Content    string
	Embedding  []float32
	ChunkIndex int
	PageNumber int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

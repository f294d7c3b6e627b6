package entity

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomId     uuid.UUID `gorm:"type:uuid;index"`
	SenderId   *uuid.UUID
	SenderName string
	SenderKind string // user | ai | system, fixed at write time
	Content    string
	ReplyToId  *uuid.UUID
	ToolData   map[string]interface{}
	Reactions  []Reaction
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

type Reaction struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MessageId uuid.UUID `gorm:"type:uuid;index"`
	ActorId   *uuid.UUID
	ActorKind string
	Emoji     string
	CreatedAt time.Time
}

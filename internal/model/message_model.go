package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Message struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	SenderId   *uuid.UUID     `gorm:"type:uuid;index"` // nil for the AI teammate
	SenderName string         `gorm:"type:varchar(100);not null"`
	SenderKind string         `gorm:"type:varchar(10);not null;default:'user'"`
	Content    string         `gorm:"type:text"`
	ReplyToId  *uuid.UUID     `gorm:"type:uuid"`
	ToolData   datatypes.JSON `gorm:"type:jsonb"`
	Reactions  []Reaction     `gorm:"foreignKey:MessageId"`
	CreatedAt  time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Message) TableName() string {
	return "messages"
}

type Reaction struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MessageId uuid.UUID  `gorm:"type:uuid;not null;index"`
	ActorId   *uuid.UUID `gorm:"type:uuid"`
	ActorKind string     `gorm:"type:varchar(10);not null;default:'user'"`
	Emoji     string     `gorm:"type:varchar(32);not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (Reaction) TableName() string {
	return "reactions"
}

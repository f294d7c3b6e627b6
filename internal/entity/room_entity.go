package entity

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	Directives string
	OwnerId    uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}

type Member struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoomId    uuid.UUID `gorm:"type:uuid;index"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	Username  string
	Role      string
	CreatedAt time.Time
}

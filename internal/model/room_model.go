package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Room struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string         `gorm:"type:varchar(255);not null"`
	Directives string         `gorm:"type:text"`
	OwnerId    uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Room) TableName() string {
	return "rooms"
}

type Member struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomId    uuid.UUID `gorm:"type:uuid;not null;index:idx_members_room_user,unique"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;index:idx_members_room_user,unique"`
	Username  string    `gorm:"type:varchar(100);not null"`
	Role      string    `gorm:"type:varchar(50);default:'member'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Member) TableName() string {
	return "members"
}

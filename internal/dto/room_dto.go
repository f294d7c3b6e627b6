package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name       string    `json:"name" validate:"required"`
	Directives string    `json:"directives"`
	OwnerId    uuid.UUID `json:"owner_id" validate:"required"`
	OwnerName  string    `json:"owner_name" validate:"required"`
}

type CreateRoomResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateRoomRequest struct {
	Id         uuid.UUID
	Name       string `json:"name" validate:"required"`
	Directives string `json:"directives"`
}

type RoomResponse struct {
	Id         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Directives string     `json:"directives"`
	OwnerId    uuid.UUID  `json:"owner_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type AddMemberRequest struct {
	RoomId   uuid.UUID
	UserId   uuid.UUID `json:"user_id" validate:"required"`
	Username string    `json:"username" validate:"required"`
	Role     string    `json:"role"`
}

type MemberResponse struct {
	Id       uuid.UUID `json:"id"`
	UserId   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMessageRequest struct {
	RoomId     uuid.UUID
	SenderId   uuid.UUID  `json:"sender_id" validate:"required"`
	SenderName string     `json:"sender_name" validate:"required"`
	Content    string     `json:"content" validate:"required"`
	ReplyToId  *uuid.UUID `json:"reply_to_id"`
}

type ReactionResponse struct {
	Id        uuid.UUID `json:"id"`
	ActorKind string    `json:"actor_kind"`
	Emoji     string    `json:"emoji"`
}

type MessageResponse struct {
	Id         uuid.UUID              `json:"id"`
	RoomId     uuid.UUID              `json:"room_id"`
	SenderId   *uuid.UUID             `json:"sender_id"`
	SenderName string                 `json:"sender_name"`
	SenderKind string                 `json:"sender_kind"`
	Content    string                 `json:"content"`
	ReplyToId  *uuid.UUID             `json:"reply_to_id"`
	ToolData   map[string]interface{} `json:"tool_data,omitempty"`
	Reactions  []ReactionResponse     `json:"reactions"`
	CreatedAt  time.Time              `json:"created_at"`
}

type AddReactionRequest struct {
	MessageId uuid.UUID
	ActorId   uuid.UUID `json:"actor_id" validate:"required"`
	Emoji     string    `json:"emoji" validate:"required"`
}

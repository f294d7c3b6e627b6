package dto

import (
	"time"

	"github.com/google/uuid"
)

type UpsertKnowledgeRequest struct {
	RoomId       uuid.UUID
	Summary      string   `json:"summary" validate:"required"`
	KeyDecisions []string `json:"key_decisions"`
}

type KnowledgeResponse struct {
	RoomId       uuid.UUID  `json:"room_id"`
	Summary      string     `json:"summary"`
	KeyDecisions []string   `json:"key_decisions"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

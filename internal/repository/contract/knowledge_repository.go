package contract

import (
	"context"

	"ai-rooms-be/internal/entity"

	"github.com/google/uuid"
)

type KnowledgeRepository interface {
	Upsert(ctx context.Context, kb *entity.KnowledgeBase) error
	FindByRoomId(ctx context.Context, roomId uuid.UUID) (*entity.KnowledgeBase, error)
}

package contract

import (
	"context"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/repository/specification"

	"github.com/google/uuid"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	Update(ctx context.Context, message *entity.Message) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Message, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// FindRecentByRoomId returns the latest messages for a room, oldest first.
	FindRecentByRoomId(ctx context.Context, roomId uuid.UUID, limit int) ([]*entity.Message, error)
	AddReaction(ctx context.Context, reaction *entity.Reaction) error
}

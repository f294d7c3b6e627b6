package contract

import (
	"context"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Member, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Member, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package implementation

import (
	"context"
	"errors"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/mapper"
	"ai-rooms-be/internal/model"
	"ai-rooms-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type KnowledgeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) contract.KnowledgeRepository {
	return &KnowledgeRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepositoryImpl) Upsert(ctx context.Context, kb *entity.KnowledgeBase) error {
	m := r.mapper.ToModel(kb)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "room_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"summary", "key_decisions", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*kb = *r.mapper.ToEntity(m)
	return nil
}

func (r *KnowledgeRepositoryImpl) FindByRoomId(ctx context.Context, roomId uuid.UUID) (*entity.KnowledgeBase, error) {
	var m model.KnowledgeBase
	if err := r.db.WithContext(ctx).Where("room_id = ?", roomId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

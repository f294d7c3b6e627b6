package implementation

import (
	"context"
	"errors"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/mapper"
	"ai-rooms-be/internal/model"
	"ai-rooms-be/internal/repository/contract"
	"ai-rooms-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RoomMapper
}

func NewMemberRepository(db *gorm.DB) contract.MemberRepository {
	return &MemberRepositoryImpl{
		db:     db,
		mapper: mapper.NewRoomMapper(),
	}
}

func (r *MemberRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MemberRepositoryImpl) Create(ctx context.Context, member *entity.Member) error {
	m := r.mapper.MemberToModel(member)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*member = *r.mapper.MemberToEntity(m)
	return nil
}

func (r *MemberRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Member{}, id).Error
}

func (r *MemberRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Member, error) {
	var m model.Member
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MemberToEntity(&m), nil
}

func (r *MemberRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Member, error) {
	var models []*model.Member
	query := r.applySpecifications(r.db.WithContext(ctx).Order("created_at ASC"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.MembersToEntities(models), nil
}

func (r *MemberRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Member{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

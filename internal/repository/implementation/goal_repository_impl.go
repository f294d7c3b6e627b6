package implementation

import (
	"context"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/mapper"
	"ai-rooms-be/internal/model"
	"ai-rooms-be/internal/repository/contract"
	"ai-rooms-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GoalRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TaskMapper
}

func NewGoalRepository(db *gorm.DB) contract.GoalRepository {
	return &GoalRepositoryImpl{
		db:     db,
		mapper: mapper.NewTaskMapper(),
	}
}

func (r *GoalRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *GoalRepositoryImpl) Create(ctx context.Context, goal *entity.Goal) error {
	m := r.mapper.GoalToModel(goal)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*goal = *r.mapper.GoalToEntity(m)
	return nil
}

func (r *GoalRepositoryImpl) Update(ctx context.Context, goal *entity.Goal) error {
	m := r.mapper.GoalToModel(goal)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*goal = *r.mapper.GoalToEntity(m)
	return nil
}

func (r *GoalRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Goal{}, id).Error
}

func (r *GoalRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Goal, error) {
	var models []*model.Goal
	query := r.applySpecifications(r.db.WithContext(ctx).Order("priority ASC"), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.GoalsToEntities(models), nil
}

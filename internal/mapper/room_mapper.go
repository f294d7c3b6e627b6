package mapper

import (
	"time"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/model"

	"gorm.io/gorm"
)

type RoomMapper struct{}

func NewRoomMapper() *RoomMapper {
	return &RoomMapper{}
}

func (m *RoomMapper) ToEntity(r *model.Room) *entity.Room {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Room{
		Id:         r.Id,
		Name:       r.Name,
		Directives: r.Directives,
		OwnerId:    r.OwnerId,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  r.DeletedAt.Valid,
	}
}

func (m *RoomMapper) ToModel(r *entity.Room) *model.Room {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Room{
		Id:         r.Id,
		Name:       r.Name,
		Directives: r.Directives,
		OwnerId:    r.OwnerId,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *RoomMapper) ToEntities(rooms []*model.Room) []*entity.Room {
	entities := make([]*entity.Room, len(rooms))
	for i, r := range rooms {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

func (m *RoomMapper) MemberToEntity(mm *model.Member) *entity.Member {
	if mm == nil {
		return nil
	}

	return &entity.Member{
		Id:        mm.Id,
		RoomId:    mm.RoomId,
		UserId:    mm.UserId,
		Username:  mm.Username,
		Role:      mm.Role,
		CreatedAt: mm.CreatedAt,
	}
}

func (m *RoomMapper) MemberToModel(me *entity.Member) *model.Member {
	if me == nil {
		return nil
	}

	return &model.Member{
		Id:        me.Id,
		RoomId:    me.RoomId,
		UserId:    me.UserId,
		Username:  me.Username,
		Role:      me.Role,
		CreatedAt: me.CreatedAt,
	}
}

func (m *RoomMapper) MembersToEntities(members []*model.Member) []*entity.Member {
	entities := make([]*entity.Member, len(members))
	for i, mm := range members {
		entities[i] = m.MemberToEntity(mm)
	}
	return entities
}

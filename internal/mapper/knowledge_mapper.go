package mapper

import (
	"encoding/json"
	"time"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/model"

	"gorm.io/datatypes"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntity(kb *model.KnowledgeBase) *entity.KnowledgeBase {
	if kb == nil {
		return nil
	}

	var updatedAt *time.Time
	if !kb.UpdatedAt.IsZero() {
		t := kb.UpdatedAt
		updatedAt = &t
	}

	var decisions []string
	if len(kb.KeyDecisions) > 0 {
		_ = json.Unmarshal(kb.KeyDecisions, &decisions)
	}

	return &entity.KnowledgeBase{
		Id:           kb.Id,
		RoomId:       kb.RoomId,
		Summary:      kb.Summary,
		KeyDecisions: decisions,
		CreatedAt:    kb.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

func (m *KnowledgeMapper) ToModel(kb *entity.KnowledgeBase) *model.KnowledgeBase {
	if kb == nil {
		return nil
	}

	var updatedAt time.Time
	if kb.UpdatedAt != nil {
		updatedAt = *kb.UpdatedAt
	}

	var decisions datatypes.JSON
	if kb.KeyDecisions != nil {
		if raw, err := json.Marshal(kb.KeyDecisions); err == nil {
			decisions = raw
		}
	}

	return &model.KnowledgeBase{
		Id:           kb.Id,
		RoomId:       kb.RoomId,
		Summary:      kb.Summary,
		KeyDecisions: decisions,
		CreatedAt:    kb.CreatedAt,
		UpdatedAt:    updatedAt,
	}
}

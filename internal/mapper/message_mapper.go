package mapper

import (
	"encoding/json"
	"time"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MessageMapper struct{}

func NewMessageMapper() *MessageMapper {
	return &MessageMapper{}
}

func (m *MessageMapper) ToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}

	var deletedAt *time.Time
	if msg.DeletedAt.Valid {
		t := msg.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !msg.UpdatedAt.IsZero() {
		t := msg.UpdatedAt
		updatedAt = &t
	}

	var toolData map[string]interface{}
	if len(msg.ToolData) > 0 {
		_ = json.Unmarshal(msg.ToolData, &toolData)
	}

	reactions := make([]entity.Reaction, len(msg.Reactions))
	for i, r := range msg.Reactions {
		reactions[i] = entity.Reaction{
			Id:        r.Id,
			MessageId: r.MessageId,
			ActorId:   r.ActorId,
			ActorKind: r.ActorKind,
			Emoji:     r.Emoji,
			CreatedAt: r.CreatedAt,
		}
	}

	return &entity.Message{
		Id:         msg.Id,
		RoomId:     msg.RoomId,
		SenderId:   msg.SenderId,
		SenderName: msg.SenderName,
		SenderKind: msg.SenderKind,
		Content:    msg.Content,
		ReplyToId:  msg.ReplyToId,
		ToolData:   toolData,
		Reactions:  reactions,
		CreatedAt:  msg.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
		IsDeleted:  msg.DeletedAt.Valid,
	}
}

func (m *MessageMapper) ToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if msg.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *msg.DeletedAt, Valid: true}
	} else if msg.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if msg.UpdatedAt != nil {
		updatedAt = *msg.UpdatedAt
	}

	var toolData datatypes.JSON
	if msg.ToolData != nil {
		if raw, err := json.Marshal(msg.ToolData); err == nil {
			toolData = raw
		}
	}

	return &model.Message{
		Id:         msg.Id,
		RoomId:     msg.RoomId,
		SenderId:   msg.SenderId,
		SenderName: msg.SenderName,
		SenderKind: msg.SenderKind,
		Content:    msg.Content,
		ReplyToId:  msg.ReplyToId,
		ToolData:   toolData,
		CreatedAt:  msg.CreatedAt,
		UpdatedAt:  updatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *MessageMapper) ToEntities(msgs []*model.Message) []*entity.Message {
	entities := make([]*entity.Message, len(msgs))
	for i, msg := range msgs {
		entities[i] = m.ToEntity(msg)
	}
	return entities
}

func (m *MessageMapper) ReactionToModel(r *entity.Reaction) *model.Reaction {
	if r == nil {
		return nil
	}

	return &model.Reaction{
		Id:        r.Id,
		MessageId: r.MessageId,
		ActorId:   r.ActorId,
		ActorKind: r.ActorKind,
		Emoji:     r.Emoji,
		CreatedAt: r.CreatedAt,
	}
}

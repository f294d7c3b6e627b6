package specification

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByRoomID struct {
	RoomID uuid.UUID
}

func (s ByRoomID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("room_id = ?", s.RoomID)
}

type ByOwnerID struct {
	OwnerID uuid.UUID
}

func (s ByOwnerID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_id = ?", s.OwnerID)
}

type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

type OpenTasks struct{}

func (s OpenTasks) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status <> ?", "done")
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

type TitleContains struct {
	Fragment string
}

func (s TitleContains) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(s.Fragment)+"%")
}

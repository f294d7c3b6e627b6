package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentPage struct {
	Number int    `json:"number"`
	Text   string `json:"text" validate:"required"`
}

// UploadDocumentRequest carries pre-extracted page text; extraction itself
// happens upstream of this service.
type UploadDocumentRequest struct {
	RoomId     uuid.UUID
	Filename   string         `json:"filename" validate:"required"`
	UploadedBy uuid.UUID      `json:"uploaded_by" validate:"required"`
	Pages      []DocumentPage `json:"pages" validate:"required,min=1,dive"`
}

type UploadDocumentResponse struct {
	Id uuid.UUID `json:"id"`
}

type DocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	Summary    string    `json:"summary"`
	ChunkCount int       `json:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"`
}

type AskDocumentsRequest struct {
	RoomId   uuid.UUID
	Question string `json:"question" validate:"required"`
}

type AskDocumentsResponse struct {
	Answer string `json:"answer"`
}

// PublishIngestDocumentMessage is the queue payload between upload and the
// ingestion worker. Page text rides along so the worker does not depend on
// the raw upload being stored anywhere.
type PublishIngestDocumentMessage struct {
	DocumentId uuid.UUID      `json:"document_id"`
	RoomId     uuid.UUID      `json:"room_id"`
	Pages      []DocumentPage `json:"pages"`
}

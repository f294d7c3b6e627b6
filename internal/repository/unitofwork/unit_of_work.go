package unitofwork

import (
	"context"

	"ai-rooms-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	RoomRepository() contract.RoomRepository
	MemberRepository() contract.MemberRepository
	MessageRepository() contract.MessageRepository
	TaskRepository() contract.TaskRepository
	GoalRepository() contract.GoalRepository
	KnowledgeRepository() contract.KnowledgeRepository
	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
}

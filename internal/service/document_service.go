package service

import (
	"context"
	"encoding/json"
	"time"

	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/repository/specification"
	"ai-rooms-be/internal/repository/unitofwork"
	"ai-rooms-be/pkg/rag"

	"github.com/google/uuid"
)

type IDocumentService interface {
	Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error)
	List(ctx context.Context, roomId uuid.UUID) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Ask(ctx context.Context, req *dto.AskDocumentsRequest) (*dto.AskDocumentsResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	index            rag.Index
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	index rag.Index,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		index:            index,
	}
}

func (s *documentService) Upload(ctx context.Context, req *dto.UploadDocumentRequest) (*dto.UploadDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	uploadedBy := req.UploadedBy
	doc := entity.Document{
		Id:         uuid.New(),
		RoomId:     req.RoomId,
		Filename:   req.Filename,
		UploadedBy: &uploadedBy,
		CreatedAt:  time.Now(),
	}
	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}

	payload := dto.PublishIngestDocumentMessage{
		DocumentId: doc.Id,
		RoomId:     doc.RoomId,
		Pages:      req.Pages,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, payloadJson); err != nil {
		return nil, err
	}

	return &dto.UploadDocumentResponse{Id: doc.Id}, nil
}

func (s *documentService) List(ctx context.Context, roomId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.ByRoomID{RoomID: roomId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		res = append(res, &dto.DocumentResponse{
			Id:         d.Id,
			Filename:   d.Filename,
			Summary:    d.Summary,
			ChunkCount: d.ChunkCount,
			CreatedAt:  d.CreatedAt,
		})
	}
	return res, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *documentService) Ask(ctx context.Context, req *dto.AskDocumentsRequest) (*dto.AskDocumentsResponse, error) {
	answer, err := s.index.Answer(ctx, req.RoomId, req.Question)
	if err != nil {
		return nil, err
	}
	return &dto.AskDocumentsResponse{Answer: answer}, nil
}

package service

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"ai-rooms-be/internal/dto"
	"ai-rooms-be/internal/repository/specification"
	"ai-rooms-be/internal/repository/unitofwork"
	"ai-rooms-be/pkg/rag"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// summarySourceLimit caps how much document text is sent to the model when
// producing the one-paragraph summary.
const summarySourceLimit = 12000

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	index      rag.Index
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	index rag.Index,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		index:      index,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Ingesting document %s (%d pages)", payload.DocumentId, len(payload.Pages))

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to load document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}
	if doc == nil {
		// Deleted between upload and ingestion. Nothing to do.
		log.Printf("[WARN] Document %s no longer exists, skipping", payload.DocumentId)
		msg.Ack()
		return
	}

	pages := make([]rag.Page, 0, len(payload.Pages))
	for _, p := range payload.Pages {
		pages = append(pages, rag.Page{Number: p.Number, Text: p.Text})
	}

	chunks, err := cs.index.Ingest(ctx, payload.RoomId, payload.DocumentId, pages)
	if err != nil {
		log.Printf("[ERROR] Failed to ingest document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}

	summary, err := cs.index.Summarize(ctx, joinPages(payload.Pages, summarySourceLimit))
	if err != nil {
		// Chunks are already stored and searchable; a missing summary is not
		// worth replaying the whole ingestion.
		log.Printf("[WARN] Failed to summarize document %s: %v", payload.DocumentId, err)
		summary = ""
	}

	now := time.Now()
	doc.ChunkCount = len(chunks)
	doc.Summary = summary
	doc.UpdatedAt = &now
	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		log.Printf("[ERROR] Failed to update document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}

	log.Printf("[SUCCESS] Document %s ingested: %d chunks", payload.DocumentId, len(chunks))
	msg.Ack()
}

func joinPages(pages []dto.DocumentPage, limit int) string {
	var b strings.Builder
	for _, p := range pages {
		if b.Len() >= limit {
			break
		}
		b.WriteString(p.Text)
		b.WriteString("\n\n")
	}
	text := b.String()
	if len(text) > limit {
		text = text[:limit]
	}
	return text
}

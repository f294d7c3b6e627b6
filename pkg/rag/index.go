package rag

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"ai-rooms-be/internal/constant"
	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/pkg/logger"
	"ai-rooms-be/pkg/embedding"
	"ai-rooms-be/pkg/gateway"
	"ai-rooms-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	// EmbeddingDim matches the vector(768) column and text-embedding-004.
	EmbeddingDim = 768

	// MaxEmbedChars caps the text sent to the embedding endpoint. Longer
	// chunk content is stored whole and embedded truncated.
	MaxEmbedChars = 8000

	DefaultTopK = 5
)

// Page is one extracted page of an uploaded document.
type Page struct {
	Number int
	Text   string
}

// ScoredChunk pairs a stored chunk with its similarity to a query.
type ScoredChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64
}

// ChunkStore is the slice of persistence the index needs.
type ChunkStore interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindAllByRoomId(ctx context.Context, roomId uuid.UUID) ([]*entity.DocumentChunk, error)
}

// Index turns documents into retrievable chunks and answers questions
// grounded on them. Search is brute-force cosine over a room's chunks,
// which stays fast at per-room document counts.
type Index interface {
	Ingest(ctx context.Context, roomId, documentId uuid.UUID, pages []Page) ([]*entity.DocumentChunk, error)
	Search(ctx context.Context, roomId uuid.UUID, query string, topK int) ([]ScoredChunk, error)
	Answer(ctx context.Context, roomId uuid.UUID, question string) (string, error)
	Summarize(ctx context.Context, text string) (string, error)
}

type retrievalIndex struct {
	chunks  ChunkStore
	gateway gateway.Gateway
	logger  logger.ILogger
}

func NewIndex(chunks ChunkStore, gw gateway.Gateway, log logger.ILogger) Index {
	return &retrievalIndex{
		chunks:  chunks,
		gateway: gw,
		logger:  log,
	}
}

func truncateForEmbedding(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxEmbedChars {
		return text
	}
	return string(runes[:MaxEmbedChars])
}

func (idx *retrievalIndex) Ingest(ctx context.Context, roomId, documentId uuid.UUID, pages []Page) ([]*entity.DocumentChunk, error) {
	var entities []*entity.DocumentChunk
	chunkIndex := 0

	for _, page := range pages {
		for _, content := range Split(page.Text, DefaultChunkSize, DefaultChunkOverlap) {
			vector, err := idx.gateway.Embed(ctx, truncateForEmbedding(content), embedding.TaskTypeDocument)
			if err != nil {
				// A degraded chunk stays searchable by keyword in Answer
				// prompts and ranks last in similarity order.
				idx.logger.Warn("RetrievalIndex", "Embedding failed, storing zero vector", map[string]interface{}{
					"document_id": documentId.String(),
					"chunk_index": chunkIndex,
					"error":       err.Error(),
				})
				vector = make([]float32, EmbeddingDim)
			}

			entities = append(entities, &entity.DocumentChunk{
				DocumentId: documentId,
				RoomId:     roomId,
				Content:    content,
				Embedding:  vector,
				ChunkIndex: chunkIndex,
				PageNumber: page.Number,
			})
			chunkIndex++
		}
	}

	// Replace any previous ingestion of the same document.
	if err := idx.chunks.DeleteByDocumentId(ctx, documentId); err != nil {
		return nil, fmt.Errorf("clear previous chunks: %w", err)
	}
	if err := idx.chunks.CreateBulk(ctx, entities); err != nil {
		return nil, fmt.Errorf("store chunks: %w", err)
	}

	idx.logger.Info("RetrievalIndex", "Document ingested", map[string]interface{}{
		"document_id": documentId.String(),
		"chunks":      len(entities),
	})
	return entities, nil
}

func (idx *retrievalIndex) Search(ctx context.Context, roomId uuid.UUID, query string, topK int) ([]ScoredChunk, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVector, err := idx.gateway.Embed(ctx, truncateForEmbedding(query), embedding.TaskTypeQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	stored, err := idx.chunks.FindAllByRoomId(ctx, roomId)
	if err != nil {
		return nil, fmt.Errorf("load chunks: %w", err)
	}

	scored := make([]ScoredChunk, len(stored))
	for i, chunk := range stored {
		scored[i] = ScoredChunk{
			Chunk:      chunk,
			Similarity: CosineSimilarity(queryVector, chunk.Embedding),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (idx *retrievalIndex) Answer(ctx context.Context, roomId uuid.UUID, question string) (string, error) {
	results, err := idx.Search(ctx, roomId, question, DefaultTopK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return constant.NoDocumentsMessage, nil
	}

	var sources strings.Builder
	for i, res := range results {
		fmt.Fprintf(&sources, "[Source %d (Page %d)]\n%s\n\n", i+1, res.Chunk.PageNumber, res.Chunk.Content)
	}

	prompt := fmt.Sprintf(constant.DocumentAnswerPromptV1, strings.TrimSpace(sources.String()), question)
	answer, err := idx.gateway.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return strings.TrimSpace(answer), nil
}

func (idx *retrievalIndex) Summarize(ctx context.Context, text string) (string, error) {
	prompt := fmt.Sprintf(constant.DocumentSummaryPromptV1, truncateForEmbedding(text))
	summary, err := idx.gateway.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

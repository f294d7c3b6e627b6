package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-rooms-be/internal/entity"
	"ai-rooms-be/internal/repository/specification"
	"ai-rooms-be/internal/repository/unitofwork"
	"ai-rooms-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.RoomRepository())
	assert.NotNil(t, uow.MessageRepository())
	assert.NotNil(t, uow.DocumentChunkRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Room Repository", func(t *testing.T) {
		count, err := uow.RoomRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Room count: %d", count)
	})

	t.Run("Check Document Chunk Repository", func(t *testing.T) {
		count, err := uow.DocumentChunkRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentChunk count: %d", count)
	})

	t.Run("Check Transactional Room Membership", func(t *testing.T) {
		ctx := context.Background()
		ownerId := uuid.New()

		room := &entity.Room{
			Id:         uuid.New(),
			Name:       "integration-room-" + uuid.New().String(),
			Directives: "integration test room",
			OwnerId:    ownerId,
			CreatedAt:  time.Now(),
		}

		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		err = uow.RoomRepository().Create(ctx, room)
		assert.NoError(t, err)

		member := &entity.Member{
			Id:        uuid.New(),
			RoomId:    room.Id,
			UserId:    ownerId,
			Username:  "integration-owner",
			Role:      "owner",
			CreatedAt: time.Now(),
		}
		err = uow.MemberRepository().Create(ctx, member)
		assert.NoError(t, err)

		found, err := uow.RoomRepository().FindOne(ctx, specification.ByID{ID: room.Id})
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, room.Name, found.Name)

		// Rollback via defer keeps the database clean.
	})
}

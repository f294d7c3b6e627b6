package main

import (
	"log"
	"os"

	"ai-rooms-be/internal/model"
	"ai-rooms-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding Demo Room...")

	var existing model.Room
	if err := db.Where("name = ?", "Demo Room").First(&existing).Error; err == nil {
		log.Println("Demo Room already exists, skipping...")
		return
	}

	ownerId := uuid.New()
	room := model.Room{
		Id:         uuid.New(),
		Name:       "Demo Room",
		Directives: "Keep answers short and practical. Prefer bullet points for lists.",
		OwnerId:    ownerId,
	}
	if err := db.Create(&room).Error; err != nil {
		log.Fatalf("Error: Failed to create room: %v", err)
	}

	members := []model.Member{
		{Id: uuid.New(), RoomId: room.Id, UserId: ownerId, Username: "alice", Role: "owner"},
		{Id: uuid.New(), RoomId: room.Id, UserId: uuid.New(), Username: "bob", Role: "member"},
	}
	for _, m := range members {
		if err := db.Create(&m).Error; err != nil {
			log.Fatalf("Error: Failed to create member %s: %v", m.Username, err)
		}
	}

	goals := []model.Goal{
		{Id: uuid.New(), RoomId: room.Id, Content: "Ship the first public beta", Priority: 1},
		{Id: uuid.New(), RoomId: room.Id, Content: "Keep the bug backlog under ten items", Priority: 2},
	}
	for _, g := range goals {
		if err := db.Create(&g).Error; err != nil {
			log.Fatalf("Error: Failed to create goal: %v", err)
		}
	}

	log.Printf("✅ Success: Demo Room seeded (id=%s, owner=%s)", room.Id, ownerId)
}

package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-rooms-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Hub struct {
	// Registered clients map: RoomID -> List of Clients (one per open tab)
	clients map[uuid.UUID][]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.RoomID] = append(h.clients[client.RoomID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"room_id": client.RoomID, "user_id": client.UserID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.RoomID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.RoomID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.RoomID]) == 0 {
					delete(h.clients, client.RoomID)
					h.logger.Info("Hub", "Room has no listeners left", map[string]interface{}{"room_id": client.RoomID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastToRoom sends an event to every client watching the room. With
// Redis configured, delivery goes through the "room_events" channel so every
// instance (this one included) fans out to its own local clients exactly once.
// Without Redis we deliver locally and single-instance deployments still work.
func (h *Hub) BroadcastToRoom(roomID uuid.UUID, eventType string, payload interface{}) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": eventType,
		"data": payload,
	})

	if h.rdb == nil {
		h.deliverLocal(roomID, data)
		return
	}

	envelope := map[string]interface{}{
		"target_room_id": roomID.String(),
		"message":        data,
	}
	jsonEnvelope, _ := json.Marshal(envelope)
	h.rdb.Publish(context.Background(), "room_events", jsonEnvelope)
}

func (h *Hub) deliverLocal(roomID uuid.UUID, data []byte) {
	h.mu.RLock()
	clients, ok := h.clients[roomID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	for _, client := range clients {
		select {
		case client.Send <- data:
		default:
			// Run closes the channel when it processes the unregister;
			// closing here as well would close it twice.
			h.logger.Warn("Hub", "Client send buffer full, dropping connection", map[string]interface{}{"room_id": roomID, "user_id": client.UserID})
			h.unregister <- client
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, "room_events")
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var envelope struct {
			TargetRoomID string          `json:"target_room_id"`
			Message      json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &envelope); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		roomID, err := uuid.Parse(envelope.TargetRoomID)
		if err != nil {
			continue
		}

		h.deliverLocal(roomID, envelope.Message)
	}
}

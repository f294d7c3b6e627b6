package handler

import (
	"ai-rooms-be/internal/pkg/logger"
	internalWS "ai-rooms-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// RoomStreamHandler upgrades peers onto a room's live event stream.
type RoomStreamHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewRoomStreamHandler(hub *internalWS.Hub, log logger.ILogger) *RoomStreamHandler {
	return &RoomStreamHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer.
func (h *RoomStreamHandler) ServeWs(c *fiber.Ctx) error {
	roomID, err := uuid.Parse(c.Query("room_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid room_id"})
	}

	userID, err := uuid.Parse(c.Query("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing or invalid user_id"})
	}

	// Upgrade via Fiber WebSocket Middleware
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("RoomStreamHandler", "Starting WebSocket session", map[string]interface{}{"room_id": roomID, "user_id": userID})
			internalWS.ServeWs(h.hub, conn, roomID, userID)
			h.logger.Info("RoomStreamHandler", "WebSocket session ended", map[string]interface{}{"room_id": roomID, "user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the stream routes.
func (h *RoomStreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}

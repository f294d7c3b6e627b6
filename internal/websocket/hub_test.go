package websocket

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met within a second")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func (h *Hub) clientCount(roomID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[roomID])
}

func TestSlowClientDroppedWithoutDoubleClose(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	roomID := uuid.New()
	client := &Client{
		Hub:    hub,
		RoomID: roomID,
		UserID: uuid.New(),
		Send:   make(chan []byte, 1),
	}
	hub.register <- client
	waitFor(t, func() bool { return hub.clientCount(roomID) == 1 })

	// Fill the buffer so the next delivery overflows and drops the client.
	client.Send <- []byte("backlog")
	hub.BroadcastToRoom(roomID, "message_created", map[string]string{"content": "hello"})
	waitFor(t, func() bool { return hub.clientCount(roomID) == 0 })

	// The buffered frame is still readable, then the channel is closed
	// exactly once.
	if _, ok := <-client.Send; !ok {
		t.Fatal("buffered frame should still be readable")
	}
	if _, ok := <-client.Send; ok {
		t.Fatal("send channel should be closed after the drop")
	}

	// Broadcasting again must not panic on the departed client, and a
	// second unregister (the read pump noticing the close) is a no-op.
	hub.BroadcastToRoom(roomID, "message_created", map[string]string{"content": "again"})
	hub.unregister <- client
	waitFor(t, func() bool { return hub.clientCount(roomID) == 0 })
}

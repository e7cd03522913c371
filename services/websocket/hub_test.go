package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func dialTestHub(t *testing.T, h *Hub, userID uint) (*websocket.Conn, func()) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, userID)
	}))

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial failed: %v", err)
	}
	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func waitForClients(t *testing.T, h *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if h.GetClientCount() == want {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("client count = %d, want %d", h.GetClientCount(), want)
}

func TestBroadcastToUserDelivers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn, cleanup := dialTestHub(t, hub, 42)
	defer cleanup()
	waitForClients(t, hub, 1)

	hub.BroadcastToUser(42, map[string]interface{}{
		"type": "notification",
		"data": map[string]interface{}{"title": "Payment approved"},
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.Type != "notification" {
		t.Fatalf("message type = %q, want %q", msg.Type, "notification")
	}
}

func TestBroadcastToUserSkipsOtherUsers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn, cleanup := dialTestHub(t, hub, 7)
	defer cleanup()
	waitForClients(t, hub, 1)

	hub.BroadcastToUser(99, map[string]interface{}{"type": "notification"})

	conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatal("expected no message for a different user")
	}
}

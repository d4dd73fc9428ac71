package wsdebug

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aluo96078/hookwire/internal/protocol"
)

func TestBroadcastHotkeyFiredReachesConnectedClient(t *testing.T) {
	s := New()
	s.Start()
	defer s.Close()

	httpSrv := httptest.NewServer(s.Handler())
	defer httpSrv.Close()

	wsURL := "ws" + strings.TrimPrefix(httpSrv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Give the server a moment to register the client before broadcasting.
	time.Sleep(20 * time.Millisecond)
	s.BroadcastHotkeyFired("Space", "press", "dispatch", false, 12345)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}

	var msg protocol.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if msg.Type != protocol.TypeHotkeyFired {
		t.Fatalf("got type %v, want %v", msg.Type, protocol.TypeHotkeyFired)
	}
}

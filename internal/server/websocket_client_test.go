package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
)

// echoPeer starts a server that writes msgs to each connection, then echoes
// whatever it receives.
func echoPeer(t *testing.T, msgs ...string) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, m := range msgs {
			conn.WriteMessage(websocket.TextMessage, []byte(m))
		}
		for {
			mt, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			conn.WriteMessage(mt, data)
		}
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestWebSocketClient_ReadLine_SkipsBlankMessages(t *testing.T) {
	client := NewWebSocketClient(echoPeer(t, "", "   ", "\n\n\n", "show"))

	line, err := client.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if line != "show" {
		t.Errorf("expected 'show', got %q", line)
	}
}

func TestWebSocketClient_ReadLine_MultiLineMessage(t *testing.T) {
	client := NewWebSocketClient(echoPeer(t, "name Borin\n\n  inc str \nlineage dwarf"))

	want := []string{"name Borin", "inc str", "lineage dwarf"}
	for _, w := range want {
		line, err := client.ReadLine()
		if err != nil {
			t.Fatalf("ReadLine failed: %v", err)
		}
		if line != w {
			t.Errorf("expected %q, got %q", w, line)
		}
	}
}

func TestWebSocketClient_WriteLine(t *testing.T) {
	client := NewWebSocketClient(echoPeer(t))

	if err := client.WriteLine("hello"); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}
	line, err := client.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine failed: %v", err)
	}
	if line != "hello" {
		t.Errorf("expected echo 'hello', got %q", line)
	}
	if client.RemoteAddr() == "" {
		t.Error("expected a remote address")
	}
}

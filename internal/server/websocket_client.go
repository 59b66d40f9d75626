package server

import (
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// writeWait bounds a single write so a stalled peer cannot hold writeMu.
const writeWait = 10 * time.Second

// WebSocketClient wraps a WebSocket connection for browser-based sessions.
type WebSocketClient struct {
	conn    *websocket.Conn
	readBuf []string   // lines left over from a multi-line message
	mu      sync.Mutex // protects readBuf
	writeMu sync.Mutex // gorilla allows one concurrent writer
}

// NewWebSocketClient creates a new WebSocketClient from a WebSocket connection.
func NewWebSocketClient(conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{conn: conn}
}

// ReadLine returns the next non-blank line. A message holding several lines
// is split and the extra lines are returned by later calls.
func (c *WebSocketClient) ReadLine() (string, error) {
	for {
		c.mu.Lock()
		if len(c.readBuf) > 0 {
			line := c.readBuf[0]
			c.readBuf = c.readBuf[1:]
			c.mu.Unlock()
			return line, nil
		}
		c.mu.Unlock()

		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return "", err
		}

		var lines []string
		for _, line := range strings.Split(string(message), "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				lines = append(lines, trimmed)
			}
		}
		c.mu.Lock()
		c.readBuf = append(c.readBuf, lines...)
		c.mu.Unlock()
	}
}

// WriteLine sends message as one text frame.
func (c *WebSocketClient) WriteLine(message string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, []byte(message))
}

// Close closes the WebSocket connection.
func (c *WebSocketClient) Close() error {
	return c.conn.Close()
}

// RemoteAddr returns the remote address as a string.
func (c *WebSocketClient) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

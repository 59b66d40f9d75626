// Package testclient drives a running creation server over WebSocket for
// integration runs.
package testclient

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TestClient is one scripted connection to the creation server.
type TestClient struct {
	Name     string
	conn     *websocket.Conn
	writeMu  sync.Mutex
	messages []string
	mu       sync.Mutex
	closed   chan struct{}
}

// wsURL turns "host:port" or a ws:// URL into the /ws endpoint.
func wsURL(address string) string {
	if strings.HasPrefix(address, "ws://") || strings.HasPrefix(address, "wss://") {
		return address
	}
	u := url.URL{Scheme: "ws", Host: address, Path: "/ws"}
	return u.String()
}

// NewTestClient connects and waits for the creation greeting.
func NewTestClient(name, address string) (*TestClient, error) {
	client, err := NewTestClientRaw(address)
	if err != nil {
		return nil, err
	}
	client.Name = name

	if !client.WaitForMessage("Create your character", 2*time.Second) {
		messages := client.GetMessages()
		client.Close()
		return nil, fmt.Errorf("no greeting received, messages: %v", messages)
	}
	return client, nil
}

// NewTestClientRaw connects without waiting for anything.
func NewTestClientRaw(address string) (*TestClient, error) {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(address), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	client := &TestClient{
		Name:   "RawClient",
		conn:   conn,
		closed: make(chan struct{}),
	}
	go client.readMessages()
	return client, nil
}

// readMessages stores every received line until the connection ends.
func (c *TestClient) readMessages() {
	defer close(c.closed)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.mu.Lock()
		for _, line := range strings.Split(string(data), "\n") {
			if line = strings.TrimRight(line, "\r"); line != "" {
				c.messages = append(c.messages, line)
			}
		}
		c.mu.Unlock()
	}
}

// SendCommand sends one command line.
func (c *TestClient) SendCommand(cmd string) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, []byte(cmd))
}

// GetMessages returns a copy of every line received so far.
func (c *TestClient) GetMessages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]string, len(c.messages))
	copy(result, c.messages)
	return result
}

// ClearMessages empties the message buffer.
func (c *TestClient) ClearMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

// HasMessage checks if any line contains text.
func (c *TestClient) HasMessage(text string) bool {
	for _, msg := range c.GetMessages() {
		if strings.Contains(msg, text) {
			return true
		}
	}
	return false
}

// WaitForMessage polls for a line containing text until timeout.
func (c *TestClient) WaitForMessage(text string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if c.HasMessage(text) {
			return true
		}
		time.Sleep(50 * time.Millisecond)
	}
	return false
}

// WaitForClose reports whether the server closed the connection within timeout.
func (c *TestClient) WaitForClose(timeout time.Duration) bool {
	select {
	case <-c.closed:
		return true
	case <-time.After(timeout):
		return false
	}
}

// Close closes the connection.
func (c *TestClient) Close() error {
	return c.conn.Close()
}

// PrintMessages prints all messages (for debugging)
func (c *TestClient) PrintMessages() {
	fmt.Printf("\n=== Messages for %s ===\n", c.Name)
	for i, msg := range c.GetMessages() {
		fmt.Printf("[%d] %s\n", i, msg)
	}
	fmt.Println("======================")
}

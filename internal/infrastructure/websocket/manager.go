package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"chronova/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 16
)

// Client is one browser tab with a live collection open.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		Conn: conn,
		Send: make(chan []byte, sendBuffer),
	}
}

// MessageHandler processes one inbound frame from a client.
type MessageHandler func(client *Client, message []byte)

// Manager tracks connected clients.
type Manager struct {
	clients    map[string]*Client
	Unregister chan *Client
	done       chan struct{}
	stopped    bool
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Start runs the unregister loop until ctx is done, then closes every client.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		defer close(m.done)
		for {
			select {
			case client := <-m.Unregister:
				m.remove(client)
				logger.Debug("Collection client unregistered: %s", client.ID)

			case <-ctx.Done():
				m.mutex.Lock()
				m.stopped = true
				for id, client := range m.clients {
					delete(m.clients, id)
					close(client.Send)
				}
				m.mutex.Unlock()
				return
			}
		}
	}()
}

// Add registers client so it can be sent to immediately. It reports false
// once the manager has stopped.
func (m *Manager) Add(client *Client) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.stopped {
		return false
	}
	m.clients[client.ID] = client
	logger.Debug("Collection client registered: %s", client.ID)
	return true
}

func (m *Manager) drop(client *Client) {
	select {
	case m.Unregister <- client:
	case <-m.done:
	}
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if current, ok := m.clients[client.ID]; ok && current == client {
		delete(m.clients, client.ID)
		close(client.Send)
	}
}

// SendToClient queues message for a client. A client whose buffer is full is
// dropped instead of stalling the caller.
func (m *Manager) SendToClient(clientID string, message []byte) bool {
	m.mutex.RLock()
	client, ok := m.clients[clientID]
	if !ok {
		m.mutex.RUnlock()
		return false
	}

	select {
	case client.Send <- message:
		m.mutex.RUnlock()
		return true
	default:
		m.mutex.RUnlock()
		logger.Warn("Dropping slow collection client %s", clientID)
		m.remove(client)
		return false
	}
}

func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// ReadPump feeds inbound frames to handle until the connection closes.
func (c *Client) ReadPump(m *Manager, handle MessageHandler) {
	defer func() {
		m.drop(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Collection client %s read error: %v", c.ID, err)
			}
			return
		}
		handle(c, message)
	}
}

// WritePump drains Send onto the connection and keeps it alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("Collection client %s write error: %v", c.ID, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

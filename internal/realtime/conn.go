package realtime

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeTimeout = 10 * time.Second

// Sender is one outbound event stream. Writes on a single Sender preserve
// emission order; nothing is guaranteed across Senders.
type Sender interface {
	ID() string
	Send(event any) error
	Close() error
}

// Conn wraps a websocket connection with a write lock: gorilla allows only
// one concurrent writer, and presence broadcasts and relays can target the
// same connection from different goroutines.
type Conn struct {
	id string
	ws *websocket.Conn
	mu sync.Mutex
}

func NewConn(id string, ws *websocket.Conn) *Conn {
	return &Conn{id: id, ws: ws}
}

func (c *Conn) ID() string { return c.id }

func (c *Conn) Send(event any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteJSON(event)
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

package realtime

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"splitpath/internal/pkg/response"
)

const (
	pingInterval = 30 * time.Second
	pongWait     = 60 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,

	// TODO: restrict origins once the client domains are fixed
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ClientMessage is the single inbound frame shape. Only the private-chat
// namespace accepts typing frames; everything else a client sends is a ping
// or ignored.
type ClientMessage struct {
	Type       string `json:"type"`
	ReceiverID int64  `json:"receiver_id,omitempty"`
	IsTyping   bool   `json:"is_typing,omitempty"`
}

// Handler upgrades websocket connections for both namespaces. Each
// connection moves through unauthenticated -> authenticated -> disconnected:
// authentication happens before the upgrade and any failure refuses the
// connection, registration happens only after a successful upgrade, and the
// disconnect path unregisters before broadcasting the offline transition.
type Handler struct {
	auth     *Authenticator
	registry Registry
	presence *PresenceBroadcaster
	relay    *MessagingRelay
}

func NewHandler(auth *Authenticator, registry Registry, presence *PresenceBroadcaster, relay *MessagingRelay) *Handler {
	return &Handler{
		auth:     auth,
		registry: registry,
		presence: presence,
		relay:    relay,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/ws/friends", func(c *gin.Context) {
		h.serve(c, NamespaceFriends)
	})
	r.GET("/ws/private-chat", func(c *gin.Context) {
		h.serve(c, NamespacePrivateChat)
	})
}

func (h *Handler) serve(c *gin.Context, ns Namespace) {
	claims, err := h.auth.Authenticate(c.Request)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Valid access token required")
		return
	}
	userID := claims.UserID

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("realtime: upgrade failed for user %d: %v", userID, err)
		return
	}

	conn := NewConn(uuid.NewString(), ws)
	wentOnline := h.registry.Register(userID, ns, conn)
	log.Printf("realtime: user %d connected to %s", userID, ns)

	if wentOnline {
		h.presence.BroadcastStatus(c.Request.Context(), userID, true)
	}

	defer func() {
		wentOffline := h.registry.Unregister(userID, ns, conn.ID())
		_ = conn.Close()
		log.Printf("realtime: user %d disconnected from %s", userID, ns)

		if wentOffline {
			// The request context is gone by now; the broadcast must not be
			// cancelled along with this connection.
			h.presence.BroadcastStatus(context.Background(), userID, false)
		}
	}()

	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go h.pingLoop(ws)

	h.readLoop(conn, ws, userID, ns)
}

func (h *Handler) pingLoop(ws *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		if err := ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
			return
		}
	}
}

func (h *Handler) readLoop(conn *Conn, ws *websocket.Conn, userID int64, ns Namespace) {
	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
				websocket.CloseAbnormalClosure) {
				log.Printf("realtime: read error for user %d in %s: %v", userID, ns, err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}

		switch msg.Type {
		case "ping":
			_ = conn.Send(NewPongEvent())
		case "typing_status_change":
			if ns == NamespacePrivateChat && msg.ReceiverID > 0 {
				h.relay.NotifyTypingStatus(userID, msg.ReceiverID, msg.IsTyping)
			}
		}
	}
}

package realtime

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Ashwinv007/WorkspaceOps-sub000/internal/repository/redis"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Hub bridges workspace event subscriptions to websocket clients. Each
// connected client holds its own Redis subscription for the workspace
// channel, so events published from any server instance reach it.
type Hub struct {
	bus      *redis.EventBus
	upgrader websocket.Upgrader
}

// NewHub creates a new realtime hub
func NewHub(bus *redis.EventBus) *Hub {
	return &Hub{
		bus: bus,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth happens before the upgrade; the bearer token already
			// gates this endpoint.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeWorkspace upgrades the request and forwards the workspace's events
// until either side disconnects. Membership checks happen in middleware
// before this is reached.
func (h *Hub) ServeWorkspace(w http.ResponseWriter, r *http.Request, workspaceID uuid.UUID) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	sub := h.bus.Subscribe(r.Context(), workspaceID)

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, sub.Channel(), done)

	sub.Close()
	conn.Close()
}

// readPump drains client frames so pings/pongs and close frames are
// processed; inbound data is otherwise discarded.
func (h *Hub) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(512)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn, messages <-chan *goredis.Message, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
				return
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

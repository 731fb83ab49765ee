package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"spaceHub/internal/errs"
	"spaceHub/internal/utils"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	maxMessageSize = 512 * 1024
)

// socketClient sits between one websocket connection and its room. Writes go through
// send so only writePump touches the connection for writing.
type socketClient struct {
	conn    *websocket.Conn
	userID  uint
	send    chan []byte
	limiter *rate.Limiter

	// authorize, when set, is asked before each broadcast is forwarded. A forbidden or
	// not found answer evicts the client.
	authorize func(ctx context.Context) error
}

func newSocketClient(conn *websocket.Conn, userID uint, limit rate.Limit, burst int) *socketClient {
	return &socketClient{
		conn:    conn,
		userID:  userID,
		send:    make(chan []byte, 64),
		limiter: rate.NewLimiter(limit, burst),
	}
}

// readPump hands every text frame to handle until the peer goes away, exceeds the
// message rate, or handle returns false.
func (c *socketClient) readPump(handle func(message []byte) bool) {
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Warn("websocket closed unexpectedly", "user_id", c.userID, "error", err)
			}
			return
		}
		if !c.limiter.Allow() {
			slog.Warn("closing websocket: message rate limit exceeded", "user_id", c.userID)
			return
		}
		if !handle(message) {
			return
		}
	}
}

// writePump drains send and keeps the connection alive with pings. It returns when send
// is closed or shutdown is done.
func (c *socketClient) writePump(shutdown context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				slog.Warn("websocket write failed", "user_id", c.userID, "error", err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-shutdown.Done():
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			)
			return
		}
	}
}

// socketRoom is the set of local connections on one broker topic. The room holds a
// single subscription shared by its clients.
type socketRoom struct {
	clients map[*socketClient]struct{}
	cancel  context.CancelFunc
}

// socketHub keeps the rooms of one websocket route, keyed by broker topic.
type socketHub struct {
	mu    sync.Mutex
	ctx   context.Context
	rooms map[string]*socketRoom
}

func newSocketHub(ctx context.Context) *socketHub {
	return &socketHub{ctx: ctx, rooms: make(map[string]*socketRoom)}
}

// join adds client to the topic's room. The first client of a room opens the broker
// subscription through subscribe; it is cancelled when the last client leaves.
func (h *socketHub) join(
	topic string,
	client *socketClient,
	subscribe func(ctx context.Context, handler func(message []byte)) error,
) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[topic]
	if !ok {
		roomCtx, cancel := context.WithCancel(h.ctx)
		if err := subscribe(roomCtx, func(message []byte) { h.broadcast(topic, message) }); err != nil {
			cancel()
			return err
		}
		room = &socketRoom{clients: make(map[*socketClient]struct{}), cancel: cancel}
		h.rooms[topic] = room
	}
	room.clients[client] = struct{}{}
	return nil
}

func (h *socketHub) leave(topic string, client *socketClient) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[topic]
	if !ok {
		return
	}
	if _, ok := room.clients[client]; ok {
		h.drop(room, client)
	}
	if len(room.clients) == 0 {
		room.cancel()
		delete(h.rooms, topic)
	}
}

// broadcast queues message for every client in the room that may still see it. Clients
// whose access is gone, and clients too slow to keep up, are dropped.
func (h *socketHub) broadcast(topic string, message []byte) {
	h.mu.Lock()
	room, ok := h.rooms[topic]
	if !ok {
		h.mu.Unlock()
		return
	}
	clients := make([]*socketClient, 0, len(room.clients))
	for client := range room.clients {
		clients = append(clients, client)
	}
	h.mu.Unlock()

	// Access checks hit the database, so they run without holding the hub.
	denied := make(map[*socketClient]bool)
	skipped := make(map[*socketClient]bool)
	for _, client := range clients {
		if client.authorize == nil {
			continue
		}
		if err := client.authorize(h.ctx); err != nil {
			if accessRevoked(err) {
				denied[client] = true
			} else {
				slog.Error("websocket access check failed", "topic", topic, "user_id", client.userID, "error", err)
				skipped[client] = true
			}
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, client := range clients {
		if _, ok := room.clients[client]; !ok || skipped[client] {
			continue
		}
		if denied[client] {
			slog.Info("evicting websocket client: access revoked", "topic", topic, "user_id", client.userID)
			h.drop(room, client)
			continue
		}
		select {
		case client.send <- message:
		default:
			slog.Warn("dropping slow websocket client", "topic", topic, "user_id", client.userID)
			h.drop(room, client)
		}
	}
}

// drop removes client from room and closes its send channel, which makes writePump
// close the connection. The caller holds h.mu.
func (h *socketHub) drop(room *socketRoom, client *socketClient) {
	delete(room.clients, client)
	close(client.send)
}

// sendJSON queues a message for a single client. It is a no-op once the client has
// left its room.
func (h *socketHub) sendJSON(topic string, client *socketClient, message any) {
	payload, err := json.Marshal(message)
	if err != nil {
		slog.Error("failed to marshal socket message", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[topic]; !ok {
		return
	} else if _, ok := room.clients[client]; !ok {
		return
	}
	select {
	case client.send <- payload:
	default:
	}
}

func (h *socketHub) count(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if room, ok := h.rooms[topic]; ok {
		return len(room.clients)
	}
	return 0
}

// accessRevoked reports whether err means the user may no longer use the socket's
// workspace or channel.
func accessRevoked(err error) bool {
	kind := errs.KindOf(err)
	return kind == errs.KindForbidden || kind == errs.KindNotFound
}

// socketToken reads the token from the query string, since browsers cannot set headers
// on websocket requests, or from a bearer header.
func socketToken(ctx *gin.Context) string {
	if token := ctx.Query("token"); token != "" {
		return token
	}
	return utils.BearerToken(ctx.GetHeader("Authorization"))
}

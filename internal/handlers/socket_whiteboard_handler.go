package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/services"
)

type SocketWhiteboardHandler struct {
	ctx               context.Context
	upgrader          websocket.Upgrader
	hub               *socketHub
	authService       *services.AuthenticationService
	whiteboardService *services.WhiteboardService
	rateLimit         rate.Limit
	burst             int
}

// NewSocketWhiteboardHandler serves whiteboard connections until ctx is done.
func NewSocketWhiteboardHandler(
	ctx context.Context,
	authService *services.AuthenticationService,
	whiteboardService *services.WhiteboardService,
	messagesPerSecond float64,
	burst int,
) *SocketWhiteboardHandler {
	return &SocketWhiteboardHandler{
		ctx: ctx,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		hub:               newSocketHub(ctx),
		authService:       authService,
		whiteboardService: whiteboardService,
		rateLimit:         rate.Limit(messagesPerSecond),
		burst:             burst,
	}
}

// HandleSocketWhiteboardRoute checks workspace access, upgrades, and then runs one
// editing session with its own undo history. Every accepted change reaches all
// connections on the board through the broker.
func (swh *SocketWhiteboardHandler) HandleSocketWhiteboardRoute(ctx *gin.Context) {
	token := socketToken(ctx)
	if token == "" {
		abortWithError(ctx, errs.ErrUnauthorized)
		return
	}
	claims, err := swh.authService.VerifyToken(token)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	session, board, errors := swh.whiteboardService.OpenSession(ctx.Request.Context(), workspaceID, claims.ID)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}

	conn, err := swh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		slog.WarnContext(ctx.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}

	topic := enums.RedisChannelWhiteboard(workspaceID)
	client := newSocketClient(conn, claims.ID, swh.rateLimit, swh.burst)
	client.authorize = session.Authorize
	err = swh.hub.join(topic, client, func(subCtx context.Context, handler func([]byte)) error {
		return swh.whiteboardService.Subscribe(subCtx, workspaceID, handler)
	})
	if err != nil {
		slog.Error("whiteboard subscription failed", "workspace_id", workspaceID, "error", err)
		closeWithError(conn)
		return
	}
	defer swh.hub.leave(topic, client)

	go client.writePump(swh.ctx)

	swh.hub.sendJSON(topic, client, &models.WhiteboardSocketMessage{
		Event:      enums.SOCKET_EVENT_WHITEBOARD_STATE,
		Whiteboard: board,
	})
	swh.hub.sendJSON(topic, client, session.State())

	client.readPump(func(raw []byte) bool {
		var message models.WhiteboardSocketMessage
		if err := json.Unmarshal(raw, &message); err != nil {
			swh.sendError(topic, client, errs.ErrInvalidRequestBody)
			return true
		}
		reply, err := session.Handle(swh.ctx, &message)
		if err != nil {
			swh.sendError(topic, client, err)
			// The error is flushed before leave closes the connection.
			return !accessRevoked(err)
		}
		swh.hub.sendJSON(topic, client, reply)
		return true
	})
}

func (swh *SocketWhiteboardHandler) sendError(topic string, client *socketClient, err error) {
	if errs.KindOf(err) == errs.KindInternal {
		slog.Error("whiteboard event failed", "user_id", client.userID, "error", err)
		err = errs.ErrInternal
	}
	swh.hub.sendJSON(topic, client, &models.WhiteboardSocketMessage{
		Event: enums.SOCKET_EVENT_ERROR,
		Error: err.Error(),
	})
}

// ConnectedClients reports how many local connections are open on a board.
func (swh *SocketWhiteboardHandler) ConnectedClients(workspaceID uint) int {
	return swh.hub.count(enums.RedisChannelWhiteboard(workspaceID))
}

func closeWithError(conn *websocket.Conn) {
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseInternalServerErr, errs.ErrInternal.Error()),
	)
	conn.Close()
}

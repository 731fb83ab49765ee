package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/services"
)

// SocketChatHandler streams a channel's new, edited and reacted messages to listeners.
// Messages are sent over REST; the socket is receive only.
type SocketChatHandler struct {
	ctx         context.Context
	upgrader    websocket.Upgrader
	hub         *socketHub
	authService *services.AuthenticationService
	chatService *services.ChatService
	rateLimit   rate.Limit
	burst       int
}

func NewSocketChatHandler(
	ctx context.Context,
	authService *services.AuthenticationService,
	chatService *services.ChatService,
	messagesPerSecond float64,
	burst int,
) *SocketChatHandler {
	return &SocketChatHandler{
		ctx: ctx,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		hub:         newSocketHub(ctx),
		authService: authService,
		chatService: chatService,
		rateLimit:   rate.Limit(messagesPerSecond),
		burst:       burst,
	}
}

func (sch *SocketChatHandler) HandleSocketChatRoute(ctx *gin.Context) {
	token := socketToken(ctx)
	if token == "" {
		abortWithError(ctx, errs.ErrUnauthorized)
		return
	}
	claims, err := sch.authService.VerifyToken(token)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	channelID, ok := pathID(ctx, "channelId")
	if !ok {
		return
	}
	if errors := sch.chatService.WatchChannel(ctx.Request.Context(), channelID, claims.ID); len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}

	conn, err := sch.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		slog.WarnContext(ctx.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}

	topic := enums.RedisChannelMessages(channelID)
	client := newSocketClient(conn, claims.ID, sch.rateLimit, sch.burst)
	client.authorize = func(ctx context.Context) error {
		if errors := sch.chatService.WatchChannel(ctx, channelID, claims.ID); len(errors) > 0 {
			return errors[0]
		}
		return nil
	}
	err = sch.hub.join(topic, client, func(subCtx context.Context, handler func([]byte)) error {
		return sch.chatService.Subscribe(subCtx, channelID, handler)
	})
	if err != nil {
		slog.Error("channel subscription failed", "channel_id", channelID, "error", err)
		closeWithError(conn)
		return
	}
	defer sch.hub.leave(topic, client)

	go client.writePump(sch.ctx)

	// Incoming frames are ignored; reading keeps the pong deadline moving and notices
	// when the peer goes away.
	client.readPump(func([]byte) bool { return true })
}

func (sch *SocketChatHandler) ConnectedClients(channelID uint) int {
	return sch.hub.count(enums.RedisChannelMessages(channelID))
}

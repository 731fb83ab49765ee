package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"spaceHub/configs"
	"spaceHub/internal/docs"
	"spaceHub/internal/enums"
	"spaceHub/internal/handlers"
	"spaceHub/internal/services"
)

const shutdownTimeout = 10 * time.Second

type HttpServer struct {
	ctx                     context.Context
	cancel                  context.CancelFunc
	config                  *configs.Config
	router                  *gin.Engine
	authService             *services.AuthenticationService
	restHandler             *handlers.RestHandler
	socketChatHandler       *handlers.SocketChatHandler
	socketWhiteboardHandler *handlers.SocketWhiteboardHandler
	uploadsDir              string
}

// NewHttpServer builds the router. cancel is called on shutdown so that websocket
// connections and broker subscriptions derived from the app context are closed.
// uploadsDir is served under /uploads when non-empty.
func NewHttpServer(
	ctx context.Context,
	cancel context.CancelFunc,
	config *configs.Config,
	authService *services.AuthenticationService,
	restHandler *handlers.RestHandler,
	socketChatHandler *handlers.SocketChatHandler,
	socketWhiteboardHandler *handlers.SocketWhiteboardHandler,
	uploadsDir string,
) *HttpServer {
	hs := &HttpServer{
		ctx:                     ctx,
		cancel:                  cancel,
		config:                  config,
		authService:             authService,
		restHandler:             restHandler,
		socketChatHandler:       socketChatHandler,
		socketWhiteboardHandler: socketWhiteboardHandler,
		uploadsDir:              uploadsDir,
	}
	hs.initializeGin()
	hs.setupRestfulRoutes()
	hs.setupWebSocketRoutes()
	if config.Viper.GetBool("docs.enabled") {
		docs.Register(hs.router)
	}
	return hs
}

// Router exposes the engine, mainly for tests.
func (hs *HttpServer) Router() *gin.Engine {
	return hs.router
}

func (hs *HttpServer) Run() {
	server := hs.startServer()

	// Wait for interrupt signal to gracefully shut down the server
	hs.waitForShutdown(server)
}

func (hs *HttpServer) initializeGin() {
	gin.SetMode(hs.config.Viper.GetString("server.mode"))
	hs.router = gin.New()
	hs.router.Use(handlers.RequestLogger(), handlers.RecoveryMiddleware())
	if hs.uploadsDir != "" {
		hs.router.Static(enums.UPLOADS_ROUTE, hs.uploadsDir)
	}
}

func (hs *HttpServer) setupRestfulRoutes() {
	rh := hs.restHandler
	api := hs.router.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", rh.Register)
	auth.POST("/login", rh.Login)

	protected := api.Group("/")
	protected.Use(handlers.MustAuthenticateMiddleware(hs.authService))

	protected.GET("/auth/me", rh.Me)
	protected.GET("/users", rh.GetUsers)

	workspaces := protected.Group("/workspaces")
	workspaces.GET("", rh.GetWorkspaces)
	workspaces.POST("", rh.CreateWorkspace)
	workspaces.GET("/:id", rh.GetWorkspace)
	workspaces.PUT("/:id", rh.UpdateWorkspace)
	workspaces.DELETE("/:id", rh.DeleteWorkspace)

	workspaces.GET("/:id/members", rh.GetMembers)
	workspaces.POST("/:id/members", rh.JoinWorkspace)
	workspaces.PUT("/:id/members/:userId", rh.UpdateMemberRole)
	workspaces.DELETE("/:id/members/:userId", rh.RemoveMember)

	workspaces.GET("/:id/tasks", rh.GetTasks)
	workspaces.POST("/:id/tasks", rh.CreateTask)
	workspaces.GET("/:id/tasks/:taskId", rh.GetTask)
	workspaces.PUT("/:id/tasks/:taskId", rh.UpdateTask)
	workspaces.DELETE("/:id/tasks/:taskId", rh.DeleteTask)

	workspaces.GET("/:id/documents", rh.GetDocuments)
	workspaces.POST("/:id/documents", rh.CreateDocument)

	workspaces.GET("/:id/channels", rh.GetChannels)
	workspaces.POST("/:id/channels", rh.CreateChannel)
	workspaces.GET("/:id/channels/:channelId/messages", rh.GetMessages)
	workspaces.POST("/:id/channels/:channelId/messages", rh.SendMessage)

	workspaces.GET("/:id/events", rh.GetEvents)
	workspaces.POST("/:id/events", rh.CreateEvent)
	workspaces.PUT("/:id/events/:eventId", rh.UpdateEvent)
	workspaces.DELETE("/:id/events/:eventId", rh.DeleteEvent)

	workspaces.GET("/:id/whiteboard", rh.GetWhiteboard)
	workspaces.POST("/:id/whiteboard", rh.UpdateWhiteboard)

	workspaces.GET("/:id/activities", rh.GetActivities)

	protected.GET("/tasks/:taskId", rh.GetTask)
	protected.PUT("/tasks/:taskId", rh.UpdateTask)
	protected.DELETE("/tasks/:taskId", rh.DeleteTask)

	protected.GET("/documents/:docId", rh.GetDocument)
	protected.DELETE("/documents/:docId", rh.DeleteDocument)

	protected.GET("/channels/:channelId/messages", rh.GetMessages)
	protected.POST("/channels/:channelId/messages", rh.SendMessage)
	protected.PUT("/messages/:messageId", rh.EditMessage)
	protected.POST("/messages/:messageId/reactions", rh.ToggleReaction)
}

// Websocket routes authenticate themselves: browsers pass the token as a query parameter.
func (hs *HttpServer) setupWebSocketRoutes() {
	ws := hs.router.Group("/ws")
	ws.GET("/workspaces/:id/whiteboard", hs.socketWhiteboardHandler.HandleSocketWhiteboardRoute)
	ws.GET("/channels/:channelId", hs.socketChatHandler.HandleSocketChatRoute)
}

func (hs *HttpServer) startServer() *http.Server {
	addr := hs.config.Viper.GetString("server.addr")
	server := &http.Server{
		Addr:              addr,
		Handler:           hs.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server started", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	return server
}

func (hs *HttpServer) waitForShutdown(server *http.Server) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case <-hs.ctx.Done():
	}
	slog.Info("shutting down server")

	// Close websocket connections and broker subscriptions first; hijacked connections
	// are not tracked by Shutdown.
	hs.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server exiting")
}

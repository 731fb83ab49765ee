package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"spaceHub/configs"
	"spaceHub/internal/access"
	"spaceHub/internal/enums"
	"spaceHub/internal/handlers"
	"spaceHub/internal/interfaces"
	"spaceHub/internal/repositories"
	"spaceHub/internal/servers/database"
	"spaceHub/internal/servers/http"
	"spaceHub/internal/services"
)

var (
	app  *App
	once sync.Once
)

type App struct {
	redis   *redis.Client
	ctx     context.Context
	cancel  context.CancelFunc
	configs *configs.Config
}

func GetApp() *App {
	once.Do(func() {
		app = &App{}
	})
	return app
}

// LetsGo wires every layer and serves until SIGINT/SIGTERM.
func (app *App) LetsGo(configPath string) error {
	app.ctx, app.cancel = context.WithCancel(context.Background())
	defer app.cancel()

	app.initializeConfigs(configPath)
	app.initializeLogger()
	if err := app.initializeRedis(); err != nil {
		return err
	}
	defer app.redis.Close()

	db := database.GetDB(app.configs)

	fileManager, uploadsDir, err := app.initializeStorage()
	if err != nil {
		return err
	}

	authorizer := access.NewPolicy()
	broker := services.NewRedisBrokerService(app.redis)
	maxUploadBytes := app.configs.Viper.GetInt64("upload.max_bytes")

	authRepo := repositories.NewAuthenticationRepository(db)
	workspaceRepo := repositories.NewWorkspaceRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	eventRepo := repositories.NewEventRepository(db)
	whiteboardRepo := repositories.NewWhiteboardRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	fileManagerService := services.NewFileManagerService(fileManager, maxUploadBytes)
	authService := services.NewAuthenticationService(authRepo, app.configs)
	activityService := services.NewActivityService(activityRepo, workspaceRepo, authorizer)
	workspaceService := services.NewWorkspaceService(workspaceRepo, authorizer, activityService, fileManagerService)
	taskService := services.NewTaskService(taskRepo, workspaceRepo, authorizer, activityService)
	documentService := services.NewDocumentService(documentRepo, workspaceRepo, authorizer, fileManagerService, activityService)
	chatService := services.NewChatService(chatRepo, authRepo, workspaceRepo, authorizer, broker, activityService)
	eventService := services.NewEventService(eventRepo, authRepo, workspaceRepo, authorizer)
	whiteboardService := services.NewWhiteboardService(whiteboardRepo, workspaceRepo, authorizer, broker, activityService)

	restHandler := handlers.NewRestHandler(
		authService,
		workspaceService,
		taskService,
		documentService,
		chatService,
		eventService,
		whiteboardService,
		activityService,
		maxUploadBytes,
	)

	rateLimit := app.configs.Viper.GetFloat64("whiteboard.rate_limit")
	burst := app.configs.Viper.GetInt("whiteboard.burst")
	socketChatHandler := handlers.NewSocketChatHandler(app.ctx, authService, chatService, rateLimit, burst)
	socketWhiteboardHandler := handlers.NewSocketWhiteboardHandler(app.ctx, authService, whiteboardService, rateLimit, burst)

	http.NewHttpServer(
		app.ctx,
		app.cancel,
		app.configs,
		authService,
		restHandler,
		socketChatHandler,
		socketWhiteboardHandler,
		uploadsDir,
	).Run()
	return nil
}

// Migrate creates or updates the schema and exits.
func (app *App) Migrate(configPath string) error {
	app.initializeConfigs(configPath)
	app.initializeLogger()

	db, err := database.Open(app.configs)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	closeDB(db)
	slog.Info("database migrated successfully")
	return nil
}

func (app *App) initializeConfigs(configPath string) {
	app.configs = configs.GetConfig(configPath)
}

// initializeLogger logs JSON in release mode and text otherwise.
func (app *App) initializeLogger() {
	var handler slog.Handler
	if app.configs.Viper.GetString("server.mode") == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	slog.SetDefault(slog.New(handler))
}

func (app *App) initializeRedis() error {
	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.configs.Viper.GetString("redis.addr"),
		Password: app.configs.Viper.GetString("redis.password"),
		DB:       app.configs.Viper.GetInt("redis.db"),
	})
	if err := app.redis.Ping(app.ctx).Err(); err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	return nil
}

// initializeStorage picks the document store. The returned directory is served under
// /uploads and is empty for object storage.
func (app *App) initializeStorage() (interfaces.FileManager, string, error) {
	switch driver := app.configs.Viper.GetString("storage.driver"); driver {
	case enums.STORAGE_DRIVER_MINIO:
		minioService, err := services.NewMinioService(app.ctx, app.configs)
		if err != nil {
			return nil, "", fmt.Errorf("connect to minio: %w", err)
		}
		return minioService, "", nil
	case enums.STORAGE_DRIVER_LOCAL, "":
		localStorage, err := services.NewLocalStorageService(app.configs.Viper.GetString("storage.local.dir"))
		if err != nil {
			return nil, "", err
		}
		return localStorage, localStorage.Dir(), nil
	default:
		return nil, "", fmt.Errorf("unsupported storage driver %q", driver)
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spaceHub/internal/models"
	"spaceHub/internal/msgs"
	"spaceHub/internal/services"
	"spaceHub/internal/utils"
)

type RestHandler struct {
	authService       *services.AuthenticationService
	workspaceService  *services.WorkspaceService
	taskService       *services.TaskService
	documentService   *services.DocumentService
	chatService       *services.ChatService
	eventService      *services.EventService
	whiteboardService *services.WhiteboardService
	activityService   *services.ActivityService
	maxUploadBytes    int64
}

func NewRestHandler(
	authService *services.AuthenticationService,
	workspaceService *services.WorkspaceService,
	taskService *services.TaskService,
	documentService *services.DocumentService,
	chatService *services.ChatService,
	eventService *services.EventService,
	whiteboardService *services.WhiteboardService,
	activityService *services.ActivityService,
	maxUploadBytes int64,
) *RestHandler {
	return &RestHandler{
		authService:       authService,
		workspaceService:  workspaceService,
		taskService:       taskService,
		documentService:   documentService,
		chatService:       chatService,
		eventService:      eventService,
		whiteboardService: whiteboardService,
		activityService:   activityService,
		maxUploadBytes:    maxUploadBytes,
	}
}

func (rh *RestHandler) Register(ctx *gin.Context) {
	var body models.RegisterRequestBody
	if !bindJSON(ctx, &body) {
		return
	}

	user, errors := rh.authService.Register(ctx.Request.Context(), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respond(ctx, http.StatusCreated, msgs.MsgUserCreatedSuccessfully, user)
}

func (rh *RestHandler) Login(ctx *gin.Context) {
	var loginData models.LoginRequestBody
	if !bindJSON(ctx, &loginData) {
		return
	}

	loginResponse, errors := rh.authService.Login(ctx.Request.Context(), &loginData)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, loginResponse)
}

func (rh *RestHandler) Me(ctx *gin.Context) {
	user, errors := rh.authService.GetUser(ctx.Request.Context(), utils.GetUserIdFromContext(ctx))
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, user)
}

func (rh *RestHandler) GetUsers(ctx *gin.Context) {
	page, size := utils.NormalizePage(ctx.Query("page"), ctx.Query("size"))
	users, errors := rh.authService.GetAllUsersWithPagination(ctx.Request.Context(), page, size)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, users)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"spaceHub/internal/models"
	"spaceHub/internal/utils"
)

func (rh *RestHandler) GetWhiteboard(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	whiteboard, errors := rh.whiteboardService.GetWhiteboard(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx))
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, whiteboard)
}

func (rh *RestHandler) UpdateWhiteboard(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var body models.UpdateWhiteboardRequestBody
	if !bindJSON(ctx, &body) {
		return
	}

	whiteboard, errors := rh.whiteboardService.UpdateWhiteboard(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, whiteboard)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spaceHub/internal/models"
	"spaceHub/internal/msgs"
	"spaceHub/internal/utils"
)

func (rh *RestHandler) GetWorkspaces(ctx *gin.Context) {
	workspaces, errors := rh.workspaceService.GetWorkspaces(ctx.Request.Context(), utils.GetUserIdFromContext(ctx))
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, workspaces)
}

func (rh *RestHandler) CreateWorkspace(ctx *gin.Context) {
	var body models.CreateWorkspaceRequestBody
	if !bindJSON(ctx, &body) {
		return
	}

	workspace, errors := rh.workspaceService.CreateWorkspace(ctx.Request.Context(), utils.GetUserIdFromContext(ctx), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respond(ctx, http.StatusCreated, msgs.MsgOperationSuccessful, workspace)
}

func (rh *RestHandler) GetWorkspace(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	workspace, errors := rh.workspaceService.GetWorkspace(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx))
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, workspace)
}

func (rh *RestHandler) UpdateWorkspace(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var body models.UpdateWorkspaceRequestBody
	if !bindJSON(ctx, &body) {
		return
	}

	workspace, errors := rh.workspaceService.UpdateWorkspace(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, workspace)
}

func (rh *RestHandler) DeleteWorkspace(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if errors := rh.workspaceService.DeleteWorkspace(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx)); len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respond(ctx, http.StatusOK, msgs.MsgWorkspaceDeleted, nil)
}

func (rh *RestHandler) GetMembers(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	members, errors := rh.workspaceService.GetMembers(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx))
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, members)
}

func (rh *RestHandler) JoinWorkspace(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	joined, errors := rh.workspaceService.JoinWorkspace(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx))
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respond(ctx, http.StatusOK, msgs.MsgJoinedWorkspace, joined)
}

func (rh *RestHandler) UpdateMemberRole(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	targetID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}
	var body models.UpdateMemberRoleRequestBody
	if !bindJSON(ctx, &body) {
		return
	}

	members, errors := rh.workspaceService.UpdateMemberRole(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), targetID, body.Role)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, members)
}

func (rh *RestHandler) RemoveMember(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	targetID, ok := pathID(ctx, "userId")
	if !ok {
		return
	}

	members, errors := rh.workspaceService.RemoveMember(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), targetID)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, members)
}

func (rh *RestHandler) GetActivities(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	page, limit := utils.NormalizePage(ctx.Query("page"), ctx.Query("limit"))

	activities, errors := rh.activityService.GetActivities(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), page, limit)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, activities)
}

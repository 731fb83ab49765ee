package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spaceHub/internal/models"
	"spaceHub/internal/msgs"
	"spaceHub/internal/utils"
)

// optionalWorkspaceID reads :id for routes nested under a workspace; top-level routes
// have no such parameter and get 0.
func optionalWorkspaceID(ctx *gin.Context) (uint, bool) {
	if ctx.Param("id") == "" {
		return 0, true
	}
	return pathID(ctx, "id")
}

func (rh *RestHandler) GetTasks(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	tasks, errors := rh.taskService.GetTasks(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), ctx.Query("status"))
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, tasks)
}

func (rh *RestHandler) CreateTask(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var body models.TaskRequestBody
	if !bindJSON(ctx, &body) {
		return
	}

	task, errors := rh.taskService.CreateTask(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respond(ctx, http.StatusCreated, msgs.MsgOperationSuccessful, task)
}

func (rh *RestHandler) GetTask(ctx *gin.Context) {
	workspaceID, ok := optionalWorkspaceID(ctx)
	if !ok {
		return
	}
	taskID, ok := pathID(ctx, "taskId")
	if !ok {
		return
	}

	task, errors := rh.taskService.GetTask(ctx.Request.Context(), workspaceID, taskID, utils.GetUserIdFromContext(ctx))
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, task)
}

func (rh *RestHandler) UpdateTask(ctx *gin.Context) {
	workspaceID, ok := optionalWorkspaceID(ctx)
	if !ok {
		return
	}
	taskID, ok := pathID(ctx, "taskId")
	if !ok {
		return
	}
	var body models.TaskRequestBody
	if !bindJSON(ctx, &body) {
		return
	}

	task, errors := rh.taskService.UpdateTask(ctx.Request.Context(), workspaceID, taskID, utils.GetUserIdFromContext(ctx), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, task)
}

func (rh *RestHandler) DeleteTask(ctx *gin.Context) {
	workspaceID, ok := optionalWorkspaceID(ctx)
	if !ok {
		return
	}
	taskID, ok := pathID(ctx, "taskId")
	if !ok {
		return
	}

	if errors := rh.taskService.DeleteTask(ctx.Request.Context(), workspaceID, taskID, utils.GetUserIdFromContext(ctx)); len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respond(ctx, http.StatusOK, msgs.MsgTaskDeleted, nil)
}

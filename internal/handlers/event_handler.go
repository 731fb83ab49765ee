package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/msgs"
	"spaceHub/internal/utils"
)

// queryTime parses an optional RFC 3339 query value.
func queryTime(ctx *gin.Context, name string) (*time.Time, bool) {
	value := ctx.Query(name)
	if value == "" {
		return nil, true
	}
	parsed, err := utils.StrToTime(value)
	if err != nil {
		abortWithError(ctx, errs.ErrInvalidParams)
		return nil, false
	}
	return parsed, true
}

func (rh *RestHandler) GetEvents(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	from, ok := queryTime(ctx, "from")
	if !ok {
		return
	}
	to, ok := queryTime(ctx, "to")
	if !ok {
		return
	}

	events, errors := rh.eventService.GetEvents(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), from, to)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, events)
}

func (rh *RestHandler) CreateEvent(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var body models.EventRequestBody
	if !bindJSON(ctx, &body) {
		return
	}

	event, errors := rh.eventService.CreateEvent(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respond(ctx, http.StatusCreated, msgs.MsgOperationSuccessful, event)
}

func (rh *RestHandler) UpdateEvent(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "eventId")
	if !ok {
		return
	}
	var body models.EventRequestBody
	if !bindJSON(ctx, &body) {
		return
	}

	event, errors := rh.eventService.UpdateEvent(ctx.Request.Context(), workspaceID, eventID, utils.GetUserIdFromContext(ctx), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, event)
}

func (rh *RestHandler) DeleteEvent(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	eventID, ok := pathID(ctx, "eventId")
	if !ok {
		return
	}

	if errors := rh.eventService.DeleteEvent(ctx.Request.Context(), workspaceID, eventID, utils.GetUserIdFromContext(ctx)); len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respond(ctx, http.StatusOK, msgs.MsgEventRemoved, nil)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spaceHub/internal/models"
	"spaceHub/internal/msgs"
	"spaceHub/internal/utils"
)

func (rh *RestHandler) GetChannels(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	channels, errors := rh.chatService.GetChannels(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx))
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, channels)
}

func (rh *RestHandler) CreateChannel(ctx *gin.Context) {
	workspaceID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var body models.CreateChannelRequestBody
	if !bindJSON(ctx, &body) {
		return
	}

	channel, errors := rh.chatService.CreateChannel(ctx.Request.Context(), workspaceID, utils.GetUserIdFromContext(ctx), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respond(ctx, http.StatusCreated, msgs.MsgOperationSuccessful, channel)
}

func (rh *RestHandler) GetMessages(ctx *gin.Context) {
	workspaceID, ok := optionalWorkspaceID(ctx)
	if !ok {
		return
	}
	channelID, ok := pathID(ctx, "channelId")
	if !ok {
		return
	}

	messages, errors := rh.chatService.GetMessages(ctx.Request.Context(), workspaceID, channelID, utils.GetUserIdFromContext(ctx))
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, messages)
}

func (rh *RestHandler) SendMessage(ctx *gin.Context) {
	workspaceID, ok := optionalWorkspaceID(ctx)
	if !ok {
		return
	}
	channelID, ok := pathID(ctx, "channelId")
	if !ok {
		return
	}
	var body models.MessageRequest
	if !bindJSON(ctx, &body) {
		return
	}

	message, errors := rh.chatService.SendMessage(ctx.Request.Context(), workspaceID, channelID, utils.GetUserIdFromContext(ctx), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respond(ctx, http.StatusCreated, msgs.MsgOperationSuccessful, message)
}

func (rh *RestHandler) EditMessage(ctx *gin.Context) {
	messageID, ok := pathID(ctx, "messageId")
	if !ok {
		return
	}
	var body models.MessageRequest
	if !bindJSON(ctx, &body) {
		return
	}

	message, errors := rh.chatService.EditMessage(ctx.Request.Context(), messageID, utils.GetUserIdFromContext(ctx), &body)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, message)
}

func (rh *RestHandler) ToggleReaction(ctx *gin.Context) {
	messageID, ok := pathID(ctx, "messageId")
	if !ok {
		return
	}
	var body models.ReactionRequest
	if !bindJSON(ctx, &body) {
		return
	}

	message, errors := rh.chatService.ToggleReaction(ctx.Request.Context(), messageID, utils.GetUserIdFromContext(ctx), body.Emoji)
	if len(errors) > 0 {
		abortWithErrors(ctx, errors)
		return
	}
	respondOK(ctx, message)
}

package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"spaceHub/internal/access"
	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/interfaces"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
	"spaceHub/internal/validators"
)

const recentMessagesLimit = 50

type ChatService struct {
	workspaceGate
	chatRepo        *repositories.ChatRepository
	authRepo        *repositories.AuthenticationRepository
	broker          interfaces.Broker
	activityService *ActivityService
}

func NewChatService(
	chatRepo *repositories.ChatRepository,
	authRepo *repositories.AuthenticationRepository,
	workspaceRepo *repositories.WorkspaceRepository,
	authorizer access.Authorizer,
	broker interfaces.Broker,
	activityService *ActivityService,
) *ChatService {
	return &ChatService{
		workspaceGate:   workspaceGate{workspaceRepo: workspaceRepo, authorizer: authorizer},
		chatRepo:        chatRepo,
		authRepo:        authRepo,
		broker:          broker,
		activityService: activityService,
	}
}

// GetChannels lists public channels plus the private ones the caller belongs to.
func (cs *ChatService) GetChannels(ctx context.Context, workspaceID, actorID uint) ([]*models.ChannelResponse, []error) {
	if _, errors := cs.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}

	channels, err := cs.chatRepo.FindChannelsByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, []error{err}
	}
	responses := make([]*models.ChannelResponse, 0, len(channels))
	for i := range channels {
		if channels[i].IsPrivate && !channels[i].HasMember(actorID) {
			continue
		}
		responses = append(responses, channels[i].ToChannelResponse())
	}
	return responses, nil
}

// CreateChannel lower-cases the name, which must be unique in the workspace. The creator
// is always a member; requested members outside the workspace are dropped.
func (cs *ChatService) CreateChannel(ctx context.Context, workspaceID, actorID uint, body *models.CreateChannelRequestBody) (*models.ChannelResponse, []error) {
	workspace, errors := cs.authorize(ctx, workspaceID, actorID, access.Options{})
	if len(errors) > 0 {
		return nil, errors
	}
	if errors := validators.ValidateChannel(body); len(errors) > 0 {
		return nil, errors
	}

	name := strings.ToLower(strings.TrimSpace(body.Name))
	exists, err := cs.chatRepo.CheckChannelNameExists(ctx, workspaceID, name)
	if err != nil {
		return nil, []error{err}
	}
	if exists {
		return nil, []error{errs.ErrChannelAlreadyExists}
	}

	memberIDs := []uint{actorID}
	for _, id := range body.Members {
		if id != actorID && access.IsMember(workspace, id) {
			memberIDs = append(memberIDs, id)
		}
	}
	members, err := cs.authRepo.FindUsersByIDs(ctx, memberIDs)
	if err != nil {
		return nil, []error{err}
	}

	created, err := cs.chatRepo.CreateChannel(ctx, &models.Channel{
		Name:        name,
		Description: body.Description,
		WorkspaceID: workspaceID,
		CreatedByID: actorID,
		IsPrivate:   body.IsPrivate,
		Members:     members,
	})
	if err != nil {
		return nil, []error{err}
	}

	cs.activityService.Record(ctx, &models.Activity{
		WorkspaceID: workspaceID,
		Type:        enums.ACTIVITY_CHANNEL_CREATED,
		UserID:      actorID,
		TargetID:    &created.ID,
		TargetModel: enums.TARGET_CHANNEL,
		Metadata:    models.Metadata{"name": created.Name},
	})
	return created.ToChannelResponse(), nil
}

// findChannel authorizes the actor on the channel's workspace and, for private channels,
// on the channel itself. A non-zero workspaceID must match the channel's workspace.
func (cs *ChatService) findChannel(ctx context.Context, workspaceID, channelID, actorID uint) (*models.Channel, []error) {
	channel, err := cs.chatRepo.FindChannelByID(ctx, channelID)
	if err != nil {
		return nil, []error{err}
	}
	if workspaceID != 0 && channel.WorkspaceID != workspaceID {
		return nil, []error{errs.ErrChannelNotFound}
	}
	if _, errors := cs.authorize(ctx, channel.WorkspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}
	if channel.IsPrivate && !channel.HasMember(actorID) {
		return nil, []error{errs.ErrNotChannelMember}
	}
	return channel, nil
}

func (cs *ChatService) GetMessages(ctx context.Context, workspaceID, channelID, actorID uint) ([]*models.MessageResponse, []error) {
	channel, errors := cs.findChannel(ctx, workspaceID, channelID, actorID)
	if len(errors) > 0 {
		return nil, errors
	}

	messages, err := cs.chatRepo.GetRecentMessages(ctx, channel.ID, recentMessagesLimit)
	if err != nil {
		return nil, []error{err}
	}
	responses := make([]*models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messages[i].ToMessageResponse())
	}
	return responses, nil
}

// SendMessage stores the message and publishes it on the channel's redis topic.
func (cs *ChatService) SendMessage(ctx context.Context, workspaceID, channelID, actorID uint, body *models.MessageRequest) (*models.MessageResponse, []error) {
	channel, errors := cs.findChannel(ctx, workspaceID, channelID, actorID)
	if len(errors) > 0 {
		return nil, errors
	}
	if errors := validators.ValidateMessage(body); len(errors) > 0 {
		return nil, errors
	}

	message, err := cs.chatRepo.SaveMessage(ctx, &models.Message{
		Content:     body.Content,
		ChannelID:   channel.ID,
		SenderID:    actorID,
		Attachments: body.Attachments,
		ThreadID:    body.ThreadID,
	})
	if err != nil {
		return nil, []error{err}
	}

	response := message.ToMessageResponse()
	cs.publish(ctx, channel.ID, response)

	cs.activityService.Record(ctx, &models.Activity{
		WorkspaceID: channel.WorkspaceID,
		Type:        enums.ACTIVITY_MESSAGE_SENT,
		UserID:      actorID,
		TargetID:    &message.ID,
		TargetModel: enums.TARGET_MESSAGE,
		Metadata:    models.Metadata{"channel": channel.Name},
	})
	return response, nil
}

// EditMessage is allowed for the sender only and marks the message edited.
func (cs *ChatService) EditMessage(ctx context.Context, messageID, actorID uint, body *models.MessageRequest) (*models.MessageResponse, []error) {
	message, err := cs.chatRepo.FindMessageByID(ctx, messageID)
	if err != nil {
		return nil, []error{err}
	}
	if message.SenderID != actorID {
		return nil, []error{errs.ErrNotMessageSender}
	}
	if errors := validators.ValidateMessage(body); len(errors) > 0 {
		return nil, errors
	}

	message.Content = body.Content
	message.IsEdited = true
	updated, err := cs.chatRepo.UpdateMessage(ctx, message)
	if err != nil {
		return nil, []error{err}
	}

	response := updated.ToMessageResponse()
	cs.publish(ctx, updated.ChannelID, response)
	return response, nil
}

// ToggleReaction adds or removes the caller under emoji.
func (cs *ChatService) ToggleReaction(ctx context.Context, messageID, actorID uint, emoji string) (*models.MessageResponse, []error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, []error{errs.ErrEmojiRequired}
	}

	message, err := cs.chatRepo.FindMessageByID(ctx, messageID)
	if err != nil {
		return nil, []error{err}
	}
	if _, errors := cs.findChannel(ctx, 0, message.ChannelID, actorID); len(errors) > 0 {
		return nil, errors
	}

	message.Reactions = message.Reactions.Toggle(emoji, actorID)
	updated, err := cs.chatRepo.UpdateMessage(ctx, message)
	if err != nil {
		return nil, []error{err}
	}

	response := updated.ToMessageResponse()
	cs.publish(ctx, updated.ChannelID, response)
	return response, nil
}

func (cs *ChatService) publish(ctx context.Context, channelID uint, message *models.MessageResponse) {
	payload, err := json.Marshal(message)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal message", "error", err)
		return
	}
	if err := cs.broker.Publish(ctx, enums.RedisChannelMessages(channelID), payload); err != nil {
		slog.WarnContext(ctx, "failed to publish message", "channel_id", channelID, "error", err)
	}
}

// WatchChannel checks that actorID may read the channel before it is subscribed to.
func (cs *ChatService) WatchChannel(ctx context.Context, channelID, actorID uint) []error {
	_, errors := cs.findChannel(ctx, 0, channelID, actorID)
	return errors
}

// Subscribe delivers every message published on the channel to handler until ctx is done.
func (cs *ChatService) Subscribe(ctx context.Context, channelID uint, handler func(message []byte)) error {
	return cs.broker.Subscribe(ctx, enums.RedisChannelMessages(channelID), handler)
}

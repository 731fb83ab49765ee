package services

import (
	"context"
	"encoding/json"
	"log/slog"

	"spaceHub/internal/access"
	"spaceHub/internal/enums"
	"spaceHub/internal/interfaces"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
	"spaceHub/internal/validators"
)

type WhiteboardService struct {
	workspaceGate
	whiteboardRepo  *repositories.WhiteboardRepository
	broker          interfaces.Broker
	activityService *ActivityService
}

func NewWhiteboardService(
	whiteboardRepo *repositories.WhiteboardRepository,
	workspaceRepo *repositories.WorkspaceRepository,
	authorizer access.Authorizer,
	broker interfaces.Broker,
	activityService *ActivityService,
) *WhiteboardService {
	return &WhiteboardService{
		workspaceGate:   workspaceGate{workspaceRepo: workspaceRepo, authorizer: authorizer},
		whiteboardRepo:  whiteboardRepo,
		broker:          broker,
		activityService: activityService,
	}
}

// GetWhiteboard returns the workspace's board, creating an empty one on first access.
func (ws *WhiteboardService) GetWhiteboard(ctx context.Context, workspaceID, actorID uint) (*models.WhiteboardResponse, []error) {
	if _, errors := ws.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}
	whiteboard, err := ws.whiteboardRepo.FindOrCreateWhiteboard(ctx, workspaceID)
	if err != nil {
		return nil, []error{err}
	}
	return whiteboard.ToWhiteboardResponse(), nil
}

// UpdateWhiteboard replaces the elements and background present in body.
func (ws *WhiteboardService) UpdateWhiteboard(ctx context.Context, workspaceID, actorID uint, body *models.UpdateWhiteboardRequestBody) (*models.WhiteboardResponse, []error) {
	if _, errors := ws.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}
	if errors := validators.ValidateElements(body.Elements); len(errors) > 0 {
		return nil, errors
	}

	response, err := ws.save(ctx, workspaceID, actorID, body.Elements, body.Background)
	if err != nil {
		return nil, []error{err}
	}

	ws.activityService.Record(ctx, &models.Activity{
		WorkspaceID: workspaceID,
		Type:        enums.ACTIVITY_WHITEBOARD_UPDATED,
		UserID:      actorID,
		TargetID:    &response.ID,
		TargetModel: enums.TARGET_WHITEBOARD,
	})
	return response, nil
}

// save persists the board and fans the new state out to every connected client. Nil
// elements and an empty background keep the stored values.
func (ws *WhiteboardService) save(ctx context.Context, workspaceID, actorID uint, elements models.Elements, background string) (*models.WhiteboardResponse, error) {
	whiteboard, err := ws.whiteboardRepo.FindOrCreateWhiteboard(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if elements != nil {
		elements = elements.Clone()
		for i := range elements {
			if elements[i].CreatedBy == 0 {
				elements[i].CreatedBy = actorID
			}
			elements[i].LastModifiedBy = actorID
		}
		whiteboard.Elements = elements
	}
	if background != "" {
		whiteboard.Background = background
	}
	whiteboard.LastModifiedByID = &actorID
	whiteboard.LastModifiedBy = nil

	saved, err := ws.whiteboardRepo.SaveWhiteboard(ctx, whiteboard)
	if err != nil {
		return nil, err
	}

	response := saved.ToWhiteboardResponse()
	ws.publish(ctx, workspaceID, response)
	return response, nil
}

func (ws *WhiteboardService) publish(ctx context.Context, workspaceID uint, whiteboard *models.WhiteboardResponse) {
	payload, err := json.Marshal(models.WhiteboardSocketMessage{
		Event:      enums.SOCKET_EVENT_WHITEBOARD_STATE,
		Whiteboard: whiteboard,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal whiteboard state", "error", err)
		return
	}
	if err := ws.broker.Publish(ctx, enums.RedisChannelWhiteboard(workspaceID), payload); err != nil {
		slog.WarnContext(ctx, "failed to publish whiteboard state", "workspace_id", workspaceID, "error", err)
	}
}

// Subscribe delivers every state published for the workspace's board to handler until
// ctx is done.
func (ws *WhiteboardService) Subscribe(ctx context.Context, workspaceID uint, handler func(message []byte)) error {
	return ws.broker.Subscribe(ctx, enums.RedisChannelWhiteboard(workspaceID), handler)
}

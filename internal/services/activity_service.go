package services

import (
	"context"
	"log/slog"

	"spaceHub/internal/access"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
)

type ActivityService struct {
	workspaceGate
	activityRepo *repositories.ActivityRepository
}

func NewActivityService(
	activityRepo *repositories.ActivityRepository,
	workspaceRepo *repositories.WorkspaceRepository,
	authorizer access.Authorizer,
) *ActivityService {
	return &ActivityService{
		workspaceGate: workspaceGate{workspaceRepo: workspaceRepo, authorizer: authorizer},
		activityRepo:  activityRepo,
	}
}

// Record stores an activity entry. Failures are logged and never reach the caller.
func (as *ActivityService) Record(ctx context.Context, activity *models.Activity) {
	if err := as.activityRepo.CreateActivity(ctx, activity); err != nil {
		slog.ErrorContext(ctx, "failed to record activity",
			"type", activity.Type,
			"workspace_id", activity.WorkspaceID,
			"error", err,
		)
	}
}

func (as *ActivityService) GetActivities(ctx context.Context, workspaceID, actorID uint, page, size int) (*models.ActivityListResponse, []error) {
	if _, errors := as.authorize(ctx, workspaceID, actorID, access.Options{}); len(errors) > 0 {
		return nil, errors
	}

	activities, total, err := as.activityRepo.FindActivities(ctx, workspaceID, page, size)
	if err != nil {
		return nil, []error{err}
	}

	responses := make([]*models.ActivityResponse, 0, len(activities))
	for i := range activities {
		responses = append(responses, activities[i].ToActivityResponse())
	}
	return &models.ActivityListResponse{
		Activities: responses,
		Pagination: models.NewPagination(page, size, total),
	}, nil
}

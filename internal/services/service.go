package services

import (
	"context"

	"spaceHub/internal/access"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
)

// workspaceGate loads a workspace and runs the access check every workspace-scoped
// service starts with.
type workspaceGate struct {
	workspaceRepo *repositories.WorkspaceRepository
	authorizer    access.Authorizer
}

func (g workspaceGate) authorize(ctx context.Context, workspaceID, actorID uint, opts access.Options) (*models.Workspace, []error) {
	workspace, err := g.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, []error{err}
	}
	if err := g.authorizer.Check(workspace, actorID, opts); err != nil {
		return nil, []error{err}
	}
	return workspace, nil
}

package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"spaceHub/internal/access"
	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
	"spaceHub/internal/repositories"
	"spaceHub/internal/validators"
)

type WorkspaceService struct {
	workspaceGate
	workspaceRepo      *repositories.WorkspaceRepository
	activityService    *ActivityService
	fileManagerService *FileManagerService
}

func NewWorkspaceService(
	workspaceRepo *repositories.WorkspaceRepository,
	authorizer access.Authorizer,
	activityService *ActivityService,
	fileManagerService *FileManagerService,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceGate:      workspaceGate{workspaceRepo: workspaceRepo, authorizer: authorizer},
		workspaceRepo:      workspaceRepo,
		activityService:    activityService,
		fileManagerService: fileManagerService,
	}
}

func (ws *WorkspaceService) GetWorkspaces(ctx context.Context, userID uint) ([]*models.WorkspaceResponse, []error) {
	workspaces, err := ws.workspaceRepo.FindWorkspacesForUser(ctx, userID)
	if err != nil {
		return nil, []error{err}
	}
	responses := make([]*models.WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		responses = append(responses, workspaces[i].ToWorkspaceResponse())
	}
	return responses, nil
}

// CreateWorkspace makes the caller owner and first admin member.
func (ws *WorkspaceService) CreateWorkspace(ctx context.Context, userID uint, body *models.CreateWorkspaceRequestBody) (*models.WorkspaceResponse, []error) {
	if errors := validators.ValidateCreateWorkspace(body); len(errors) > 0 {
		return nil, errors
	}

	workspace := &models.Workspace{
		Name:        strings.TrimSpace(body.Name),
		Description: body.Description,
		OwnerID:     userID,
		Members: []models.WorkspaceMember{{
			UserID:   userID,
			Role:     enums.ROLE_ADMIN,
			JoinedAt: time.Now(),
		}},
	}
	if body.Settings != nil {
		workspace.Settings = *body.Settings
	}

	created, err := ws.workspaceRepo.CreateWorkspace(ctx, workspace)
	if err != nil {
		return nil, []error{err}
	}
	return created.ToWorkspaceResponse(), nil
}

func (ws *WorkspaceService) GetWorkspace(ctx context.Context, workspaceID, userID uint) (*models.WorkspaceResponse, []error) {
	workspace, errors := ws.authorize(ctx, workspaceID, userID, access.Options{})
	if len(errors) > 0 {
		return nil, errors
	}
	return workspace.ToWorkspaceResponse(), nil
}

// UpdateWorkspace changes name, description and settings only.
func (ws *WorkspaceService) UpdateWorkspace(ctx context.Context, workspaceID, userID uint, body *models.UpdateWorkspaceRequestBody) (*models.WorkspaceResponse, []error) {
	workspace, errors := ws.authorize(ctx, workspaceID, userID, access.Options{RequireAdmin: true})
	if len(errors) > 0 {
		return nil, errors
	}
	if errors := validators.ValidateUpdateWorkspace(body); len(errors) > 0 {
		return nil, errors
	}

	if body.Name != nil {
		workspace.Name = strings.TrimSpace(*body.Name)
	}
	if body.Description != nil {
		workspace.Description = *body.Description
	}
	if body.Settings != nil {
		workspace.Settings = *body.Settings
	}

	updated, err := ws.workspaceRepo.UpdateWorkspace(ctx, workspace)
	if err != nil {
		return nil, []error{err}
	}
	return updated.ToWorkspaceResponse(), nil
}

func (ws *WorkspaceService) DeleteWorkspace(ctx context.Context, workspaceID, userID uint) []error {
	if _, errors := ws.authorize(ctx, workspaceID, userID, access.Options{RequireAdmin: true}); len(errors) > 0 {
		return errors
	}

	keys, err := ws.workspaceRepo.DeleteWorkspace(ctx, workspaceID)
	if err != nil {
		return []error{err}
	}

	for _, key := range keys {
		if err := ws.fileManagerService.DeleteDocumentFile(ctx, key); err != nil {
			slog.WarnContext(ctx, "failed to delete stored file", "key", key, "error", err)
		}
	}
	return nil
}

func (ws *WorkspaceService) GetMembers(ctx context.Context, workspaceID, userID uint) ([]*models.MemberResponse, []error) {
	workspace, errors := ws.authorize(ctx, workspaceID, userID, access.Options{})
	if len(errors) > 0 {
		return nil, errors
	}
	return workspace.ToWorkspaceResponse().Members, nil
}

// JoinWorkspace adds the caller as a plain member. Private workspaces are invite only.
func (ws *WorkspaceService) JoinWorkspace(ctx context.Context, workspaceID, userID uint) (*models.JoinWorkspaceResponse, []error) {
	workspace, err := ws.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, []error{err}
	}
	if access.IsMember(workspace, userID) {
		return nil, []error{errs.ErrAlreadyMember}
	}
	if workspace.Settings.IsPrivate {
		return nil, []error{errs.ErrPrivateWorkspaceJoin}
	}

	err = ws.workspaceRepo.AddMember(ctx, &models.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        enums.ROLE_MEMBER,
		JoinedAt:    time.Now(),
	})
	if err != nil {
		return nil, []error{err}
	}

	ws.activityService.Record(ctx, &models.Activity{
		WorkspaceID: workspaceID,
		Type:        enums.ACTIVITY_MEMBER_JOINED,
		UserID:      userID,
	})

	joined, err := ws.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, []error{err}
	}
	response := joined.ToWorkspaceResponse()
	return &models.JoinWorkspaceResponse{
		ID:      response.ID,
		Name:    response.Name,
		Members: response.Members,
	}, nil
}

func (ws *WorkspaceService) UpdateMemberRole(ctx context.Context, workspaceID, actorID, targetID uint, role string) ([]*models.MemberResponse, []error) {
	workspace, errors := ws.authorize(ctx, workspaceID, actorID, access.Options{RequireAdmin: true})
	if len(errors) > 0 {
		return nil, errors
	}
	if err := ws.authorizer.CanModifyMember(workspace, targetID); err != nil {
		return nil, []error{err}
	}
	if errors := validators.ValidateRole(role); len(errors) > 0 {
		return nil, errors
	}

	if err := ws.workspaceRepo.UpdateMemberRole(ctx, workspaceID, targetID, role); err != nil {
		return nil, []error{err}
	}

	updated, err := ws.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, []error{err}
	}
	return updated.ToWorkspaceResponse().Members, nil
}

// RemoveMember is admin only, except that members may always remove themselves.
func (ws *WorkspaceService) RemoveMember(ctx context.Context, workspaceID, actorID, targetID uint) ([]*models.MemberResponse, []error) {
	opts := access.Options{RequireAdmin: actorID != targetID}
	workspace, errors := ws.authorize(ctx, workspaceID, actorID, opts)
	if len(errors) > 0 {
		return nil, errors
	}
	if err := ws.authorizer.CanModifyMember(workspace, targetID); err != nil {
		return nil, []error{err}
	}

	if err := ws.workspaceRepo.RemoveMember(ctx, workspaceID, targetID); err != nil {
		return nil, []error{err}
	}

	ws.activityService.Record(ctx, &models.Activity{
		WorkspaceID: workspaceID,
		Type:        enums.ACTIVITY_MEMBER_LEFT,
		UserID:      actorID,
		TargetID:    &targetID,
		TargetModel: enums.TARGET_USER,
	})

	updated, err := ws.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		return nil, []error{err}
	}
	return updated.ToWorkspaceResponse().Members, nil
}

package repositories

import (
	"context"

	"gorm.io/gorm"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{
		db: db,
	}
}

func preloadWorkspace(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Owner").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Members.User")
}

// CreateWorkspace inserts the workspace together with its initial member entries.
func (wr *WorkspaceRepository) CreateWorkspace(ctx context.Context, workspace *models.Workspace) (*models.Workspace, error) {
	if err := wr.db.WithContext(ctx).Create(workspace).Error; err != nil {
		return nil, err
	}
	return wr.FindWorkspaceByID(ctx, workspace.ID)
}

func (wr *WorkspaceRepository) FindWorkspaceByID(ctx context.Context, id uint) (*models.Workspace, error) {
	var workspace models.Workspace
	if err := wr.db.WithContext(ctx).Scopes(preloadWorkspace).First(&workspace, id).Error; err != nil {
		return nil, notFound(err, errs.ErrWorkspaceNotFound)
	}
	return &workspace, nil
}

// FindWorkspacesForUser lists workspaces the user owns or belongs to, newest first.
func (wr *WorkspaceRepository) FindWorkspacesForUser(ctx context.Context, userID uint) ([]models.Workspace, error) {
	var workspaces []models.Workspace
	err := wr.db.WithContext(ctx).
		Scopes(preloadWorkspace).
		Where("owner_id = ? OR id IN (SELECT workspace_id FROM workspace_members WHERE user_id = ?)", userID, userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&workspaces).Error
	if err != nil {
		return nil, err
	}
	return workspaces, nil
}

func (wr *WorkspaceRepository) UpdateWorkspace(ctx context.Context, workspace *models.Workspace) (*models.Workspace, error) {
	err := wr.db.WithContext(ctx).
		Model(&models.Workspace{}).
		Where("id = ?", workspace.ID).
		Updates(map[string]interface{}{
			"name":                          workspace.Name,
			"description":                   workspace.Description,
			"settings_is_private":           workspace.Settings.IsPrivate,
			"settings_allow_member_invites": workspace.Settings.AllowMemberInvites,
		}).Error
	if err != nil {
		return nil, err
	}
	return wr.FindWorkspaceByID(ctx, workspace.ID)
}

// DeleteWorkspace removes the workspace and every row scoped to it. It returns the
// storage keys of the deleted documents so their objects can be removed too.
func (wr *WorkspaceRepository) DeleteWorkspace(ctx context.Context, id uint) ([]string, error) {
	var keys []string
	err := wr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Document{}).Where("workspace_id = ?", id).Pluck("file_key", &keys).Error; err != nil {
			return err
		}

		channels := tx.Model(&models.Channel{}).Select("id").Where("workspace_id = ?", id)
		events := tx.Model(&models.Event{}).Select("id").Where("workspace_id = ?", id)

		if err := tx.Unscoped().Where("channel_id IN (?)", channels).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM channel_members WHERE channel_id IN (?)", channels).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM event_attendees WHERE event_id IN (?)", events).Error; err != nil {
			return err
		}

		scoped := []interface{}{
			&models.Channel{},
			&models.Event{},
			&models.Task{},
			&models.Document{},
			&models.Whiteboard{},
			&models.Activity{},
			&models.WorkspaceMember{},
		}
		for _, model := range scoped {
			if err := tx.Unscoped().Where("workspace_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		result := tx.Unscoped().Delete(&models.Workspace{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.ErrWorkspaceNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (wr *WorkspaceRepository) AddMember(ctx context.Context, member *models.WorkspaceMember) error {
	return wr.db.WithContext(ctx).Create(member).Error
}

func (wr *WorkspaceRepository) UpdateMemberRole(ctx context.Context, workspaceID, userID uint, role string) error {
	result := wr.db.WithContext(ctx).
		Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrMemberNotFound
	}
	return nil
}

func (wr *WorkspaceRepository) RemoveMember(ctx context.Context, workspaceID, userID uint) error {
	result := wr.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&models.WorkspaceMember{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrMemberNotFound
	}
	return nil
}

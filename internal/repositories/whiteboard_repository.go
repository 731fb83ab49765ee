package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spaceHub/internal/enums"
	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

type WhiteboardRepository struct {
	db *gorm.DB
}

func NewWhiteboardRepository(db *gorm.DB) *WhiteboardRepository {
	return &WhiteboardRepository{
		db: db,
	}
}

// FindOrCreateWhiteboard returns the workspace's board, creating an empty one on first use.
// Concurrent first requests all end up with the same row.
func (wr *WhiteboardRepository) FindOrCreateWhiteboard(ctx context.Context, workspaceID uint) (*models.Whiteboard, error) {
	whiteboard, err := wr.FindWorkspaceWhiteboard(ctx, workspaceID)
	if !errors.Is(err, errs.ErrWhiteboardNotFound) {
		return whiteboard, err
	}
	if err := wr.createEmptyWhiteboard(ctx, workspaceID); err != nil {
		return nil, err
	}
	return wr.FindWorkspaceWhiteboard(ctx, workspaceID)
}

// createEmptyWhiteboard inserts a blank board unless one already exists for the workspace.
func (wr *WhiteboardRepository) createEmptyWhiteboard(ctx context.Context, workspaceID uint) error {
	return wr.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "workspace_id"}},
			DoNothing: true,
		}).
		Create(&models.Whiteboard{
			WorkspaceID: workspaceID,
			Elements:    models.Elements{},
			Background:  enums.DEFAULT_WHITEBOARD_BACKGROUND,
		}).Error
}

func (wr *WhiteboardRepository) FindWorkspaceWhiteboard(ctx context.Context, workspaceID uint) (*models.Whiteboard, error) {
	var whiteboard models.Whiteboard
	err := wr.db.WithContext(ctx).
		Preload("LastModifiedBy").
		Where("workspace_id = ?", workspaceID).
		First(&whiteboard).Error
	if err != nil {
		return nil, notFound(err, errs.ErrWhiteboardNotFound)
	}
	return &whiteboard, nil
}

func (wr *WhiteboardRepository) SaveWhiteboard(ctx context.Context, whiteboard *models.Whiteboard) (*models.Whiteboard, error) {
	err := wr.db.WithContext(ctx).
		Model(whiteboard).
		Select("elements", "background", "last_modified_by_id").
		Updates(whiteboard).Error
	if err != nil {
		return nil, err
	}
	return wr.FindWorkspaceWhiteboard(ctx, whiteboard.WorkspaceID)
}

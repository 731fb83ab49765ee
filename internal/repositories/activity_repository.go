package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spaceHub/internal/models"
	"spaceHub/internal/utils"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{
		db: db,
	}
}

func (ar *ActivityRepository) CreateActivity(ctx context.Context, activity *models.Activity) error {
	return ar.db.WithContext(ctx).Omit(clause.Associations).Create(activity).Error
}

func (ar *ActivityRepository) FindActivities(ctx context.Context, workspaceID uint, page, size int) ([]models.Activity, int64, error) {
	var activities []models.Activity
	var total int64

	err := ar.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Preload("User").
			Where("workspace_id = ?", workspaceID).
			Order("created_at DESC").
			Order("id DESC").
			Find(&activities).Error; err != nil {
			return err
		}
		return tx.Model(&models.Activity{}).Where("workspace_id = ?", workspaceID).Count(&total).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

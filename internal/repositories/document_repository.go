package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

type DocumentRepository struct {
	db *gorm.DB
}

func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{
		db: db,
	}
}

func (dr *DocumentRepository) CreateDocument(ctx context.Context, document *models.Document) (*models.Document, error) {
	if err := dr.db.WithContext(ctx).Omit(clause.Associations).Create(document).Error; err != nil {
		return nil, err
	}
	return dr.FindDocumentByID(ctx, document.ID)
}

func (dr *DocumentRepository) FindDocumentByID(ctx context.Context, id uint) (*models.Document, error) {
	var document models.Document
	if err := dr.db.WithContext(ctx).Preload("UploadedBy").First(&document, id).Error; err != nil {
		return nil, notFound(err, errs.ErrDocumentNotFound)
	}
	return &document, nil
}

func (dr *DocumentRepository) FindDocumentsByWorkspace(ctx context.Context, workspaceID uint) ([]models.Document, error) {
	var documents []models.Document
	err := dr.db.WithContext(ctx).
		Preload("UploadedBy").
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (dr *DocumentRepository) DeleteDocument(ctx context.Context, id uint) error {
	result := dr.db.WithContext(ctx).Delete(&models.Document{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrDocumentNotFound
	}
	return nil
}

package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"spaceHub/internal/errs"
	"spaceHub/internal/models"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (tr *TaskRepository) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := tr.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error; err != nil {
		return nil, err
	}
	return tr.FindTaskByID(ctx, task.ID)
}

func (tr *TaskRepository) FindTaskByID(ctx context.Context, id uint) (*models.Task, error) {
	var task models.Task
	err := tr.db.WithContext(ctx).
		Preload("Assignee").
		Preload("CreatedBy").
		First(&task, id).Error
	if err != nil {
		return nil, notFound(err, errs.ErrTaskNotFound)
	}
	return &task, nil
}

// FindTasksByWorkspace lists newest first; an empty status means every status.
func (tr *TaskRepository) FindTasksByWorkspace(ctx context.Context, workspaceID uint, status string) ([]models.Task, error) {
	var tasks []models.Task
	query := tr.db.WithContext(ctx).
		Preload("Assignee").
		Preload("CreatedBy").
		Where("workspace_id = ?", workspaceID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at DESC").Order("id DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (tr *TaskRepository) UpdateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if err := tr.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		return nil, err
	}
	return tr.FindTaskByID(ctx, task.ID)
}

func (tr *TaskRepository) DeleteTask(ctx context.Context, id uint) error {
	result := tr.db.WithContext(ctx).Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrTaskNotFound
	}
	return nil
}

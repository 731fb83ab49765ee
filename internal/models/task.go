package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Status      string          `gorm:"not null;index" json:"status"`
	Priority    string          `gorm:"not null" json:"priority"`
	AssigneeID  *uint           `gorm:"index" json:"assignee_id"`
	Assignee    *User           `json:"-"`
	DueDate     *time.Time      `json:"due_date"`
	WorkspaceID uint            `gorm:"not null;index" json:"workspace_id"`
	CreatedByID uint            `gorm:"not null" json:"created_by_id"`
	CreatedBy   *User           `json:"-"`
	Labels      StringList      `gorm:"type:jsonb" json:"labels"`
	Attachments TaskAttachments `gorm:"type:jsonb" json:"attachments"`
}

type TaskAttachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
}

type TaskAttachments []TaskAttachment

func (a *TaskAttachments) Scan(value interface{}) error {
	return scanJSON(value, a)
}

func (a TaskAttachments) Value() (driver.Value, error) {
	if a == nil {
		return jsonValue([]TaskAttachment{})
	}
	return jsonValue([]TaskAttachment(a))
}

func (task *Task) ToTaskResponse() *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Assignee:    task.Assignee.ToUserResponse(),
		DueDate:     task.DueDate,
		WorkspaceID: task.WorkspaceID,
		CreatedBy:   task.CreatedBy.ToUserResponse(),
		Labels:      task.Labels,
		Attachments: task.Attachments,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

type TaskResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	Assignee    *UserResponse   `json:"assignee"`
	DueDate     *time.Time      `json:"due_date"`
	WorkspaceID uint            `json:"workspace_id"`
	CreatedBy   *UserResponse   `json:"created_by"`
	Labels      StringList      `json:"labels"`
	Attachments TaskAttachments `json:"attachments"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type TaskRequestBody struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Status      *string          `json:"status"`
	Priority    *string          `json:"priority"`
	AssigneeID  *uint            `json:"assignee_id"`
	DueDate     *time.Time       `json:"due_date"`
	Labels      []string         `json:"labels"`
	Attachments []TaskAttachment `json:"attachments"`
}

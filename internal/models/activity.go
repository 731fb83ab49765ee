package models

import (
	"time"

	"gorm.io/gorm"
)

type Activity struct {
	gorm.Model
	WorkspaceID uint     `gorm:"not null;index" json:"workspace_id"`
	Type        string   `gorm:"not null" json:"type"`
	UserID      uint     `gorm:"not null;index" json:"user_id"`
	User        *User    `json:"-"`
	TargetID    *uint    `gorm:"index" json:"target_id"`
	TargetModel string   `json:"target_model"`
	Metadata    Metadata `gorm:"type:jsonb" json:"metadata"`
}

func (activity *Activity) ToActivityResponse() *ActivityResponse {
	return &ActivityResponse{
		ID:          activity.ID,
		Type:        activity.Type,
		User:        activity.User.ToUserResponse(),
		TargetID:    activity.TargetID,
		TargetModel: activity.TargetModel,
		Metadata:    activity.Metadata,
		CreatedAt:   activity.CreatedAt,
	}
}

type ActivityResponse struct {
	ID          uint          `json:"id"`
	Type        string        `json:"type"`
	User        *UserResponse `json:"user"`
	TargetID    *uint         `json:"target_id"`
	TargetModel string        `json:"target_model"`
	Metadata    Metadata      `json:"metadata"`
	CreatedAt   time.Time     `json:"created_at"`
}

type ActivityListResponse struct {
	Activities []*ActivityResponse `json:"activities"`
	Pagination Pagination          `json:"pagination"`
}

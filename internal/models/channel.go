package models

import (
	"time"

	"gorm.io/gorm"
)

type Channel struct {
	gorm.Model
	Name        string `gorm:"not null;uniqueIndex:idx_workspace_channel_name" json:"name"`
	Description string `json:"description"`
	WorkspaceID uint   `gorm:"not null;index;uniqueIndex:idx_workspace_channel_name" json:"workspace_id"`
	CreatedByID uint   `gorm:"not null" json:"created_by_id"`
	CreatedBy   *User  `json:"-"`
	IsPrivate   bool   `json:"is_private"`
	Members     []User `gorm:"many2many:channel_members;" json:"-"`
}

func (channel *Channel) HasMember(userID uint) bool {
	for _, member := range channel.Members {
		if member.ID == userID {
			return true
		}
	}
	return false
}

func (channel *Channel) ToChannelResponse() *ChannelResponse {
	members := make([]*UserResponse, 0, len(channel.Members))
	for i := range channel.Members {
		members = append(members, channel.Members[i].ToUserResponse())
	}
	return &ChannelResponse{
		ID:          channel.ID,
		Name:        channel.Name,
		Description: channel.Description,
		WorkspaceID: channel.WorkspaceID,
		CreatedBy:   channel.CreatedBy.ToUserResponse(),
		IsPrivate:   channel.IsPrivate,
		Members:     members,
		CreatedAt:   channel.CreatedAt,
	}
}

type ChannelResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	WorkspaceID uint            `json:"workspace_id"`
	CreatedBy   *UserResponse   `json:"created_by"`
	IsPrivate   bool            `json:"is_private"`
	Members     []*UserResponse `json:"members"`
	CreatedAt   time.Time       `json:"created_at"`
}

type CreateChannelRequestBody struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
	Members     []uint `json:"members"`
}

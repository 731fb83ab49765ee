package models

import (
	"time"

	"gorm.io/gorm"
)

type Workspace struct {
	gorm.Model
	Name        string            `gorm:"not null" json:"name"`
	Description string            `json:"description"`
	OwnerID     uint              `gorm:"not null;index" json:"owner_id"`
	Owner       *User             `json:"-"`
	Members     []WorkspaceMember `json:"-"`
	Settings    WorkspaceSettings `gorm:"embedded;embeddedPrefix:settings_" json:"settings"`
}

type WorkspaceSettings struct {
	IsPrivate          bool `json:"is_private"`
	AllowMemberInvites bool `json:"allow_member_invites"`
}

// WorkspaceMember is one (user, role) pairing. Members are kept in join order.
type WorkspaceMember struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	WorkspaceID uint      `gorm:"not null;uniqueIndex:idx_workspace_member" json:"-"`
	UserID      uint      `gorm:"not null;uniqueIndex:idx_workspace_member;index" json:"user_id"`
	User        *User     `json:"-"`
	Role        string    `gorm:"not null" json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

// Member returns the member entry for userID, or nil.
func (workspace *Workspace) Member(userID uint) *WorkspaceMember {
	for i := range workspace.Members {
		if workspace.Members[i].UserID == userID {
			return &workspace.Members[i]
		}
	}
	return nil
}

func (workspace *Workspace) IsOwner(userID uint) bool {
	return workspace.OwnerID == userID
}

func (workspace *Workspace) ToWorkspaceResponse() *WorkspaceResponse {
	members := make([]*MemberResponse, 0, len(workspace.Members))
	for i := range workspace.Members {
		members = append(members, workspace.Members[i].ToMemberResponse())
	}
	return &WorkspaceResponse{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		Owner:       workspace.Owner.ToUserResponse(),
		Members:     members,
		Settings:    workspace.Settings,
		CreatedAt:   workspace.CreatedAt,
		UpdatedAt:   workspace.UpdatedAt,
	}
}

func (member *WorkspaceMember) ToMemberResponse() *MemberResponse {
	return &MemberResponse{
		UserID:   member.UserID,
		User:     member.User.ToUserResponse(),
		Role:     member.Role,
		JoinedAt: member.JoinedAt,
	}
}

type WorkspaceResponse struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Owner       *UserResponse     `json:"owner"`
	Members     []*MemberResponse `json:"members"`
	Settings    WorkspaceSettings `json:"settings"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type MemberResponse struct {
	UserID   uint          `json:"user_id"`
	User     *UserResponse `json:"user"`
	Role     string        `json:"role"`
	JoinedAt time.Time     `json:"joined_at"`
}

type CreateWorkspaceRequestBody struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Settings    *WorkspaceSettings `json:"settings"`
}

type UpdateWorkspaceRequestBody struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Settings    *WorkspaceSettings `json:"settings"`
}

type UpdateMemberRoleRequestBody struct {
	Role string `json:"role"`
}

type JoinWorkspaceResponse struct {
	ID      uint              `json:"id"`
	Name    string            `json:"name"`
	Members []*MemberResponse `json:"members"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Document struct {
	gorm.Model
	Name         string       `gorm:"not null" json:"name"`
	Description  string       `json:"description"`
	File         DocumentFile `gorm:"embedded;embeddedPrefix:file_" json:"file"`
	WorkspaceID  uint         `gorm:"not null;index" json:"workspace_id"`
	UploadedByID uint         `gorm:"not null;index" json:"uploaded_by_id"`
	UploadedBy   *User        `json:"-"`
	Tags         StringList   `gorm:"type:jsonb" json:"tags"`
	IsPublic     bool         `json:"is_public"`
}

type DocumentFile struct {
	OriginalName string `json:"original_name"`
	MimeType     string `json:"mime_type"`
	Size         int64  `json:"size"`
	URL          string `json:"url"`
	Key          string `json:"key"`
}

func (document *Document) ToDocumentResponse() *DocumentResponse {
	return &DocumentResponse{
		ID:          document.ID,
		Name:        document.Name,
		Description: document.Description,
		File:        document.File,
		WorkspaceID: document.WorkspaceID,
		UploadedBy:  document.UploadedBy.ToUserResponse(),
		Tags:        document.Tags,
		IsPublic:    document.IsPublic,
		CreatedAt:   document.CreatedAt,
		UpdatedAt:   document.UpdatedAt,
	}
}

type DocumentResponse struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	File        DocumentFile  `json:"file"`
	WorkspaceID uint          `json:"workspace_id"`
	UploadedBy  *UserResponse `json:"uploaded_by"`
	Tags        StringList    `json:"tags"`
	IsPublic    bool          `json:"is_public"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// CreateDocumentRequest carries the multipart form fields next to the uploaded file.
type CreateDocumentRequest struct {
	Name        string   `form:"name"`
	Description string   `form:"description"`
	Tags        []string `form:"tags"`
	IsPublic    bool     `form:"is_public"`
}

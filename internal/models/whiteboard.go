package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

type Whiteboard struct {
	gorm.Model
	WorkspaceID      uint     `gorm:"not null;uniqueIndex" json:"workspace_id"`
	Elements         Elements `gorm:"type:jsonb" json:"elements"`
	Background       string   `json:"background"`
	LastModifiedByID *uint    `json:"last_modified_by_id"`
	LastModifiedBy   *User    `json:"-"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Element struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Color          string  `json:"color,omitempty"`
	Fill           string  `json:"fill,omitempty"`
	Stroke         string  `json:"stroke,omitempty"`
	StrokeWidth    float64 `json:"stroke_width,omitempty"`
	Text           string  `json:"text,omitempty"`
	FontSize       float64 `json:"font_size,omitempty"`
	Points         []Point `json:"points,omitempty"`
	ImageURL       string  `json:"image_url,omitempty"`
	Rotation       float64 `json:"rotation"`
	Opacity        float64 `json:"opacity"`
	CreatedBy      uint    `json:"created_by,omitempty"`
	LastModifiedBy uint    `json:"last_modified_by,omitempty"`
}

// To satisfy postgres jsonb data type
type Elements []Element

func (e *Elements) Scan(value interface{}) error {
	return scanJSON(value, e)
}

func (e Elements) Value() (driver.Value, error) {
	if e == nil {
		return jsonValue([]Element{})
	}
	return jsonValue([]Element(e))
}

// Clone returns a deep copy so history snapshots never share backing arrays.
func (e Elements) Clone() Elements {
	out := make(Elements, len(e))
	for i, element := range e {
		out[i] = element
		if element.Points != nil {
			out[i].Points = append([]Point(nil), element.Points...)
		}
	}
	return out
}

func (whiteboard *Whiteboard) ToWhiteboardResponse() *WhiteboardResponse {
	return &WhiteboardResponse{
		ID:             whiteboard.ID,
		WorkspaceID:    whiteboard.WorkspaceID,
		Elements:       whiteboard.Elements,
		Background:     whiteboard.Background,
		LastModifiedBy: whiteboard.LastModifiedBy.ToUserResponse(),
		UpdatedAt:      whiteboard.UpdatedAt,
	}
}

type WhiteboardResponse struct {
	ID             uint          `json:"id"`
	WorkspaceID    uint          `json:"workspace_id"`
	Elements       Elements      `json:"elements"`
	Background     string        `json:"background"`
	LastModifiedBy *UserResponse `json:"last_modified_by"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type UpdateWhiteboardRequestBody struct {
	Elements   Elements `json:"elements"`
	Background string   `json:"background"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model
	Title            string     `gorm:"not null" json:"title"`
	Description      string     `json:"description"`
	Start            time.Time  `gorm:"not null;index" json:"start"`
	End              time.Time  `gorm:"not null" json:"end"`
	AllDay           bool       `json:"all_day"`
	WorkspaceID      uint       `gorm:"not null;index" json:"workspace_id"`
	CreatorID        uint       `gorm:"not null;index" json:"creator_id"`
	Creator          *User      `json:"-"`
	Attendees        []User     `gorm:"many2many:event_attendees;" json:"-"`
	Location         string     `json:"location"`
	Color            string     `json:"color"`
	Recurring        bool       `json:"recurring"`
	RecurringPattern string     `json:"recurring_pattern"`
	RecurringEndDate *time.Time `json:"recurring_end_date"`
}

func (event *Event) ToEventResponse() *EventResponse {
	attendees := make([]*UserResponse, 0, len(event.Attendees))
	for i := range event.Attendees {
		attendees = append(attendees, event.Attendees[i].ToUserResponse())
	}
	return &EventResponse{
		ID:               event.ID,
		Title:            event.Title,
		Description:      event.Description,
		Start:            event.Start,
		End:              event.End,
		AllDay:           event.AllDay,
		WorkspaceID:      event.WorkspaceID,
		Creator:          event.Creator.ToUserResponse(),
		Attendees:        attendees,
		Location:         event.Location,
		Color:            event.Color,
		Recurring:        event.Recurring,
		RecurringPattern: event.RecurringPattern,
		RecurringEndDate: event.RecurringEndDate,
	}
}

type EventResponse struct {
	ID               uint            `json:"id"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Start            time.Time       `json:"start"`
	End              time.Time       `json:"end"`
	AllDay           bool            `json:"all_day"`
	WorkspaceID      uint            `json:"workspace_id"`
	Creator          *UserResponse   `json:"creator"`
	Attendees        []*UserResponse `json:"attendees"`
	Location         string          `json:"location"`
	Color            string          `json:"color"`
	Recurring        bool            `json:"recurring"`
	RecurringPattern string          `json:"recurring_pattern"`
	RecurringEndDate *time.Time      `json:"recurring_end_date"`
}

type EventRequestBody struct {
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	Start            *time.Time `json:"start"`
	End              *time.Time `json:"end"`
	AllDay           bool       `json:"all_day"`
	Attendees        []uint     `json:"attendees"`
	Location         string     `json:"location"`
	Color            string     `json:"color"`
	Recurring        bool       `json:"recurring"`
	RecurringPattern string     `json:"recurring_pattern"`
	RecurringEndDate *time.Time `json:"recurring_end_date"`
}

package models

import (
	"database/sql/driver"
	"time"

	"gorm.io/gorm"
)

type Message struct {
	gorm.Model
	Content     string     `gorm:"not null" json:"content"`
	ChannelID   uint       `gorm:"not null;index" json:"channel_id"`
	SenderID    uint       `gorm:"not null" json:"sender_id"`
	Sender      *User      `json:"-"`
	Attachments StringList `gorm:"type:jsonb" json:"attachments"`
	Reactions   Reactions  `gorm:"type:jsonb" json:"reactions"`
	ThreadID    *uint      `json:"thread_id"`
	IsEdited    bool       `json:"is_edited"`
}

type Reaction struct {
	Emoji string `json:"emoji"`
	Users []uint `json:"users"`
}

type Reactions []Reaction

func (r *Reactions) Scan(value interface{}) error {
	return scanJSON(value, r)
}

func (r Reactions) Value() (driver.Value, error) {
	if r == nil {
		return jsonValue([]Reaction{})
	}
	return jsonValue([]Reaction(r))
}

// Toggle adds userID to the emoji's reaction or removes it when already present.
// Reactions left without users are dropped.
func (r Reactions) Toggle(emoji string, userID uint) Reactions {
	out := make(Reactions, 0, len(r)+1)
	found := false
	for _, reaction := range r {
		if reaction.Emoji != emoji {
			out = append(out, reaction)
			continue
		}
		found = true
		users := make([]uint, 0, len(reaction.Users))
		removed := false
		for _, id := range reaction.Users {
			if id == userID {
				removed = true
				continue
			}
			users = append(users, id)
		}
		if !removed {
			users = append(users, userID)
		}
		if len(users) > 0 {
			out = append(out, Reaction{Emoji: emoji, Users: users})
		}
	}
	if !found {
		out = append(out, Reaction{Emoji: emoji, Users: []uint{userID}})
	}
	return out
}

func (message *Message) ToMessageResponse() *MessageResponse {
	return &MessageResponse{
		ID:          message.ID,
		Content:     message.Content,
		ChannelID:   message.ChannelID,
		Sender:      message.Sender.ToUserResponse(),
		Attachments: message.Attachments,
		Reactions:   message.Reactions,
		ThreadID:    message.ThreadID,
		IsEdited:    message.IsEdited,
		CreatedAt:   message.CreatedAt,
		UpdatedAt:   message.UpdatedAt,
	}
}

type MessageResponse struct {
	ID          uint          `json:"id"`
	Content     string        `json:"content"`
	ChannelID   uint          `json:"channel_id"`
	Sender      *UserResponse `json:"sender"`
	Attachments StringList    `json:"attachments"`
	Reactions   Reactions     `json:"reactions"`
	ThreadID    *uint         `json:"thread_id"`
	IsEdited    bool          `json:"is_edited"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type MessageRequest struct {
	Content     string   `json:"content"`
	Attachments []string `json:"attachments"`
	ThreadID    *uint    `json:"thread_id"`
}

type ReactionRequest struct {
	Emoji string `json:"emoji"`
}

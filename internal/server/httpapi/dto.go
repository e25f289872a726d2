package httpapi

import (
	"time"

	"github.com/okunev/chatlite/internal/server/models"
)

type accountPayload struct {
	DeviceID    string             `json:"device_id"`
	Username    string             `json:"username"`
	Color       string             `json:"color,omitempty"`
	Status      string             `json:"status,omitempty"`
	Avatar      string             `json:"avatar,omitempty"`
	Preferences models.Preferences `json:"preferences"`
	LastUsed    time.Time          `json:"last_used"`
}

func accountToPayload(a *models.SavedAccount) accountPayload {
	return accountPayload{
		DeviceID:    a.DeviceID,
		Username:    a.Username,
		Color:       a.Color,
		Status:      a.Status,
		Avatar:      a.Avatar,
		Preferences: a.Preferences,
		LastUsed:    a.LastUsed,
	}
}

type reactionPayload struct {
	Username string `json:"username"`
	Emoji    string `json:"emoji"`
}

type messagePayload struct {
	ID        string            `json:"id"`
	Channel   string            `json:"channel"`
	Username  string            `json:"username"`
	Color     string            `json:"color,omitempty"`
	Body      string            `json:"body"`
	Deleted   bool              `json:"deleted,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	EditedAt  *time.Time        `json:"edited_at,omitempty"`
	Reactions []reactionPayload `json:"reactions,omitempty"`
}

func messageToPayload(m *models.Message) messagePayload {
	p := messagePayload{
		ID:        m.ID,
		Channel:   m.Channel,
		Username:  m.Username,
		Color:     m.Color,
		Body:      m.Body,
		Deleted:   m.Deleted,
		CreatedAt: m.CreatedAt,
		EditedAt:  m.EditedAt,
	}
	for _, r := range m.Reactions {
		p.Reactions = append(p.Reactions, reactionPayload{Username: r.Username, Emoji: r.Emoji})
	}
	return p
}

type presencePayload struct {
	Username string    `json:"username"`
	LastSeen time.Time `json:"last_seen"`
}

type typerPayload struct {
	Username string `json:"username"`
}

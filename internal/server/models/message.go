package models

import "time"

type Message struct {
	ID        string
	Channel   string
	DeviceID  string
	Username  string
	Color     string
	Body      string
	Deleted   bool
	CreatedAt time.Time
	EditedAt  *time.Time
	Reactions []Reaction
}

// Reaction is one user's emoji on a message. (MessageID, Username, Emoji)
// is unique; reacting twice with the same emoji removes it.
type Reaction struct {
	ID        string
	MessageID string
	Username  string
	Emoji     string
	CreatedAt time.Time
}

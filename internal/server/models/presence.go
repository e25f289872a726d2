package models

import "time"

type Presence struct {
	Channel  string
	DeviceID string
	Username string
	LastSeen time.Time
}

// TypingState marks a user as typing in a channel until ExpiresAt.
// Clients re-post while the composer is active; expired rows are
// invisible to reads and pruned opportunistically.
type TypingState struct {
	Channel   string
	DeviceID  string
	Username  string
	ExpiresAt time.Time
}

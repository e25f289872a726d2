package api

import "time"

// Account mirrors a saved account as the server returns it.
type Account struct {
	DeviceID    string      `json:"device_id"`
	Username    string      `json:"username"`
	Color       string      `json:"color,omitempty"`
	Status      string      `json:"status,omitempty"`
	Avatar      string      `json:"avatar,omitempty"`
	Preferences Preferences `json:"preferences"`
	LastUsed    time.Time   `json:"last_used"`
}

type Preferences struct {
	Theme         string `json:"theme,omitempty"`
	Notifications *bool  `json:"notifications,omitempty"`
	Sound         *bool  `json:"sound,omitempty"`
}

type AccountCount struct {
	Count       int `json:"count"`
	MaxAccounts int `json:"max_accounts"`
}

type Reaction struct {
	Username string `json:"username"`
	Emoji    string `json:"emoji"`
}

type Message struct {
	ID        string     `json:"id"`
	Channel   string     `json:"channel"`
	Username  string     `json:"username"`
	Color     string     `json:"color,omitempty"`
	Body      string     `json:"body"`
	Deleted   bool       `json:"deleted,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
	Reactions []Reaction `json:"reactions,omitempty"`
}

type PresenceEntry struct {
	Username string    `json:"username"`
	LastSeen time.Time `json:"last_seen"`
}

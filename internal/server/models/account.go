package models

import "time"

// MaxSavedAccounts caps how many chat identities a single device may keep.
// The registry evicts the least-recently-used record past this limit.
const MaxSavedAccounts = 3

// Preferences are per-account UI settings saved alongside the identity.
type Preferences struct {
	Theme         string `json:"theme,omitempty"`
	Notifications *bool  `json:"notifications,omitempty"`
	Sound         *bool  `json:"sound,omitempty"`
}

// SavedAccount is one locally-remembered chat identity for a device.
// (DeviceID, Username) is unique; re-saving the pair updates in place.
type SavedAccount struct {
	ID          string
	DeviceID    string
	Username    string
	Color       string
	Status      string
	Avatar      string
	Preferences Preferences
	LastUsed    time.Time
}

// AccountCount reports a device's current usage against the cap.
type AccountCount struct {
	Count       int `json:"count"`
	MaxAccounts int `json:"max_accounts"`
}

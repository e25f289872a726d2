// Package feed fans realtime chat events out to WebSocket subscribers.
// It is a best-effort notification layer: the record store stays the source
// of truth, and a reconnecting client re-reads state through the HTTP API.
package feed

// Event is one frame pushed to subscribers of a channel.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

const (
	EventMessageCreated  = "message.created"
	EventMessageUpdated  = "message.updated"
	EventMessageDeleted  = "message.deleted"
	EventMessageReacted  = "message.reacted"
	EventTypingStarted   = "typing.started"
	EventPresenceUpdated = "presence.updated"
)

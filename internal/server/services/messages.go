package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okunev/chatlite/internal/common"
	"github.com/okunev/chatlite/internal/dbx"
	"github.com/okunev/chatlite/internal/server/feed"
	"github.com/okunev/chatlite/internal/server/models"
	"github.com/okunev/chatlite/internal/server/repositories/repomanager"
)

// Publisher pushes events to realtime feed subscribers after successful
// store writes. feed.Hub satisfies it; tests use a recording fake.
type Publisher interface {
	Publish(channel string, event feed.Event)
}

const maxMessageBodyRunes = 2000

// MessageService implements the message operations: send, edit, delete,
// react, list. Each write is an ordinary record-store call followed by a
// feed publication.
type MessageService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   Publisher

	now func() time.Time
}

func NewMessageService(db *sql.DB, m repomanager.RepositoryManager, publisher Publisher) *MessageService {
	return &MessageService{
		db:          db,
		repomanager: m,
		publisher:   publisher,
		now:         time.Now,
	}
}

type reactionChange struct {
	MessageID string `json:"message_id"`
	Username  string `json:"username"`
	Emoji     string `json:"emoji"`
	Added     bool   `json:"added"`
}

type messageTombstone struct {
	ID      string `json:"id"`
	Channel string `json:"channel"`
}

// messageEvent is the feed representation of a message. The sender's device
// identifier stays server-side.
type messageEvent struct {
	ID        string     `json:"id"`
	Channel   string     `json:"channel"`
	Username  string     `json:"username"`
	Color     string     `json:"color,omitempty"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	EditedAt  *time.Time `json:"edited_at,omitempty"`
}

func messageToEvent(m *models.Message) messageEvent {
	return messageEvent{
		ID:        m.ID,
		Channel:   m.Channel,
		Username:  m.Username,
		Color:     m.Color,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
		EditedAt:  m.EditedAt,
	}
}

func (s *MessageService) Send(ctx context.Context, channel, deviceID, username, color, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", common.ErrValidation)
	}
	if len([]rune(body)) > maxMessageBodyRunes {
		return nil, fmt.Errorf("%w: message body too long", common.ErrValidation)
	}
	if strings.TrimSpace(username) == "" || strings.TrimSpace(deviceID) == "" {
		return nil, fmt.Errorf("%w: sender identity is required", common.ErrValidation)
	}

	message := &models.Message{
		ID:        uuid.NewString(),
		Channel:   channel,
		DeviceID:  deviceID,
		Username:  username,
		Color:     color,
		Body:      body,
		CreatedAt: s.now(),
	}

	repo := s.repomanager.Messages(s.db)
	if err := repo.Insert(ctx, message); err != nil {
		return nil, fmt.Errorf("error sending message: %w", err)
	}

	s.publisher.Publish(channel, feed.Event{Type: feed.EventMessageCreated, Payload: messageToEvent(message)})
	return message, nil
}

// Edit replaces a message body. Only the original sender may edit; editing
// a missing or deleted message returns common.ErrNotFound.
func (s *MessageService) Edit(ctx context.Context, id, deviceID, username, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("%w: message body is required", common.ErrValidation)
	}

	var edited *models.Message

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Messages(tx)

		message, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if message.Deleted {
			return common.ErrNotFound
		}
		if message.DeviceID != deviceID || message.Username != username {
			return common.ErrForbidden
		}

		editedAt := s.now()
		if err := repo.UpdateBody(ctx, id, body, editedAt); err != nil {
			return err
		}

		message.Body = body
		message.EditedAt = &editedAt
		edited = message
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrForbidden) {
			return nil, err
		}
		return nil, fmt.Errorf("error editing message: %w", err)
	}

	s.publisher.Publish(edited.Channel, feed.Event{Type: feed.EventMessageUpdated, Payload: messageToEvent(edited)})
	return edited, nil
}

// Delete tombstones a message. A missing target is a no-op success: the
// desired end state, message absent, already holds.
func (s *MessageService) Delete(ctx context.Context, id, deviceID, username string) error {
	repo := s.repomanager.Messages(s.db)

	message, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("error deleting message: %w", err)
	}
	if message.Deleted {
		return nil
	}
	if message.DeviceID != deviceID || message.Username != username {
		return common.ErrForbidden
	}

	if err := repo.SoftDelete(ctx, id); err != nil {
		return fmt.Errorf("error deleting message: %w", err)
	}

	s.publisher.Publish(message.Channel, feed.Event{
		Type:    feed.EventMessageDeleted,
		Payload: messageTombstone{ID: id, Channel: message.Channel},
	})
	return nil
}

// React toggles the caller's emoji on a message: present removes, absent
// adds. Returns whether the reaction is present after the call.
func (s *MessageService) React(ctx context.Context, messageID, username, emoji string) (bool, error) {
	if strings.TrimSpace(emoji) == "" {
		return false, fmt.Errorf("%w: emoji is required", common.ErrValidation)
	}

	var channel string
	var added bool

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		messageRepo := s.repomanager.Messages(tx)
		reactionRepo := s.repomanager.Reactions(tx)

		message, err := messageRepo.GetByID(ctx, messageID)
		if err != nil {
			return err
		}
		if message.Deleted {
			return common.ErrNotFound
		}
		channel = message.Channel

		removed, err := reactionRepo.Delete(ctx, messageID, username, emoji)
		if err != nil {
			return err
		}
		if removed {
			added = false
			return nil
		}

		added = true
		return reactionRepo.Insert(ctx, &models.Reaction{
			ID:        uuid.NewString(),
			MessageID: messageID,
			Username:  username,
			Emoji:     emoji,
			CreatedAt: s.now(),
		})
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return false, err
		}
		return false, fmt.Errorf("error toggling reaction: %w", err)
	}

	s.publisher.Publish(channel, feed.Event{
		Type:    feed.EventMessageReacted,
		Payload: reactionChange{MessageID: messageID, Username: username, Emoji: emoji, Added: added},
	})
	return added, nil
}

// List returns the newest messages in a channel, most recent first, with
// reactions attached. Deleted messages surface as tombstones.
func (s *MessageService) List(ctx context.Context, channel string, limit int, before time.Time) ([]*models.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if before.IsZero() {
		before = s.now()
	}

	messageRepo := s.repomanager.Messages(s.db)
	reactionRepo := s.repomanager.Reactions(s.db)

	messages, err := messageRepo.List(ctx, channel, limit, before)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	if len(messages) == 0 {
		return messages, nil
	}

	ids := make([]string, len(messages))
	byID := make(map[string]*models.Message, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
		byID[m.ID] = m
	}

	reactions, err := reactionRepo.ListByMessageIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error listing reactions: %w", err)
	}
	for _, r := range reactions {
		if m, ok := byID[r.MessageID]; ok {
			m.Reactions = append(m.Reactions, r)
		}
	}

	return messages, nil
}

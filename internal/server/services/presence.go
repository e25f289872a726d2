package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/okunev/chatlite/internal/common"
	"github.com/okunev/chatlite/internal/server/feed"
	"github.com/okunev/chatlite/internal/server/models"
	"github.com/okunev/chatlite/internal/server/repositories/repomanager"
)

// PresenceService handles presence heartbeats and typing indicators. Both
// are single-row upserts with read-side filtering: a user is online while
// their last heartbeat is inside the window, typing while the TTL row is
// unexpired.
type PresenceService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	publisher    Publisher
	onlineWindow time.Duration
	typingTTL    time.Duration

	now func() time.Time
}

func NewPresenceService(db *sql.DB, m repomanager.RepositoryManager, publisher Publisher, onlineWindow, typingTTL time.Duration) *PresenceService {
	return &PresenceService{
		db:           db,
		repomanager:  m,
		publisher:    publisher,
		onlineWindow: onlineWindow,
		typingTTL:    typingTTL,
		now:          time.Now,
	}
}

type presenceUpdate struct {
	Channel  string `json:"channel"`
	Username string `json:"username"`
	Online   bool   `json:"online"`
}

type typingUpdate struct {
	Channel  string `json:"channel"`
	Username string `json:"username"`
}

func (s *PresenceService) Heartbeat(ctx context.Context, channel, deviceID, username string) error {
	if strings.TrimSpace(deviceID) == "" || strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: identity is required", common.ErrValidation)
	}

	repo := s.repomanager.Presence(s.db)
	err := repo.Upsert(ctx, &models.Presence{
		Channel:  channel,
		DeviceID: deviceID,
		Username: username,
		LastSeen: s.now(),
	})
	if err != nil {
		return fmt.Errorf("error recording heartbeat: %w", err)
	}

	s.publisher.Publish(channel, feed.Event{
		Type:    feed.EventPresenceUpdated,
		Payload: presenceUpdate{Channel: channel, Username: username, Online: true},
	})
	return nil
}

// Online lists users whose last heartbeat falls within the online window.
func (s *PresenceService) Online(ctx context.Context, channel string) ([]*models.Presence, error) {
	repo := s.repomanager.Presence(s.db)
	active, err := repo.ListActive(ctx, channel, s.now().Add(-s.onlineWindow))
	if err != nil {
		return nil, fmt.Errorf("error listing presence: %w", err)
	}
	return active, nil
}

// Typing records a typing heartbeat. The indicator stays alive for the TTL;
// clients re-post while the composer is active. Expired rows from any
// channel are pruned on the way through.
func (s *PresenceService) Typing(ctx context.Context, channel, deviceID, username string) error {
	if strings.TrimSpace(deviceID) == "" || strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: identity is required", common.ErrValidation)
	}

	repo := s.repomanager.Typing(s.db)
	now := s.now()

	if err := repo.PruneExpired(ctx, now); err != nil {
		return fmt.Errorf("error pruning typing states: %w", err)
	}

	err := repo.Upsert(ctx, &models.TypingState{
		Channel:   channel,
		DeviceID:  deviceID,
		Username:  username,
		ExpiresAt: now.Add(s.typingTTL),
	})
	if err != nil {
		return fmt.Errorf("error recording typing state: %w", err)
	}

	s.publisher.Publish(channel, feed.Event{
		Type:    feed.EventTypingStarted,
		Payload: typingUpdate{Channel: channel, Username: username},
	})
	return nil
}

// Typers lists users with an unexpired typing row in the channel.
func (s *PresenceService) Typers(ctx context.Context, channel string) ([]*models.TypingState, error) {
	repo := s.repomanager.Typing(s.db)
	active, err := repo.ListActive(ctx, channel, s.now())
	if err != nil {
		return nil, fmt.Errorf("error listing typing states: %w", err)
	}
	return active, nil
}

// Package typing stores short-lived typing-indicator rows.
package typing

import (
	"context"
	"time"

	"github.com/okunev/chatlite/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, state *models.TypingState) error
	ListActive(ctx context.Context, channel string, now time.Time) ([]*models.TypingState, error)
	PruneExpired(ctx context.Context, now time.Time) error
}

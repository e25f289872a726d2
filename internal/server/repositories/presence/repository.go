// Package presence stores heartbeat rows marking users online in a channel.
package presence

import (
	"context"
	"time"

	"github.com/okunev/chatlite/internal/server/models"
)

type Repository interface {
	Upsert(ctx context.Context, p *models.Presence) error
	ListActive(ctx context.Context, channel string, since time.Time) ([]*models.Presence, error)
}

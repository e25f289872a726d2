// Package messages stores chat messages.
package messages

import (
	"context"
	"time"

	"github.com/okunev/chatlite/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	UpdateBody(ctx context.Context, id, body string, editedAt time.Time) error
	// SoftDelete tombstones a message: the row stays, the body is cleared.
	// Deleting an absent or already-deleted message is not an error.
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, channel string, limit int, before time.Time) ([]*models.Message, error)
}

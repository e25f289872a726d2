// Package reactions stores per-message emoji reactions.
package reactions

import (
	"context"

	"github.com/okunev/chatlite/internal/server/models"
)

type Repository interface {
	Insert(ctx context.Context, reaction *models.Reaction) error
	// Delete removes one user's emoji from a message and reports whether
	// a row was actually removed.
	Delete(ctx context.Context, messageID, username, emoji string) (bool, error)
	ListByMessageIDs(ctx context.Context, messageIDs []string) ([]models.Reaction, error)
}

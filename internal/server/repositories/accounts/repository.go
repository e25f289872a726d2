// Package accounts stores per-device saved chat identities.
package accounts

import (
	"context"

	"github.com/okunev/chatlite/internal/server/models"
)

type Repository interface {
	// LockDevice serializes writers for one device until the surrounding
	// transaction ends. Must be called on a transactional handle.
	LockDevice(ctx context.Context, deviceID string) error
	GetByDeviceAndUsername(ctx context.Context, deviceID, username string) (*models.SavedAccount, error)
	CountByDevice(ctx context.Context, deviceID string) (int, error)
	OldestByDevice(ctx context.Context, deviceID string) (*models.SavedAccount, error)
	Insert(ctx context.Context, account *models.SavedAccount) error
	Update(ctx context.Context, account *models.SavedAccount) error
	Delete(ctx context.Context, id string) error
	ListByDevice(ctx context.Context, deviceID string, limit int) ([]*models.SavedAccount, error)
}

// Package services contains server-side business logic. This file implements
// AccountService, the bounded per-device registry of saved chat identities.
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
	"github.com/okunev/chatlite/internal/server/models"
	"github.com/okunev/chatlite/internal/server/repositories/repomanager"
)

// AccountService maintains at most models.MaxSavedAccounts saved identities
// per device. Saving a new identity for a full device silently evicts the
// least-recently-used one; the registry behaves as a fixed-capacity LRU set,
// not a rejecting quota.
type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager

	// now is a test seam.
	now func() time.Time
}

func NewAccountService(db *sql.DB, m repomanager.RepositoryManager) *AccountService {
	return &AccountService{
		db:          db,
		repomanager: m,
		now:         time.Now,
	}
}

// Upsert saves an identity for a device. An existing (device, username) pair
// is overwritten in place with lastUsed refreshed; a new pair is inserted,
// evicting the oldest-by-lastUsed record first if the device is at capacity.
//
// The whole operation runs in one transaction holding a per-device advisory
// lock, so concurrent upserts for the same device serialize and the cap
// holds under contention.
func (s *AccountService) Upsert(ctx context.Context, account *models.SavedAccount) (*models.SavedAccount, error) {
	if strings.TrimSpace(account.DeviceID) == "" {
		return nil, fmt.Errorf("%w: device id is required", common.ErrValidation)
	}
	if strings.TrimSpace(account.Username) == "" {
		return nil, fmt.Errorf("%w: username is required", common.ErrValidation)
	}

	var saved *models.SavedAccount

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Accounts(tx)

		if err := repo.LockDevice(ctx, account.DeviceID); err != nil {
			return err
		}

		now := s.now()

		existing, err := repo.GetByDeviceAndUsername(ctx, account.DeviceID, account.Username)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}

		if existing != nil {
			existing.Color = account.Color
			existing.Status = account.Status
			existing.Avatar = account.Avatar
			existing.Preferences = account.Preferences
			existing.LastUsed = now

			if err := repo.Update(ctx, existing); err != nil && !errors.Is(err, common.ErrNotFound) {
				return err
			}
			saved = existing
			return nil
		}

		count, err := repo.CountByDevice(ctx, account.DeviceID)
		if err != nil {
			return err
		}

		if count >= models.MaxSavedAccounts {
			oldest, err := repo.OldestByDevice(ctx, account.DeviceID)
			if err != nil && !errors.Is(err, common.ErrNotFound) {
				return err
			}
			if oldest != nil {
				if err := repo.Delete(ctx, oldest.ID); err != nil {
					return err
				}
			}
		}

		fresh := &models.SavedAccount{
			ID:          uuid.NewString(),
			DeviceID:    account.DeviceID,
			Username:    account.Username,
			Color:       account.Color,
			Status:      account.Status,
			Avatar:      account.Avatar,
			Preferences: account.Preferences,
			LastUsed:    now,
		}
		if err := repo.Insert(ctx, fresh); err != nil {
			return err
		}
		saved = fresh
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error saving account: %w", err)
	}

	return saved, nil
}

// List returns up to limit saved identities for a device, most recently
// used first. It is a finite snapshot, not a subscription.
func (s *AccountService) List(ctx context.Context, deviceID string, limit int) ([]*models.SavedAccount, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, fmt.Errorf("%w: device id is required", common.ErrValidation)
	}
	if limit <= 0 || limit > models.MaxSavedAccounts {
		limit = models.MaxSavedAccounts
	}

	repo := s.repomanager.Accounts(s.db)
	accounts, err := repo.ListByDevice(ctx, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing accounts: %w", err)
	}
	return accounts, nil
}

// Count reports a device's usage against the cap. Callers use it to
// pre-check whether the next save of a new username will evict.
func (s *AccountService) Count(ctx context.Context, deviceID string) (*models.AccountCount, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, fmt.Errorf("%w: device id is required", common.ErrValidation)
	}

	repo := s.repomanager.Accounts(s.db)
	count, err := repo.CountByDevice(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("error counting accounts: %w", err)
	}
	return &models.AccountCount{Count: count, MaxAccounts: models.MaxSavedAccounts}, nil
}

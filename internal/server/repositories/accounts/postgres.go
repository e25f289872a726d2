package accounts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/okunev/chatlite/internal/common"
	"github.com/okunev/chatlite/internal/dbx"
	"github.com/okunev/chatlite/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// LockDevice takes a transaction-scoped advisory lock keyed by the device id.
// Two concurrent upserts for the same device serialize here; different
// devices proceed independently.
func (r *PostgresRepository) LockDevice(ctx context.Context, deviceID string) error {
	query := `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

	if _, err := r.db.ExecContext(ctx, query, deviceID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByDeviceAndUsername(ctx context.Context, deviceID, username string) (*models.SavedAccount, error) {
	query :=
		`SELECT id, device_id, username, color, status, avatar, preferences, last_used
		 FROM saved_accounts
		 WHERE device_id = $1 AND username = $2
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, deviceID, username))
}

func (r *PostgresRepository) CountByDevice(ctx context.Context, deviceID string) (int, error) {
	query := `SELECT COUNT(*) FROM saved_accounts WHERE device_id = $1`

	var count int
	if err := r.db.QueryRowContext(ctx, query, deviceID).Scan(&count); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return count, nil
}

// OldestByDevice returns the eviction candidate: minimum last_used, ties
// broken by id so the choice is stable.
func (r *PostgresRepository) OldestByDevice(ctx context.Context, deviceID string) (*models.SavedAccount, error) {
	query :=
		`SELECT id, device_id, username, color, status, avatar, preferences, last_used
		 FROM saved_accounts
		 WHERE device_id = $1
		 ORDER BY last_used, id
		 LIMIT 1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, deviceID))
}

func (r *PostgresRepository) Insert(ctx context.Context, account *models.SavedAccount) error {
	prefs, err := json.Marshal(account.Preferences)
	if err != nil {
		return fmt.Errorf("preferences marshal error: %w", err)
	}

	query :=
		`INSERT INTO saved_accounts (id, device_id, username, color, status, avatar, preferences, last_used)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err = r.db.ExecContext(ctx, query,
		account.ID, account.DeviceID, account.Username, account.Color,
		account.Status, account.Avatar, prefs, account.LastUsed)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Update(ctx context.Context, account *models.SavedAccount) error {
	prefs, err := json.Marshal(account.Preferences)
	if err != nil {
		return fmt.Errorf("preferences marshal error: %w", err)
	}

	query :=
		`UPDATE saved_accounts
		 SET color = $1, status = $2, avatar = $3, preferences = $4, last_used = $5
		 WHERE id = $6
		 `

	res, err := r.db.ExecContext(ctx, query,
		account.Color, account.Status, account.Avatar, prefs, account.LastUsed, account.ID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM saved_accounts WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByDevice(ctx context.Context, deviceID string, limit int) ([]*models.SavedAccount, error) {
	query :=
		`SELECT id, device_id, username, color, status, avatar, preferences, last_used
		 FROM saved_accounts
		 WHERE device_id = $1
		 ORDER BY last_used DESC
		 LIMIT $2
		 `

	rows, err := r.db.QueryContext(ctx, query, deviceID, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SavedAccount
	for rows.Next() {
		account := &models.SavedAccount{}
		var prefs []byte
		if err := rows.Scan(&account.ID, &account.DeviceID, &account.Username,
			&account.Color, &account.Status, &account.Avatar, &prefs, &account.LastUsed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if err := json.Unmarshal(prefs, &account.Preferences); err != nil {
			return nil, fmt.Errorf("preferences unmarshal error: %w", err)
		}
		result = append(result, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.SavedAccount, error) {
	account := &models.SavedAccount{}
	var prefs []byte
	err := row.Scan(&account.ID, &account.DeviceID, &account.Username,
		&account.Color, &account.Status, &account.Avatar, &prefs, &account.LastUsed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(prefs, &account.Preferences); err != nil {
		return nil, fmt.Errorf("preferences unmarshal error: %w", err)
	}
	return account, nil
}

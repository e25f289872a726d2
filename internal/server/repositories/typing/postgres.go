package typing

import (
	"context"
	"fmt"
	"time"

	"github.com/okunev/chatlite/internal/dbx"
	"github.com/okunev/chatlite/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, state *models.TypingState) error {
	query :=
		`INSERT INTO typing (channel, device_id, username, expires_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (channel, device_id) DO UPDATE SET
			username = EXCLUDED.username,
			expires_at = EXCLUDED.expires_at
		 `

	_, err := r.db.ExecContext(ctx, query, state.Channel, state.DeviceID, state.Username, state.ExpiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListActive(ctx context.Context, channel string, now time.Time) ([]*models.TypingState, error) {
	query :=
		`SELECT channel, device_id, username, expires_at
		 FROM typing
		 WHERE channel = $1 AND expires_at > $2
		 ORDER BY username
		 `

	rows, err := r.db.QueryContext(ctx, query, channel, now)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.TypingState
	for rows.Next() {
		state := &models.TypingState{}
		if err := rows.Scan(&state.Channel, &state.DeviceID, &state.Username, &state.ExpiresAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, state)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) PruneExpired(ctx context.Context, now time.Time) error {
	query := `DELETE FROM typing WHERE expires_at <= $1`

	if _, err := r.db.ExecContext(ctx, query, now); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

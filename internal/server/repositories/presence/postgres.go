package presence

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

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Presence) error {
	query :=
		`INSERT INTO presence (channel, device_id, username, last_seen)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (channel, device_id) DO UPDATE SET
			username = EXCLUDED.username,
			last_seen = EXCLUDED.last_seen
		 `

	_, err := r.db.ExecContext(ctx, query, p.Channel, p.DeviceID, p.Username, p.LastSeen)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListActive(ctx context.Context, channel string, since time.Time) ([]*models.Presence, error) {
	query :=
		`SELECT channel, device_id, username, last_seen
		 FROM presence
		 WHERE channel = $1 AND last_seen >= $2
		 ORDER BY username
		 `

	rows, err := r.db.QueryContext(ctx, query, channel, since)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Presence
	for rows.Next() {
		p := &models.Presence{}
		if err := rows.Scan(&p.Channel, &p.DeviceID, &p.Username, &p.LastSeen); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

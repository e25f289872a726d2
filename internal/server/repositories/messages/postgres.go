package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Insert(ctx context.Context, message *models.Message) error {
	query :=
		`INSERT INTO messages (id, channel, device_id, username, color, body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 `

	_, err := r.db.ExecContext(ctx, query,
		message.ID, message.Channel, message.DeviceID, message.Username,
		message.Color, message.Body, message.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	query :=
		`SELECT id, channel, device_id, username, color, body, deleted, created_at, edited_at
		 FROM messages
		 WHERE id = $1
		 `

	message := &models.Message{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&message.ID, &message.Channel, &message.DeviceID, &message.Username,
		&message.Color, &message.Body, &message.Deleted, &message.CreatedAt, &message.EditedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return message, nil
}

func (r *PostgresRepository) UpdateBody(ctx context.Context, id, body string, editedAt time.Time) error {
	query :=
		`UPDATE messages
		 SET body = $1, edited_at = $2
		 WHERE id = $3 AND NOT deleted
		 `

	res, err := r.db.ExecContext(ctx, query, body, editedAt, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) SoftDelete(ctx context.Context, id string) error {
	query :=
		`UPDATE messages
		 SET deleted = TRUE, body = ''
		 WHERE id = $1
		 `

	// Zero rows affected means the target is already gone, which is the
	// desired end state.
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, channel string, limit int, before time.Time) ([]*models.Message, error) {
	query :=
		`SELECT id, channel, device_id, username, color, body, deleted, created_at, edited_at
		 FROM messages
		 WHERE channel = $1 AND created_at < $2
		 ORDER BY created_at DESC
		 LIMIT $3
		 `

	rows, err := r.db.QueryContext(ctx, query, channel, before, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Message
	for rows.Next() {
		message := &models.Message{}
		if err := rows.Scan(&message.ID, &message.Channel, &message.DeviceID,
			&message.Username, &message.Color, &message.Body, &message.Deleted,
			&message.CreatedAt, &message.EditedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

package reactions

import (
	"context"
	"fmt"
	"strings"

	"github.com/okunev/chatlite/internal/dbx"
	"github.com/okunev/chatlite/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, reaction *models.Reaction) error {
	query :=
		`INSERT INTO reactions (id, message_id, username, emoji, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (message_id, username, emoji) DO NOTHING
		 `

	_, err := r.db.ExecContext(ctx, query,
		reaction.ID, reaction.MessageID, reaction.Username, reaction.Emoji, reaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, messageID, username, emoji string) (bool, error) {
	query :=
		`DELETE FROM reactions
		 WHERE message_id = $1 AND username = $2 AND emoji = $3
		 `

	res, err := r.db.ExecContext(ctx, query, messageID, username, emoji)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) ListByMessageIDs(ctx context.Context, messageIDs []string) ([]models.Reaction, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(messageIDs))
	args := make([]any, len(messageIDs))
	for i, id := range messageIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := fmt.Sprintf(
		`SELECT id, message_id, username, emoji, created_at
		 FROM reactions
		 WHERE message_id IN (%s)
		 ORDER BY created_at
		 `, strings.Join(placeholders, ", "))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Reaction
	for rows.Next() {
		var reaction models.Reaction
		if err := rows.Scan(&reaction.ID, &reaction.MessageID, &reaction.Username,
			&reaction.Emoji, &reaction.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, reaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

package repomanager

import (
	"context"
	"database/sql"

	"github.com/okunev/chatlite/internal/dbx"
	"github.com/okunev/chatlite/internal/server/migrations"
	"github.com/okunev/chatlite/internal/server/repositories/accounts"
	"github.com/okunev/chatlite/internal/server/repositories/messages"
	"github.com/okunev/chatlite/internal/server/repositories/presence"
	"github.com/okunev/chatlite/internal/server/repositories/reactions"
	"github.com/okunev/chatlite/internal/server/repositories/typing"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

type PostgresRepositoryManager struct {
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Messages(db dbx.DBTX) messages.Repository {
	return messages.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Reactions(db dbx.DBTX) reactions.Repository {
	return reactions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Presence(db dbx.DBTX) presence.Repository {
	return presence.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Typing(db dbx.DBTX) typing.Repository {
	return typing.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}

// Package repomanager hands out repositories bound to a DB handle, which may
// be either the pooled *sql.DB or an open transaction. Services pass whichever
// handle matches the atomicity they need.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/okunev/chatlite/internal/dbx"
	"github.com/okunev/chatlite/internal/server/repositories/accounts"
	"github.com/okunev/chatlite/internal/server/repositories/messages"
	"github.com/okunev/chatlite/internal/server/repositories/presence"
	"github.com/okunev/chatlite/internal/server/repositories/reactions"
	"github.com/okunev/chatlite/internal/server/repositories/typing"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Messages(db dbx.DBTX) messages.Repository
	Reactions(db dbx.DBTX) reactions.Repository
	Presence(db dbx.DBTX) presence.Repository
	Typing(db dbx.DBTX) typing.Repository
}

package presence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/okunev/chatlite/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestUpsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+presence\s*\(channel,\s*device_id,\s*username,\s*last_seen\)\s*VALUES.*ON\s+CONFLICT\s*\(channel,\s*device_id\)\s*DO\s+UPDATE`

	seen := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectExec(q).
		WithArgs("general", "dev1", "alice", seen).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &models.Presence{
		Channel: "general", DeviceID: "dev1", Username: "alice", LastSeen: seen,
	})
	if err != nil {
		t.Fatalf("Upsert error: %v", err)
	}
}

func TestListActive(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+channel,\s*device_id,\s*username,\s*last_seen\s+FROM\s+presence\s+WHERE\s+channel\s*=\s*\$1\s+AND\s+last_seen\s*>=\s*\$2\s+ORDER\s+BY\s+username`

	since := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"channel", "device_id", "username", "last_seen"}).
		AddRow("general", "dev1", "alice", since.Add(10*time.Second))
	mock.ExpectQuery(q).
		WithArgs("general", since).
		WillReturnRows(rows)

	got, err := repo.ListActive(context.Background(), "general", since)
	if err != nil {
		t.Fatalf("ListActive error: %v", err)
	}
	if len(got) != 1 || got[0].Username != "alice" {
		t.Fatalf("unexpected rows: %+v", got)
	}
}

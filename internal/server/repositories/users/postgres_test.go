package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/bimobaru/kanban-api/internal/common"
	"github.com/bimobaru/kanban-api/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("u-42", now, now)
	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+users`).
		WithArgs("alice", "a@x.com", "Alice A", "hash").
		WillReturnRows(rows)

	u := &models.User{UserName: "alice", Email: "a@x.com", FullName: "Alice A", PasswordHash: "hash"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != "u-42" || got.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)INSERT\s+INTO\s+users`).
		WithArgs("alice", "a@x.com", "Alice A", "hash").
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.User{UserName: "alice", Email: "a@x.com", FullName: "Alice A", PasswordHash: "hash"})
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "full_name", "password_hash"}).
		AddRow("u-1", "alice", "a@x.com", "Alice A", "hash")
	mock.ExpectQuery(`(?s)SELECT\s+id,\s*username,\s*email,\s*full_name,\s*password_hash\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("alice").
		WillReturnRows(rows)

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != "u-1" || got.Email != "a@x.com" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+id,\s*username,\s*email,\s*full_name,\s*password_hash\s+FROM\s+users\s+WHERE\s+username\s*=\s*\$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestGetByUsernameOrEmail_MatchesEither(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "full_name", "password_hash"}).
		AddRow("u-1", "alice", "a@x.com", "Alice A", "hash")
	mock.ExpectQuery(`(?s)WHERE\s+username\s*=\s*\$1\s+OR\s+email\s*=\s*\$2`).
		WithArgs("someone", "a@x.com").
		WillReturnRows(rows)

	got, err := repo.GetByUsernameOrEmail(context.Background(), "someone", "a@x.com")
	if err != nil {
		t.Fatalf("GetByUsernameOrEmail error: %v", err)
	}
	if got.UserName != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByUsernameOrEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)WHERE\s+username\s*=\s*\$1\s+OR\s+email\s*=\s*\$2`).
		WithArgs("ghost", "g@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsernameOrEmail(context.Background(), "ghost", "g@x.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected common.ErrorNotFound, got %v", err)
	}
}

func TestSelectAll_ReturnsUsers(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "email", "full_name"}).
		AddRow("u-1", "alice", "a@x.com", "Alice A").
		AddRow("u-2", "bob", "b@x.com", "Bob B")
	mock.ExpectQuery(`(?s)SELECT\s+id,\s*username,\s*email,\s*full_name\s+FROM\s+users`).
		WillReturnRows(rows)

	got, err := repo.SelectAll(context.Background())
	if err != nil {
		t.Fatalf("SelectAll error: %v", err)
	}
	if len(got) != 2 || got[1].UserName != "bob" {
		t.Fatalf("unexpected users: %+v", got)
	}
	for _, u := range got {
		if u.PasswordHash != "" {
			t.Fatalf("password hash must not be selected")
		}
	}
}

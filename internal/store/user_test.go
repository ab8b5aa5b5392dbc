package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/userdesk/apiserver/types"
)

func newRepoWithMock(t *testing.T) (*UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewUserRepository(db), mock, db
}

func userRows(users ...types.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "username", "password_hash", "salt", "is_admin", "last_login", "created_at", "updated_at",
	})
	for _, u := range users {
		rows.AddRow(u.ID, u.Username, u.PasswordHash, u.Salt, u.IsAdmin, u.LastLogin, u.CreatedAt, u.UpdatedAt)
	}
	return rows
}

func TestGetByUsername_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("alice").
		WillReturnRows(userRows(types.User{
			ID: 1, Username: "alice", PasswordHash: "h", Salt: "s",
			CreatedAt: now, UpdatedAt: now,
		}))

	got, err := repo.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("GetByUsername error: %v", err)
	}
	if got.ID != 1 || got.Username != "alice" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByUsername_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM users")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUsername(context.Background(), "ghost")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestCreate_DuplicateUsername(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := repo.Create(context.Background(), types.User{Username: "alice", PasswordHash: "h", Salt: "s"})
	if !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("want ErrDuplicateUsername, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	got, err := repo.Create(context.Background(), types.User{Username: "bob", PasswordHash: "h", Salt: "s"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 9 {
		t.Fatalf("ID = %d, want 9", got.ID)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not set: %+v", got)
	}
}

func TestSetPassword_WritesPairTogether(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("SET password_hash = $1")).
		WithArgs("newhash", "newsalt", sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetPassword(context.Background(), 3, "newhash", "newsalt"); err != nil {
		t.Fatalf("SetPassword error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetPassword_UnknownUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("SET password_hash = $1")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPassword(context.Background(), 404, "h", "s")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestRecordLogin(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Now()
	mock.ExpectExec(regexp.QuoteMeta("SET last_login = $1")).
		WithArgs(at, sqlmock.AnyArg(), 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.RecordLogin(context.Background(), 5, at); err != nil {
		t.Fatalf("RecordLogin error: %v", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM users")).
		WithArgs(12).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 12); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestHasAdmin(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	has, err := repo.HasAdmin(context.Background())
	if err != nil {
		t.Fatalf("HasAdmin error: %v", err)
	}
	if !has {
		t.Fatalf("HasAdmin = false, want true")
	}
}

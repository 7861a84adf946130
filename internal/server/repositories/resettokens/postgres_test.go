package resettokens

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/server/models"
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

	q := `(?s)^INSERT\s+INTO\s+reset_tokens\s*\(token,\s*account_id,\s*expires_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s*$`

	expires := time.Now().Add(15 * time.Minute)
	mock.ExpectExec(q).
		WithArgs("tok", "a-1", expires).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &models.ResetToken{Token: "tok", AccountID: "a-1", ExpiresAt: expires})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
}

func TestFindUsable_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+token,\s*account_id,\s*expires_at\s+FROM\s+reset_tokens\s+WHERE\s+token\s*=\s*\$1\s+AND\s+expires_at\s*>\s*\$2\s*$`

	now := time.Now()
	expires := now.Add(10 * time.Minute)
	rows := sqlmock.NewRows([]string{"token", "account_id", "expires_at"}).
		AddRow("tok", "a-1", expires)
	mock.ExpectQuery(q).WithArgs("tok", now).WillReturnRows(rows)

	got, err := repo.FindUsable(context.Background(), "tok", now)
	if err != nil {
		t.Fatalf("FindUsable error: %v", err)
	}
	if got.AccountID != "a-1" {
		t.Fatalf("unexpected token: %+v", got)
	}
}

func TestFindUsable_ExpiredLooksAbsent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`SELECT\s+token,.*FROM\s+reset_tokens`).
		WithArgs("tok", now).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUsable(context.Background(), "tok", now)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExtendExpiry_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+reset_tokens\s+SET\s+expires_at\s*=\s*\$2\s*WHERE\s+token\s*=\s*\$1\s*$`

	expires := time.Now().Add(15 * time.Minute)
	mock.ExpectExec(q).
		WithArgs("tok", expires).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ExtendExpiry(context.Background(), "tok", expires); err != nil {
		t.Fatalf("ExtendExpiry error: %v", err)
	}
}

func TestExtendExpiry_MissingToken(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	expires := time.Now().Add(15 * time.Minute)
	mock.ExpectExec(`UPDATE\s+reset_tokens\s+SET\s+expires_at`).
		WithArgs("missing", expires).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ExtendExpiry(context.Background(), "missing", expires)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

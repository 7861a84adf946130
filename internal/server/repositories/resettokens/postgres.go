// Package resettokens provides the PostgreSQL-backed repository for
// password-reset tokens.
package resettokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/server/models"
)

// PostgresRepository implements reset-token storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, token *models.ResetToken) error {
	query :=
		`INSERT INTO reset_tokens (token, account_id, expires_at)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, token.Token, token.AccountID, token.ExpiresAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) FindUsable(ctx context.Context, token string, now time.Time) (*models.ResetToken, error) {
	query :=
		`SELECT token, account_id, expires_at FROM reset_tokens
		 WHERE token = $1 AND expires_at > $2
		 `

	rt := &models.ResetToken{}
	err := r.db.QueryRowContext(ctx, query, token, now).Scan(&rt.Token, &rt.AccountID, &rt.ExpiresAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rt, nil
}

func (r *PostgresRepository) ExtendExpiry(ctx context.Context, token string, expiresAt time.Time) error {
	query :=
		`UPDATE reset_tokens SET expires_at = $2
		 WHERE token = $1
		 `

	res, err := r.db.ExecContext(ctx, query, token, expiresAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

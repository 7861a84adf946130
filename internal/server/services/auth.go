// Package services contains server-side business logic. This file implements
// AuthService, which handles account registration, login, and the password
// reset flow built on single-use emailed tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/server/auth"
	"github.com/dmitrijs2005/passvault/internal/server/config"
	"github.com/dmitrijs2005/passvault/internal/server/mail"
	"github.com/dmitrijs2005/passvault/internal/server/models"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/repomanager"
)

// resetTokenLength is the length of the URL-safe reset token string.
const resetTokenLength = 64

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	AccountID string
	Name      string
	Email     string
	Token     string
}

// AuthService provides authentication-related operations:
// - Register: create accounts and mint a session token
// - Login: verify credentials and mint a session token
// - ForgotPassword / ResetPassword: emailed single-use reset tokens
type AuthService struct {
	db                  *sql.DB
	repomanager         repomanager.RepositoryManager
	mailer              mail.Mailer
	jwtSecret           []byte
	accessTokenValidity time.Duration
	resetTokenValidity  time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, mailer mail.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                  db,
		repomanager:         m,
		mailer:              mailer,
		jwtSecret:           []byte(cfg.SecretKey),
		accessTokenValidity: cfg.AccessTokenValidity,
		resetTokenValidity:  cfg.ResetTokenValidity,
	}
}

// Register creates a new account with a bcrypt-hashed password and returns
// an AuthResult with a freshly minted session token. A taken email yields
// common.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", common.ErrValidation)
	}

	repo := s.repomanager.Accounts(s.db)

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrDuplicateEmail
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInternal
	}

	hash, err := cryptox.HashCredential(password)
	if err != nil {
		return nil, common.ErrInternal
	}

	account, err := repo.Create(ctx, &models.Account{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		// the unique index still guards against a concurrent registration
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating account: %v", err)
	}

	return s.authResult(account)
}

// Login verifies the email/password pair and, on success, returns an
// AuthResult. An unknown email yields common.ErrNotFound; a wrong password
// yields common.ErrInvalidCredential.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	if !cryptox.VerifyCredential(password, account.PasswordHash) {
		return nil, common.ErrInvalidCredential
	}

	return s.authResult(account)
}

// ForgotPassword generates a reset token for the account with the given
// email, stores it, and mails it to the account owner. An unknown email
// yields common.ErrNotFound; callers decide whether to mask it.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	repo := s.repomanager.Accounts(s.db)

	account, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		return common.ErrInternal
	}

	token, err := common.MakeRandURLSafeString(resetTokenLength)
	if err != nil {
		return common.ErrInternal
	}

	rt := &models.ResetToken{
		Token:     token,
		AccountID: account.ID,
		ExpiresAt: time.Now().Add(s.resetTokenValidity),
	}
	if err := s.repomanager.ResetTokens(s.db).Create(ctx, rt); err != nil {
		return fmt.Errorf("error storing reset token: %v", err)
	}

	if err := s.mailer.SendPasswordReset(ctx, account.Email, token); err != nil {
		return fmt.Errorf("%w: %v", common.ErrDelivery, err)
	}
	return nil
}

// ResetPassword sets a new password for the account referenced by a usable
// reset token. The token's expiry is pushed forward by the configured reset
// validity rather than being revoked, so a holder can change the password
// again within that window. Unknown or expired tokens yield
// common.ErrTokenNotFound.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	now := time.Now()
	rt, err := s.repomanager.ResetTokens(s.db).FindUsable(ctx, token, now)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrTokenNotFound
		}
		return common.ErrInternal
	}

	hash, err := cryptox.HashCredential(newPassword)
	if err != nil {
		return common.ErrInternal
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Accounts(tx).UpdatePassword(ctx, rt.AccountID, hash); err != nil {
			return fmt.Errorf("error updating password: %v", err)
		}
		if err := s.repomanager.ResetTokens(tx).ExtendExpiry(ctx, rt.Token, now.Add(s.resetTokenValidity)); err != nil {
			return fmt.Errorf("error extending reset token: %v", err)
		}
		return nil
	})
}

// --- helpers below ---

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) authResult(account *models.Account) (*AuthResult, error) {
	token, err := auth.GenerateToken(account.ID, s.jwtSecret, s.accessTokenValidity)
	if err != nil {
		return nil, common.ErrInternal
	}
	return &AuthResult{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Token:     token,
	}, nil
}

package resettokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/passvault/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.ResetToken) error
	// FindUsable returns the token only when its expiry is after now;
	// expired tokens look absent.
	FindUsable(ctx context.Context, token string, now time.Time) (*models.ResetToken, error)
	ExtendExpiry(ctx context.Context, token string, expiresAt time.Time) error
}

package models

import "time"

// ResetToken authorizes a password reset for one account. A token is only
// usable while ExpiresAt is in the future; lookups treat expired tokens as
// absent.
type ResetToken struct {
	Token     string
	AccountID string
	ExpiresAt time.Time
}

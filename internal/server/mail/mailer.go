// Package mail defines the outbound mail capability used by the password
// reset flow, plus its SMTP and log-only implementations.
package mail

import "context"

// Mailer delivers a password-reset token to an account's email address.
// A delivery failure must be reported, never swallowed.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to string, token string) error
}

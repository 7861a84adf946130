package mail

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/logging"
)

// LogMailer writes reset tokens to the log instead of sending mail.
// Useful for development setups without an SMTP relay.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(l logging.Logger) *LogMailer {
	return &LogMailer{logger: l.With("module", "mail")}
}

func (m *LogMailer) SendPasswordReset(ctx context.Context, to string, token string) error {
	m.logger.Info(ctx, "password reset token issued", "to", to, "token", token)
	return nil
}

package mail

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// SMTPMailer delivers reset tokens through a plain SMTP relay.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// sendMail is a seam for testing smtp.SendMail.
var sendMail = smtp.SendMail

// NewSMTPMailer constructs a mailer for the given relay. Auth is omitted
// when username is empty (local relays).
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to string, token string) error {
	msg := strings.Join([]string{
		"From: " + m.from,
		"To: " + to,
		"Subject: Password reset",
		"",
		"Use this token to reset your password: " + token,
		"The token expires in 15 minutes.",
	}, "\r\n")

	if err := sendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

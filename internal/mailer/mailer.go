package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer hands password-reset emails off to a delivery backend
type Mailer interface {
	SendPasswordReset(toEmail, resetLink string, validFor time.Duration) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a Mailer that delivers over SMTP
func NewSMTPMailer(host string, port int, username, password, from string) Mailer {
	return &smtpMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// SendPasswordReset sends the reset link to the user. The body states the
// validity window so stale links don't surprise anyone.
func (m *smtpMailer) SendPasswordReset(toEmail, resetLink string, validFor time.Duration) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Reset Password Link")
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>A password reset was requested for your Market Helper account.</p>
<p><a href="%s">Reset your password</a></p>
<p>The link is valid for %d minutes. If you did not request this, you can ignore this email.</p>`,
		resetLink, int(validFor.Minutes()),
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

package jobs

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/novacollege/nodues_backend/internal/core/domain"
)

// Mailer delivers a single notification to its recipient.
type Mailer interface {
	Send(ctx context.Context, notification domain.Notification) error
}

// SMTPMailer sends notification emails over plain SMTP.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSMTPMailer creates a mailer for the given SMTP server. Username may be
// empty, in which case no authentication is attempted.
func NewSMTPMailer(host, port, user, pass, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, user: user, pass: pass, from: from}
}

// Send delivers the notification as a plain-text email.
func (m *SMTPMailer) Send(_ context.Context, notification domain.Notification) error {
	if notification.Recipient == "" {
		return fmt.Errorf("notification has no recipient")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", notification.Recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", notification.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(notification.Body)
	msg.WriteString("\r\n")

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{notification.Recipient}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}
	return nil
}

// Package mailer sends outbound HTML mail over SMTP. A successful send is
// the caller's cue to append an email memory entry; failure returns an error
// and no memory is written.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/mariselli/hoofprint/internal/config"
)

// Mailer sends mail through a single configured SMTP account.
type Mailer struct {
	cfg  config.MailConfig
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// New creates a mailer from the mail configuration.
func New(cfg config.MailConfig) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// Configured reports whether the mailer has enough settings to send.
func (m *Mailer) Configured() bool {
	return m.cfg.SMTPHost != "" && m.cfg.From != ""
}

// Send delivers one HTML message. The recipient address is taken as-is; the
// caller validates it.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !m.Configured() {
		return fmt.Errorf("mailer: SMTP is not configured")
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.SMTPHost)
	}

	if err := m.send(addr, auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("mailer: send to %s failed: %w", to, err)
	}
	return nil
}

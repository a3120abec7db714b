// Package mailer sends newsletter mail to subscribers. Delivery is fire and
// forget from the caller's perspective.
package mailer

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// Mailer is the outbound mail interface; the SMTP implementation is the only
// production one, tests substitute their own.
type Mailer interface {
	SendNewsletter(recipients []string, blogTitle, blogSlug string) error
}

type smtpMailer struct {
	host   string
	port   int
	user   string
	pass   string
	from   string
	logger *slog.Logger
}

func NewSMTPMailer(host string, port int, user, pass, from string, logger *slog.Logger) Mailer {
	return &smtpMailer{host: host, port: port, user: user, pass: pass, from: from, logger: logger}
}

func (m *smtpMailer) SendNewsletter(recipients []string, blogTitle, blogSlug string) error {
	if m.host == "" {
		m.logger.Debug("SMTP not configured, skipping newsletter")
		return nil
	}
	if len(recipients) == 0 {
		return nil
	}

	subject := fmt.Sprintf("New post: %s", blogTitle)
	body := fmt.Sprintf("A new post has been published.\r\n\r\n%s\r\nRead it at /blogs/%s\r\n", blogTitle, blogSlug)

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", m.from))
	msg.WriteString(fmt.Sprintf("Bcc: %s\r\n", strings.Join(recipients, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, recipients, []byte(msg.String())); err != nil {
		return fmt.Errorf("send newsletter: %w", err)
	}

	m.logger.Info("newsletter sent", "recipients", len(recipients), "blog", blogSlug)
	return nil
}

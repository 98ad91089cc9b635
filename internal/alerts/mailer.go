package alerts

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"

	"github.com/sudo-init-do/hirewise/internal/config"
)

// Mailer sends notifications as plain-text email over SMTP with TLS.
type Mailer struct {
	host     string
	port     string
	sender   string
	password string
}

// NewMailer returns a Mailer when SMTP is fully configured, otherwise nil so
// the caller can fall back to LogNotifier.
func NewMailer(cfg config.Config) *Mailer {
	if cfg.SMTPHost == "" || cfg.SMTPPort == "" || cfg.SMTPSender == "" || cfg.SMTPPassword == "" {
		return nil
	}
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		sender:   cfg.SMTPSender,
		password: cfg.SMTPPassword,
	}
}

func (m *Mailer) Notify(ctx context.Context, to, subject, body string) error {
	addr := m.host + ":" + m.port

	msg := fmt.Sprintf("From: %s\r\n", m.sender)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/plain; charset=\"utf-8\"\r\n"
	msg += "\r\n" + body + "\r\n"

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: m.host})
	if err != nil {
		return fmt.Errorf("alerts: smtp dial: %w", err)
	}
	defer conn.Close()

	c, err := smtp.NewClient(conn, m.host)
	if err != nil {
		return fmt.Errorf("alerts: smtp client: %w", err)
	}
	defer c.Close()

	auth := smtp.PlainAuth("", m.sender, m.password, m.host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("alerts: smtp auth: %w", err)
	}
	if err := c.Mail(m.sender); err != nil {
		return fmt.Errorf("alerts: smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("alerts: smtp rcpt to: %w", err)
	}
	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("alerts: smtp data: %w", err)
	}
	if _, err := wc.Write([]byte(msg)); err != nil {
		return fmt.Errorf("alerts: smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("alerts: smtp close: %w", err)
	}
	return c.Quit()
}

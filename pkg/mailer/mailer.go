package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/amorpet/amorpet-backend/config"
	"github.com/amorpet/amorpet-backend/pkg/logger"
)

// Mailer relays contact-form submissions to the shop inbox over SMTP.
type Mailer interface {
	SendContactMessage(name, email, phone, subject, message string) error
}

type smtpMailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) Mailer {
	return &smtpMailer{cfg: cfg}
}

func (m *smtpMailer) SendContactMessage(name, email, phone, subject, message string) error {
	if m.cfg.Host == "" {
		logger.Warn("SMTP not configured, skipping contact relay", map[string]interface{}{
			"from": email,
		})
		return nil
	}

	if subject == "" {
		subject = "Novo contato pelo site"
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("From: %s\r\n", m.cfg.From))
	body.WriteString(fmt.Sprintf("To: %s\r\n", m.cfg.To))
	body.WriteString(fmt.Sprintf("Reply-To: %s\r\n", email))
	body.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	body.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	body.WriteString(fmt.Sprintf("Nome: %s\nEmail: %s\nTelefone: %s\n\n%s\n", name, email, phone, message))

	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.User != "" {
		auth = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.To}, []byte(body.String())); err != nil {
		logger.Error("Failed to relay contact message", err, map[string]interface{}{
			"from":    email,
			"subject": subject,
		})
		return err
	}

	logger.Info("Contact message relayed", map[string]interface{}{
		"from":    email,
		"subject": subject,
	})
	return nil
}

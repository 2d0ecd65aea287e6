package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"lms_backend/internal/config"
	"lms_backend/internal/logger"
)

// Sender delivers transactional mail. Disabled senders drop messages
// silently so local and test environments need no SMTP server.
type Sender interface {
	SendWelcome(to, fullName, username string) error
}

type smtpSender struct {
	cfg *config.Config
}

func NewSender(cfg *config.Config) Sender {
	return &smtpSender{cfg: cfg}
}

func (s *smtpSender) SendWelcome(to, fullName, username string) error {
	if !s.cfg.Email.Enabled || to == "" {
		logger.Debug("email disabled, skipping welcome mail", "to", to)
		return nil
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.Email.FromEmail, s.cfg.Email.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your LMS account is ready")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hello %s,\n\nYour account has been created. Sign in with username %q.\n",
		fullName, username,
	))

	d := gomail.NewDialer(
		s.cfg.Email.SMTPHost,
		s.cfg.Email.SMTPPort,
		s.cfg.Email.SMTPUsername,
		s.cfg.Email.SMTPPassword,
	)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send welcome mail: %w", err)
	}
	return nil
}

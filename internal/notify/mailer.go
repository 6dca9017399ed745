package notify

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer pushes deal alerts through the office SMTP relay. In-app
// notifications are the primary channel; mail is the backup for admins who
// live in their inbox.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

func NewMailer(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword),
		from:   fromEmail,
		logger: logger,
	}
}

// SendDealAlert sends one plain-text alert to the office distribution list.
func (m *Mailer) SendDealAlert(to []string, subject, body string) error {
	if len(to) == 0 {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send deal alert: %w", err)
	}

	m.logger.Debug("deal alert sent",
		zap.Strings("to", to),
		zap.String("subject", subject))
	return nil
}

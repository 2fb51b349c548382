package email

import (
	"bytes"
	"fmt"
	"net/smtp"

	"github.com/Dan9191/stripe-report/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendReport sends a generated report as an email attachment
func (s *Sender) SendReport(to, startDate, endDate, timezone string, accountCount int, attachment []byte, filename, mimeType string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Stripe Connect Report %s - %s", startDate, endDate)

	body := fmt.Sprintf(
		"Hello,\n\n"+
			"Attached is your Stripe Connect transaction report.\n\n"+
			"Report period: %s to %s\n"+
			"Timezone: %s\n"+
			"Accounts included: %d\n\n"+
			"Best regards,\nStripe Report Service",
		startDate, endDate, timezone, accountCount,
	)
	e.Text = []byte(body)

	if _, err := e.Attach(bytes.NewReader(attachment), filename, mimeType); err != nil {
		return fmt.Errorf("failed to attach report: %w", err)
	}

	// Send email
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}

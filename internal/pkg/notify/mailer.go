// Package notify delivers workflow reminders and refill alerts to incharges
// over SMTP. When no SMTP credentials are configured the mailer logs the
// message instead of sending it, so development environments work without a
// mail server.
package notify

import (
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Mailer sends notification mail to incharges
type Mailer interface {
	SendWorkflowReminder(toEmail, toName, programTitle, nodeName, message string) error
	SendRefillAlert(toEmail, toName, programTitle, droppedName string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPMailer implements Mailer over plain SMTP
type SMTPMailer struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		logger: logger,
	}
}

// SendWorkflowReminder mails an incharge that a workflow node is waiting on them
func (m *SMTPMailer) SendWorkflowReminder(toEmail, toName, programTitle, nodeName, message string) error {
	subject := fmt.Sprintf("Action pending for %s: %s", programTitle, nodeName)
	body := fmt.Sprintf("Hello %s,\r\n\r\n%s\r\n\r\nProgram: %s\r\nPending step: %s\r\n",
		toName, message, programTitle, nodeName)
	return m.send(toEmail, subject, body)
}

// SendRefillAlert mails an incharge that an approved sewadar dropped out
func (m *SMTPMailer) SendRefillAlert(toEmail, toName, programTitle, droppedName string) error {
	subject := fmt.Sprintf("Refill required for %s", programTitle)
	body := fmt.Sprintf("Hello %s,\r\n\r\n%s has dropped out of %s. The vacated position needs refilling.\r\n",
		toName, droppedName, programTitle)
	return m.send(toEmail, subject, body)
}

func (m *SMTPMailer) send(toEmail, subject, body string) error {
	if toEmail == "" {
		m.logger.Debug().Str("subject", subject).Msg("recipient has no email address, skipping mail")
		return nil
	}

	// Development fallback: log instead of sending
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - mail logged instead of sent")
		return nil
	}

	var msg strings.Builder
	msg.WriteString("From: " + m.config.FromName + " <" + m.config.FromEmail + ">\r\n")
	msg.WriteString("To: " + toEmail + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(body)

	addr := m.config.Host + ":" + strconv.Itoa(m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.FromEmail, []string{toEmail}, []byte(msg.String())); err != nil {
		m.logger.Error().Err(err).Str("toEmail", toEmail).Msg("failed to send mail")
		return fmt.Errorf("failed to send mail: %w", err)
	}

	m.logger.Info().Str("toEmail", toEmail).Str("subject", subject).Msg("mail sent")
	return nil
}

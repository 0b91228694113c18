package external_services

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/socialjobs/workmatch/internal/domain/contract"
)

// mailDialer is the part of gomail.Dialer the service needs.
type mailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// smtp attribute
type EmailService struct {
	dialer mailDialer
	from   string
}

// EmailService factory
func NewEmailService(host string, port int, username, password, from string) *EmailService {
	return &EmailService{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// make sure EmailService implements contract.IEmailService
var _ contract.IEmailService = (*EmailService)(nil)

// SendEmail sends a plain text mail. The body is sent as-is.
func (es *EmailService) SendEmail(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("no recipient specified")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", es.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := es.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email via SMTP: %w", err)
	}
	return nil
}

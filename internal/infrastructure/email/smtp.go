package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/lumastory/lumastory/internal/shared/config"
)

const defaultDialTimeout = 10 * time.Second

// sender is the part of *gomail.Dialer the service needs.
type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Message is one outbound email with an HTML body and a plain-text alternative.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
	Plain   string
}

type SMTPEmailService struct {
	fromAddress string
	fromName    string
	sender      sender
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)

	return &SMTPEmailService{
		fromAddress: cfg.FromAddress,
		fromName:    cfg.FromName,
		sender:      dialer,
	}
}

// Send delivers msg. gomail has no context support, so ctx is only checked
// before dialing.
func (s *SMTPEmailService) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("email not sent: %w", err)
	}

	m := gomail.NewMessage()
	if s.fromName != "" {
		m.SetAddressHeader("From", s.fromAddress, s.fromName)
	} else {
		m.SetHeader("From", s.fromAddress)
	}
	m.SetHeader("To", msg.To)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Plain)
	m.AddAlternative("text/html", msg.HTML)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

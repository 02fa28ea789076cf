// Package mailer delivers transactional email through SendGrid.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/angelmondragon/stonefront-backend/pkg/config"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

// Message is a single outbound email.
type Message struct {
	To      string
	BCC     string
	Subject string
	HTML    string
	Text    string
}

// Sender is the notifier port used by services.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type sendFunc func(ctx context.Context, m *mail.SGMailV3) (*rest.Response, error)

// SendGrid sends mail with the v3 API.
type SendGrid struct {
	fromEmail string
	fromName  string
	send      sendFunc
	logg      *logger.Logger
}

// New builds a SendGrid sender. A missing API key yields a sender that
// logs and drops every message.
func New(cfg config.SendgridConfig, logg *logger.Logger) *SendGrid {
	s := &SendGrid{
		fromEmail: strings.TrimSpace(cfg.DefaultFrom),
		fromName:  cfg.FromName,
		logg:      logg,
	}
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		client := sendgrid.NewSendClient(key)
		s.send = client.SendWithContext
	}
	return s
}

// Send delivers msg. Responses with a 4xx/5xx status are returned as errors.
func (s *SendGrid) Send(ctx context.Context, msg Message) error {
	if strings.TrimSpace(msg.To) == "" {
		return errors.New("recipient is required")
	}
	if s.send == nil {
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "subject", msg.Subject), "sendgrid not configured; email dropped")
		}
		return nil
	}
	if s.fromEmail == "" {
		return errors.New("from address is required")
	}

	resp, err := s.send(ctx, s.build(msg))
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d body=%s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *SendGrid) build(msg Message) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(s.fromName, s.fromEmail))
	m.Subject = msg.Subject

	p := mail.NewPersonalization()
	p.AddTos(mail.NewEmail("", msg.To))
	if bcc := strings.TrimSpace(msg.BCC); bcc != "" && !strings.EqualFold(bcc, msg.To) {
		p.AddBCCs(mail.NewEmail("", bcc))
	}
	m.AddPersonalizations(p)

	if msg.Text != "" {
		m.AddContent(mail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		m.AddContent(mail.NewContent("text/html", msg.HTML))
	}
	return m
}

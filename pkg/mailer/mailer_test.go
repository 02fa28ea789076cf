package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/angelmondragon/stonefront-backend/pkg/config"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

func TestSendBuildsMessage(t *testing.T) {
	t.Parallel()

	var captured *mail.SGMailV3
	s := &SendGrid{
		fromEmail: "shop@stonefront.test",
		fromName:  "Stonefront",
		send: func(ctx context.Context, m *mail.SGMailV3) (*rest.Response, error) {
			captured = m
			return &rest.Response{StatusCode: 202}, nil
		},
	}

	err := s.Send(context.Background(), Message{
		To:      "admin@stonefront.test",
		BCC:     "ops@stonefront.test",
		Subject: "New Enquiry",
		HTML:    "<p>hi</p>",
		Text:    "hi",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.From.Address != "shop@stonefront.test" || captured.Subject != "New Enquiry" {
		t.Fatalf("unexpected header fields %+v", captured.From)
	}
	if len(captured.Personalizations) != 1 || len(captured.Personalizations[0].BCC) != 1 {
		t.Fatalf("expected one personalization with bcc")
	}
	if len(captured.Content) != 2 || captured.Content[0].Type != "text/plain" {
		t.Fatalf("expected plain text before html, got %+v", captured.Content)
	}
}

func TestSendSkipsBCCMatchingRecipient(t *testing.T) {
	t.Parallel()

	s := &SendGrid{fromEmail: "shop@stonefront.test"}
	m := s.build(Message{To: "a@x.test", BCC: "A@x.test", Subject: "s", HTML: "h"})
	if len(m.Personalizations[0].BCC) != 0 {
		t.Fatal("bcc equal to recipient must be dropped")
	}
}

func TestSendReportsFailures(t *testing.T) {
	t.Parallel()

	s := &SendGrid{
		fromEmail: "shop@stonefront.test",
		send: func(ctx context.Context, m *mail.SGMailV3) (*rest.Response, error) {
			return &rest.Response{StatusCode: 401, Body: "unauthorized"}, nil
		},
	}
	if err := s.Send(context.Background(), Message{To: "x@y.test"}); err == nil || !strings.Contains(err.Error(), "401") {
		t.Fatalf("expected status error, got %v", err)
	}

	boom := errors.New("dial tcp")
	s.send = func(ctx context.Context, m *mail.SGMailV3) (*rest.Response, error) { return nil, boom }
	if err := s.Send(context.Background(), Message{To: "x@y.test"}); !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}

	if err := s.Send(context.Background(), Message{}); err == nil {
		t.Fatal("expected missing recipient error")
	}
}

func TestUnconfiguredSenderDropsMail(t *testing.T) {
	t.Parallel()

	s := New(config.SendgridConfig{DefaultFrom: "shop@stonefront.test"}, logger.Nop())
	if err := s.Send(context.Background(), Message{To: "x@y.test", Subject: "hi"}); err != nil {
		t.Fatalf("unconfigured sender should drop silently, got %v", err)
	}
}

package enquiries

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/angelmondragon/stonefront-backend/internal/dbtest"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/mailer"
)

type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

type stubThrottle struct {
	calls int
	err   error
}

func (s *stubThrottle) Allow(context.Context, string) error {
	s.calls++
	return s.err
}

func newService(t *testing.T, th *stubThrottle, m *recordingMailer) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(dbtest.Open(t))
	svc, err := NewService(ServiceParams{
		Repo:       repo,
		Throttle:   th,
		Mailer:     m,
		AdminEmail: "admin@stonefront.test",
		AdminBCC:   "sales@stonefront.test",
		Dispatch:   func(fn func()) { fn() },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo
}

func TestSubmitStoresAndNotifies(t *testing.T) {
	th := &stubThrottle{}
	m := &recordingMailer{}
	svc, repo := newService(t, th, m)

	res, err := svc.Submit(context.Background(), Input{
		Name:    "Ada",
		Email:   "ada@example.com",
		Message: "Need 40m2\nof <slate>",
		Page:    "/product/raj-green",
	}, "203.0.113.7")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !res.Success || res.Message != "Enquiry submitted successfully" {
		t.Fatalf("unexpected result %+v", res)
	}

	var stored models.Enquiry
	if err := repo.db.First(&stored).Error; err != nil {
		t.Fatalf("load enquiry: %v", err)
	}
	if stored.IsSpam || stored.IP != "203.0.113.7" || stored.Page != "/product/raj-green" {
		t.Fatalf("unexpected stored enquiry %+v", stored)
	}

	if len(m.sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(m.sent))
	}
	admin := m.sent[0]
	if admin.To != "admin@stonefront.test" || admin.BCC != "sales@stonefront.test" {
		t.Fatalf("unexpected admin recipients %+v", admin)
	}
	if !strings.Contains(admin.HTML, "Need 40m2<br/>of &lt;slate&gt;") {
		t.Fatalf("message not escaped: %s", admin.HTML)
	}
	if !strings.Contains(admin.HTML, "<b>Page:</b> /product/raj-green") {
		t.Fatalf("page missing from admin mail: %s", admin.HTML)
	}
	if m.sent[1].To != "ada@example.com" {
		t.Fatalf("unexpected customer recipient %q", m.sent[1].To)
	}
}

func TestSubmitAcceptsProductAsPageAlias(t *testing.T) {
	svc, repo := newService(t, &stubThrottle{}, &recordingMailer{})
	ctx := context.Background()

	if _, err := svc.Submit(ctx, Input{Name: "Ada", Email: "a@b.c", Message: "hi", Product: " kandla-grey "}, "ip"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Submit(ctx, Input{Name: "Ada", Email: "a@b.c", Message: "hi", Page: "/contact", Product: "ignored"}, "ip"); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var stored []models.Enquiry
	if err := repo.db.Order("id ASC").Find(&stored).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(stored) != 2 || stored[0].Page != "kandla-grey" || stored[1].Page != "/contact" {
		t.Fatalf("unexpected pages %+v", stored)
	}
}

func TestSubmitHoneypotSkipsThrottleAndMail(t *testing.T) {
	th := &stubThrottle{}
	m := &recordingMailer{}
	svc, repo := newService(t, th, m)

	res, err := svc.Submit(context.Background(), Input{Name: "Bot", Email: "b@x.io", Message: "buy", Website: "http://spam"}, "1.2.3.4")
	if err != nil || !res.Success {
		t.Fatalf("honeypot should look successful, res=%+v err=%v", res, err)
	}
	if th.calls != 0 || len(m.sent) != 0 {
		t.Fatalf("honeypot must not throttle or mail, calls=%d mails=%d", th.calls, len(m.sent))
	}
	var stored models.Enquiry
	if err := repo.db.First(&stored).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if !stored.IsSpam {
		t.Fatalf("expected spam flag")
	}
}

func TestSubmitValidationAndThrottle(t *testing.T) {
	th := &stubThrottle{}
	svc, repo := newService(t, th, &recordingMailer{})
	ctx := context.Background()

	_, err := svc.Submit(ctx, Input{Name: "Ada", Email: " "}, "ip")
	if !pkgerrors.Is(err, pkgerrors.CodeValidation) || pkgerrors.As(err).Message() != "Missing required fields" {
		t.Fatalf("expected missing fields error, got %v", err)
	}

	th.err = pkgerrors.New(pkgerrors.CodeRateLimit, "Please wait before submitting another enquiry")
	_, err = svc.Submit(ctx, Input{Name: "Ada", Email: "a@b.c", Message: "hi"}, "ip")
	if !pkgerrors.Is(err, pkgerrors.CodeRateLimit) {
		t.Fatalf("expected rate limit, got %v", err)
	}
	var count int64
	repo.db.Model(&models.Enquiry{}).Count(&count)
	if count != 0 {
		t.Fatalf("nothing should be stored, got %d", count)
	}
}

func TestMailFailuresDoNotFailSubmit(t *testing.T) {
	m := &recordingMailer{err: errors.New("sendgrid 500")}
	svc, _ := newService(t, &stubThrottle{}, m)

	if _, err := svc.Submit(context.Background(), Input{Name: "Ada", Email: "a@b.c", Message: "hi"}, "ip"); err != nil {
		t.Fatalf("mail errors must be swallowed: %v", err)
	}
	if len(m.sent) != 2 {
		t.Fatalf("both emails should still be attempted, got %d", len(m.sent))
	}
}

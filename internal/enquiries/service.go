// Package enquiries accepts contact-form submissions, filters bots and
// notifies the shop by email.
package enquiries

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
	"github.com/angelmondragon/stonefront-backend/pkg/mailer"
)

type creator interface {
	Create(ctx context.Context, enquiry *models.Enquiry) error
}

type throttle interface {
	Allow(ctx context.Context, ip string) error
}

// Input is the public form body. Website is a honeypot field humans never fill.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
	Page    string `json:"page"`
	Website string `json:"website"`
	// Product is the older name of Page, still sent by some forms.
	Product string `json:"product"`
}

// page returns the page the form was sent from, preferring Page.
func (in Input) page() string {
	if page := strings.TrimSpace(in.Page); page != "" {
		return page
	}
	return strings.TrimSpace(in.Product)
}

// Result is the response body.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type Service interface {
	Submit(ctx context.Context, input Input, ip string) (Result, error)
}

// ServiceParams groups enquiry dependencies. Mailer may be nil to skip mail.
type ServiceParams struct {
	Repo       creator
	Throttle   throttle
	Mailer     mailer.Sender
	AdminEmail string
	AdminBCC   string
	Logger     *logger.Logger
	// Dispatch runs background work; defaults to a goroutine.
	Dispatch func(func())
}

type service struct {
	repo       creator
	throttle   throttle
	mailer     mailer.Sender
	adminEmail string
	adminBCC   string
	logg       *logger.Logger
	dispatch   func(func())
}

func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, errors.New("enquiry repository is required")
	}
	if p.Throttle == nil {
		return nil, errors.New("throttle is required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	if p.Dispatch == nil {
		p.Dispatch = func(fn func()) { go fn() }
	}
	return &service{
		repo:       p.Repo,
		throttle:   p.Throttle,
		mailer:     p.Mailer,
		adminEmail: strings.TrimSpace(p.AdminEmail),
		adminBCC:   strings.TrimSpace(p.AdminBCC),
		logg:       p.Logger,
		dispatch:   p.Dispatch,
	}, nil
}

// Submit validates, drops honeypot hits quietly, throttles per IP, stores
// the enquiry and sends mail in the background.
func (s *service) Submit(ctx context.Context, input Input, ip string) (Result, error) {
	enquiry := models.Enquiry{
		Name:    strings.TrimSpace(input.Name),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Message: strings.TrimSpace(input.Message),
		Page:    input.page(),
		IP:      ip,
	}
	if enquiry.Name == "" || enquiry.Email == "" || enquiry.Message == "" {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields")
	}

	if strings.TrimSpace(input.Website) != "" {
		enquiry.IsSpam = true
		if err := s.repo.Create(ctx, &enquiry); err != nil {
			s.logg.Error(ctx, "store spam enquiry", err)
		}
		return Result{Success: true}, nil
	}

	if err := s.throttle.Allow(ctx, ip); err != nil {
		return Result{}, err
	}

	if err := s.repo.Create(ctx, &enquiry); err != nil {
		return Result{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store enquiry")
	}

	if s.mailer != nil {
		bg := context.WithoutCancel(ctx)
		s.dispatch(func() { s.notify(bg, enquiry) })
	}
	return Result{Success: true, Message: "Enquiry submitted successfully"}, nil
}

func (s *service) notify(ctx context.Context, e models.Enquiry) {
	ctx = s.logg.WithField(ctx, "enquiry_id", e.ID)
	if s.adminEmail != "" {
		if err := s.mailer.Send(ctx, adminNotification(e, s.adminEmail, s.adminBCC)); err != nil {
			s.logg.Error(ctx, "enquiry admin email failed", err)
		}
	} else {
		s.logg.Warn(ctx, "admin email not configured; skipping enquiry notification")
	}
	if err := s.mailer.Send(ctx, customerThanks(e)); err != nil {
		s.logg.Error(ctx, "enquiry customer email failed", err)
	}
}

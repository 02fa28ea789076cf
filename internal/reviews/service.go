// Package reviews accepts customer product reviews. New reviews stay hidden
// until approved.
package reviews

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/stonefront-backend/internal/checkout/helpers"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

type store interface {
	Create(ctx context.Context, review *models.ProductReview) error
	ProductExists(ctx context.Context, productID uint) (bool, error)
}

type throttle interface {
	Allow(ctx context.Context, ip string) error
}

// Input is the review form body. Product accepts an id in any of the
// shapes the storefront sends.
type Input struct {
	Product  any    `json:"product"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Feedback string `json:"feedback"`
	Stars    int    `json:"stars"`
	Website  string `json:"website"`
}

// Created is returned after a review is stored.
type Created struct {
	OK bool `json:"ok"`
	ID uint `json:"id"`
}

type Service interface {
	Submit(ctx context.Context, input Input, ip string) (Created, error)
}

type ServiceParams struct {
	Repo     store
	Throttle throttle
	Logger   *logger.Logger
}

type service struct {
	repo     store
	throttle throttle
	logg     *logger.Logger
}

func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, errors.New("review repository is required")
	}
	if p.Throttle == nil {
		return nil, errors.New("throttle is required")
	}
	if p.Logger == nil {
		p.Logger = logger.Nop()
	}
	return &service{repo: p.Repo, throttle: p.Throttle, logg: p.Logger}, nil
}

func (s *service) Submit(ctx context.Context, input Input, ip string) (Created, error) {
	if strings.TrimSpace(input.Website) != "" {
		s.logg.Warn(s.logg.WithClientIP(ctx, ip), "review honeypot triggered")
		return Created{}, pkgerrors.New(pkgerrors.CodeSpam, "Spam detected")
	}

	productID, ok := helpers.ProductID(input.Product)
	review := models.ProductReview{
		ProductID: productID,
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Feedback:  strings.TrimSpace(input.Feedback),
		Stars:     input.Stars,
	}
	if !ok || review.Name == "" || review.Email == "" || review.Feedback == "" || input.Stars == 0 {
		return Created{}, pkgerrors.New(pkgerrors.CodeValidation, "Missing required fields")
	}
	if input.Stars < 1 || input.Stars > 5 {
		return Created{}, pkgerrors.New(pkgerrors.CodeValidation, "Stars must be between 1 and 5")
	}

	if err := s.throttle.Allow(ctx, ip); err != nil {
		return Created{}, err
	}

	exists, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return Created{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !exists {
		return Created{}, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
	}

	if err := s.repo.Create(ctx, &review); err != nil {
		return Created{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store review")
	}
	return Created{OK: true, ID: review.ID}, nil
}

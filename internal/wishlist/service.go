// Package wishlist stores liked products per user and renders them as
// product cards for both signed-in users and guests.
package wishlist

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/angelmondragon/stonefront-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
)

type store interface {
	ProductIDs(ctx context.Context, userID uint) ([]uint, error)
	Add(ctx context.Context, userID uint, productIDs ...uint) error
	Remove(ctx context.Context, userID, productID uint) (bool, error)
	KnownProducts(ctx context.Context, ids []uint) ([]uint, error)
}

type cardRenderer interface {
	ProductCards(ctx context.Context, ids []uint) ([]catalog.ProductCardDTO, error)
}

// ItemsDTO is the id-only wishlist view.
type ItemsDTO struct {
	Items []uint `json:"items"`
}

// ToggleDTO reports the toggle outcome and the resulting list.
type ToggleDTO struct {
	Added bool   `json:"added"`
	Items []uint `json:"items"`
}

// Service exposes business rules for wishlist management.
type Service interface {
	List(ctx context.Context, userID uint) (ItemsDTO, error)
	Toggle(ctx context.Context, userID, productID uint) (ToggleDTO, error)
	Merge(ctx context.Context, userID uint, productIDs []uint) (ItemsDTO, error)
	Products(ctx context.Context, userID *uint, ids []uint) ([]catalog.ProductCardDTO, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo  store
	Cards cardRenderer
}

type service struct {
	repo  store
	cards cardRenderer
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("wishlist repo is required")
	}
	if params.Cards == nil {
		return nil, fmt.Errorf("product card renderer is required")
	}
	return &service{repo: params.Repo, cards: params.Cards}, nil
}

func (s *service) List(ctx context.Context, userID uint) (ItemsDTO, error) {
	ids, err := s.repo.ProductIDs(ctx, userID)
	if err != nil {
		return ItemsDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist")
	}
	return ItemsDTO{Items: ids}, nil
}

// Toggle removes the product when liked, otherwise adds it.
func (s *service) Toggle(ctx context.Context, userID, productID uint) (ToggleDTO, error) {
	if productID == 0 {
		return ToggleDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "productId required")
	}
	removed, err := s.repo.Remove(ctx, userID, productID)
	if err != nil {
		return ToggleDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
	}
	if !removed {
		known, err := s.repo.KnownProducts(ctx, []uint{productID})
		if err != nil {
			return ToggleDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if len(known) == 0 {
			return ToggleDTO{}, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		if err := s.repo.Add(ctx, userID, productID); err != nil {
			return ToggleDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist item")
		}
	}
	list, err := s.List(ctx, userID)
	if err != nil {
		return ToggleDTO{}, err
	}
	return ToggleDTO{Added: !removed, Items: list.Items}, nil
}

// Merge stores the union of the server list and productIDs. Unknown ids
// are dropped.
func (s *service) Merge(ctx context.Context, userID uint, productIDs []uint) (ItemsDTO, error) {
	if productIDs == nil {
		return ItemsDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "items must be array")
	}
	known, err := s.repo.KnownProducts(ctx, dedup(productIDs))
	if err != nil {
		return ItemsDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	if err := s.repo.Add(ctx, userID, known...); err != nil {
		return ItemsDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "merge wishlist")
	}
	return s.List(ctx, userID)
}

// Products renders ids when given, else the signed-in user's list. Neither
// yields an empty slice.
func (s *service) Products(ctx context.Context, userID *uint, ids []uint) ([]catalog.ProductCardDTO, error) {
	if len(ids) == 0 && userID != nil {
		list, err := s.List(ctx, *userID)
		if err != nil {
			return nil, err
		}
		ids = list.Items
	}
	if len(ids) == 0 {
		return []catalog.ProductCardDTO{}, nil
	}
	return s.cards.ProductCards(ctx, dedup(ids))
}

// ParseIDs reads a comma separated id list, skipping blanks and non-positive
// or non-numeric entries.
func ParseIDs(raw string) []uint {
	var out []uint
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || n == 0 {
			continue
		}
		out = append(out, uint(n))
	}
	return out
}

func dedup(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

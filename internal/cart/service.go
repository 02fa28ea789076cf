// Package cart keeps a per-user server-side cart. Lines snapshot the
// product so they still render after catalog edits.
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/catalog"
	"github.com/angelmondragon/stonefront-backend/internal/checkout/helpers"
	"github.com/angelmondragon/stonefront-backend/internal/pricing"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type productLoader interface {
	FindProductByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Product, error)
}

// Service exposes the cart operations of an authenticated user.
type Service interface {
	Add(ctx context.Context, userID uint, input AddInput) (*ItemDTO, error)
	List(ctx context.Context, userID uint) ([]ItemDTO, error)
	UpdateQuantity(ctx context.Context, userID, itemID uint, quantity *int) (*ItemDTO, error)
	Remove(ctx context.Context, userID, itemID uint) (*ItemDTO, error)
}

// ServiceParams groups cart dependencies.
type ServiceParams struct {
	Tx       txRunner
	Repo     Repository
	Products productLoader
	AssetURL func(string) string
}

type service struct {
	tx        txRunner
	repo      Repository
	products  productLoader
	presenter catalog.Presenter
}

// NewService builds the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		tx:        params.Tx,
		repo:      params.Repo,
		products:  params.Products,
		presenter: catalog.NewPresenter(params.AssetURL),
	}, nil
}

// Add merges into an existing (product, variation) line or inserts a new
// one priced from the live variation.
func (s *service) Add(ctx context.Context, userID uint, input AddInput) (*ItemDTO, error) {
	productID, okProduct := helpers.ProductID(input.Product)
	variationID, _, okVariation := helpers.VariationID(input.VariationID)
	if !okProduct || input.VariationID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product and variation_id are required")
	}
	quantity := helpers.Quantity(input.Quantity)
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var itemID uint
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		product, err := s.products.FindProductByID(ctx, tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		var variation models.Variation
		found := false
		if okVariation {
			variation, found = pricing.FindByUUID(product.Variations, variationID)
		}
		if !found {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Variation not found for this product")
		}

		repo := s.repo.WithTx(tx)
		existing, err := repo.FindLine(ctx, userID, productID, variationID)
		switch {
		case err == nil:
			itemID = existing.ID
			return repo.IncrementQuantity(ctx, existing.ID, quantity)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
		}

		resolved := pricing.Resolve(variation)
		item := &models.CartItem{
			UserID:      userID,
			ProductID:   productID,
			VariationID: variationID,
			Quantity:    quantity,
			UnitPrice:   resolved.Price,
			Metadata: types.CartItemMetadata{
				ProductName:  product.Name,
				ProductImage: s.presenter.ImageURL(product.Images),
				SKU:          variation.SKU,
				Variation: types.VariationSnapshot{
					Thickness: variation.Thickness.String(),
					Size:      variation.Size.String(),
					Finish:    variation.Finish.String(),
					ColorTone: variation.ColorTone.String(),
					PackSize:  variation.PackSize,
					Pcs:       variation.Pcs,
					PerM2:     resolved.PerM2,
				},
			},
		}
		if err := repo.Create(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart line")
		}
		itemID = item.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.load(ctx, itemID)
}

func (s *service) List(ctx context.Context, userID uint) ([]ItemDTO, error) {
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart")
	}
	out := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, s.render(item))
	}
	return out, nil
}

func (s *service) UpdateQuantity(ctx context.Context, userID, itemID uint, quantity *int) (*ItemDTO, error) {
	if quantity == nil || *quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity required")
	}
	if _, err := s.owned(ctx, userID, itemID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateQuantity(ctx, itemID, *quantity); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart line")
	}
	return s.load(ctx, itemID)
}

func (s *service) Remove(ctx context.Context, userID, itemID uint) (*ItemDTO, error) {
	item, err := s.owned(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, itemID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete cart line")
	}
	dto := s.render(*item)
	return &dto, nil
}

func (s *service) owned(ctx context.Context, userID, itemID uint) (*models.CartItem, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Cart item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart line")
	}
	if item.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Not your cart item")
	}
	return item, nil
}

func (s *service) load(ctx context.Context, itemID uint) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload cart line")
	}
	dto := s.render(*item)
	return &dto, nil
}

// render matches the line to its live variation by uuid, then by SKU.
func (s *service) render(item models.CartItem) ItemDTO {
	dto := ItemDTO{
		ID:        item.ID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice.InexactFloat64(),
		Metadata:  item.Metadata,
		Product:   ProductRefDTO{ID: item.ProductID, Name: item.Metadata.ProductName, Image: item.Metadata.ProductImage},
	}
	if item.Product == nil {
		return dto
	}
	dto.Product.Name = item.Product.Name
	dto.Product.Slug = item.Product.Slug
	if img := s.presenter.ImageURL(item.Product.Images); img != "" {
		dto.Product.Image = img
	}

	v, ok := pricing.FindByUUID(item.Product.Variations, item.VariationID)
	if !ok && item.Metadata.SKU != "" {
		v, ok = findBySKU(item.Product.Variations, item.Metadata.SKU)
	}
	if ok {
		id := v.UUID
		dto.Variation = VariationRefDTO{ID: &id, Stock: v.Stock}
	}
	return dto
}

func findBySKU(vs []models.Variation, sku string) (models.Variation, bool) {
	sku = strings.TrimSpace(sku)
	for _, v := range vs {
		if strings.TrimSpace(v.SKU) == sku {
			return v, true
		}
	}
	return models.Variation{}, false
}

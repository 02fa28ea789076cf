// Package search backs the storefront's type-ahead box.
package search

import (
	"context"
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/stonefront-backend/internal/catalog"
	"github.com/angelmondragon/stonefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
)

const (
	minQueryLength   = 2
	categoryFetch    = 20
	categoryKeep     = 5
	productFetch     = 30
	productKeep      = 8
	likeEscapeClause = `LOWER(name) LIKE ? ESCAPE '\'`
)

// Hit is one suggestion.
type Hit struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

// Results groups suggestions by kind. Both slices are never nil.
type Results struct {
	Categories []Hit `json:"categories"`
	Products   []Hit `json:"products"`
}

// Service runs name searches over categories and products.
type Service struct {
	db        *gorm.DB
	presenter catalog.Presenter
}

func NewService(db *gorm.DB, assetURL func(string) string) (*Service, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	return &Service{db: db, presenter: catalog.NewPresenter(assetURL)}, nil
}

// Find matches q case-insensitively anywhere in the name. Prefix matches
// rank first, then names sort alphabetically.
func (s *Service) Find(ctx context.Context, raw string) (Results, error) {
	out := Results{Categories: []Hit{}, Products: []Hit{}}
	q := strings.ToLower(strings.TrimSpace(raw))
	if len([]rune(q)) < minQueryLength {
		return out, nil
	}
	pattern := "%" + escapeLike(q) + "%"

	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Where(likeEscapeClause, pattern).
		Limit(categoryFetch).
		Find(&categories).Error; err != nil {
		return out, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search categories")
	}
	for _, c := range categories {
		out.Categories = append(out.Categories, Hit{Name: c.Name, Slug: c.Slug, Image: s.presenter.ImageURL(c.Images)})
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).
		Where(likeEscapeClause, pattern).
		Where("is_published = ?", true).
		Limit(productFetch).
		Find(&products).Error; err != nil {
		return out, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search products")
	}
	for _, p := range products {
		out.Products = append(out.Products, Hit{Name: p.Name, Slug: p.Slug, Image: s.presenter.ImageURL(p.Images)})
	}

	out.Categories = rank(out.Categories, q, categoryKeep)
	out.Products = rank(out.Products, q, productKeep)
	return out, nil
}

func rank(hits []Hit, q string, keep int) []Hit {
	sort.SliceStable(hits, func(i, j int) bool {
		a, b := strings.ToLower(hits[i].Name), strings.ToLower(hits[j].Name)
		ap, bp := strings.HasPrefix(a, q), strings.HasPrefix(b, q)
		if ap != bp {
			return ap
		}
		return a < b
	})
	if len(hits) > keep {
		hits = hits[:keep]
	}
	return hits
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/stonefront-backend/api/responses"
	"github.com/angelmondragon/stonefront-backend/api/validators"
	"github.com/angelmondragon/stonefront-backend/internal/catalog"
	"github.com/angelmondragon/stonefront-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
	"github.com/angelmondragon/stonefront-backend/pkg/pagination"
)

const maxOffset = 1 << 20

func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !catalogReady(w, r, svc, logg) {
			return
		}
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// CategoryDetail renders a category page with facet filters and offset
// pagination.
func CategoryDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !catalogReady(w, r, svc, logg) {
			return
		}
		query, err := parseCategoryQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		detail, err := svc.GetCategory(r.Context(), slugParam(r, "slug"), query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !catalogReady(w, r, svc, logg) {
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := validators.ParseQueryInt(r, "page", 1, 1, maxOffset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		list, err := svc.ListProducts(r.Context(), page, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !catalogReady(w, r, svc, logg) {
			return
		}
		product, err := svc.GetProduct(r.Context(), slugParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductSlugs(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !catalogReady(w, r, svc, logg) {
			return
		}
		slugs, err := svc.ListProductSlugs(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, slugs)
	}
}

func parseCategoryQuery(r *http.Request) (catalog.CategoryQuery, error) {
	q := r.URL.Query()
	price, err := pricing.ParsePriceRange(q.Get("price"))
	if err != nil {
		return catalog.CategoryQuery{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price filter").
			WithDetails(map[string]any{"field": "price"})
	}
	offset, err := validators.ParseQueryInt(r, "offset", 0, 0, maxOffset)
	if err != nil {
		return catalog.CategoryQuery{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return catalog.CategoryQuery{}, err
	}
	return catalog.CategoryQuery{
		Filters: pricing.Filters{
			Price:     price,
			ColorTone: validators.SanitizeString(q.Get("colorTone"), 64),
			Finish:    validators.SanitizeString(q.Get("finish"), 64),
			Thickness: validators.SanitizeString(q.Get("thickness"), 64),
			Size:      validators.SanitizeString(q.Get("size"), 64),
		},
		Offset: offset,
		Limit:  limit,
	}, nil
}

func catalogReady(w http.ResponseWriter, r *http.Request, svc catalog.Service, logg *logger.Logger) bool {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
		return false
	}
	return true
}

func slugParam(r *http.Request, key string) string {
	return strings.TrimSpace(chi.URLParam(r, key))
}

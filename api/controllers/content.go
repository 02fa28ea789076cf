package controllers

import (
	"net/http"

	"github.com/angelmondragon/stonefront-backend/api/responses"
	"github.com/angelmondragon/stonefront-backend/api/validators"
	"github.com/angelmondragon/stonefront-backend/internal/content"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

const blogPageSize = 12

func Homepage(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !contentReady(w, r, svc, logg) {
			return
		}
		page, err := svc.Homepage(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func FooterDetail(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !contentReady(w, r, svc, logg) {
			return
		}
		footer, err := svc.Footer(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, footer)
	}
}

func BlogList(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !contentReady(w, r, svc, logg) {
			return
		}
		page, err := validators.ParseQueryInt(r, "page", 1, 1, maxOffset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", blogPageSize, 1, maxOffset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		blogs, err := svc.ListBlogs(r.Context(), page, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blogs)
	}
}

func BlogDetail(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !contentReady(w, r, svc, logg) {
			return
		}
		blog, err := svc.GetBlog(r.Context(), slugParam(r, "slug"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, blog)
	}
}

func SitePolicy(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !contentReady(w, r, svc, logg) {
			return
		}
		policy, err := svc.GetPolicy(r.Context(), slugParam(r, "pageName"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, policy)
	}
}

func ProductCatalogues(svc content.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !contentReady(w, r, svc, logg) {
			return
		}
		catalogues, err := svc.ListCatalogues(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalogues)
	}
}

func contentReady(w http.ResponseWriter, r *http.Request, svc content.Service, logg *logger.Logger) bool {
	if svc == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content service unavailable"))
		return false
	}
	return true
}

package controllers

import (
	"net/http"

	"github.com/angelmondragon/stonefront-backend/api/middleware"
	"github.com/angelmondragon/stonefront-backend/api/responses"
	"github.com/angelmondragon/stonefront-backend/api/validators"
	"github.com/angelmondragon/stonefront-backend/internal/enquiries"
	"github.com/angelmondragon/stonefront-backend/internal/reviews"
	pkgerrors "github.com/angelmondragon/stonefront-backend/pkg/errors"
	"github.com/angelmondragon/stonefront-backend/pkg/logger"
)

// Form field ceilings; longer input is truncated.
const (
	maxNameLen    = 200
	maxEmailLen   = 254
	maxPhoneLen   = 40
	maxMessageLen = 5000
)

// EnquirySubmit stores a contact form and mails the shop.
func EnquirySubmit(svc enquiries.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "enquiry service unavailable"))
			return
		}
		var input enquiries.Input
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Name = validators.SanitizeString(input.Name, maxNameLen)
		input.Email = validators.SanitizeString(input.Email, maxEmailLen)
		input.Phone = validators.SanitizeString(input.Phone, maxPhoneLen)
		input.Message = validators.SanitizeString(input.Message, maxMessageLen)
		input.Product = validators.SanitizeString(input.Product, maxNameLen)

		result, err := svc.Submit(r.Context(), input, middleware.ClientIP(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ReviewSubmit stores an unapproved product review.
func ReviewSubmit(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "review service unavailable"))
			return
		}
		var input reviews.Input
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input.Name = validators.SanitizeString(input.Name, maxNameLen)
		input.Email = validators.SanitizeString(input.Email, maxEmailLen)
		input.Feedback = validators.SanitizeString(input.Feedback, maxMessageLen)

		created, err := svc.Submit(r.Context(), input, middleware.ClientIP(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

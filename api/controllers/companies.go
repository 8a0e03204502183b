package controllers

import (
	"net/http"

	"github.com/gathergraze/snackshop-backend/api/responses"
	"github.com/gathergraze/snackshop-backend/api/validators"
	companysvc "github.com/gathergraze/snackshop-backend/internal/companies"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
	"github.com/gathergraze/snackshop-backend/pkg/logger"
)

type createCompanyRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=120"`
	ContactEmail string  `json:"contact_email" validate:"required,email"`
	LogoURL      *string `json:"logo_url,omitempty"`
}

type updateCompanyRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	LogoURL      *string `json:"logo_url,omitempty"`
}

// CompanyCreate registers a new snack company.
func CompanyCreate(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable"))
			return
		}

		var body createCompanyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.Create(r.Context(), companysvc.CreateCompanyInput{
			Name:         body.Name,
			ContactEmail: body.ContactEmail,
			LogoURL:      body.LogoURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, company)
	}
}

func CompanyList(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable"))
			return
		}

		companies, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, companies)
	}
}

func CompanyGet(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable"))
			return
		}

		companyID, err := pathUUID(r, "companyId", "company id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.GetByID(r.Context(), companyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, company)
	}
}

func CompanyUpdate(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable"))
			return
		}

		companyID, err := pathUUID(r, "companyId", "company id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCompanyRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.Update(r.Context(), companyID, companysvc.UpdateCompanyInput{
			Name:         body.Name,
			ContactEmail: body.ContactEmail,
			LogoURL:      body.LogoURL,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, company)
	}
}

// CompanyDelete removes a company and every snack it sells.
func CompanyDelete(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable"))
			return
		}

		companyID, err := pathUUID(r, "companyId", "company id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), companyID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

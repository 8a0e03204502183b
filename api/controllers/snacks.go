package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/gathergraze/snackshop-backend/api/responses"
	"github.com/gathergraze/snackshop-backend/api/validators"
	catalogsvc "github.com/gathergraze/snackshop-backend/internal/catalog"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
	"github.com/gathergraze/snackshop-backend/pkg/logger"
)

type createSnackRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=120"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"min=0"`
}

type updateSnackRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description *string          `json:"description,omitempty"`
	ImageURL    *string          `json:"image_url,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Stock       *int             `json:"stock,omitempty" validate:"omitempty,min=0"`
}

// SnackCreate adds a snack to a company's catalog.
func SnackCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		companyID, err := pathUUID(r, "companyId", "company id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createSnackRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snack, err := svc.CreateSnack(r.Context(), companyID, catalogsvc.CreateSnackInput{
			Name:        body.Name,
			Description: body.Description,
			ImageURL:    body.ImageURL,
			Price:       body.Price,
			Stock:       body.Stock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, snack)
	}
}

// SnackList returns a company's catalog. Non-admin callers see their
// own company; an explicit companyId query overrides for admins.
func SnackList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		companyID, err := validators.ParseQueryUUID(r, "companyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if companyID == nil {
			own, err := requestCompanyID(r)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			companyID = &own
		}

		snacks, err := svc.ListSnacks(r.Context(), *companyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snacks)
	}
}

func SnackGet(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		snackID, err := pathUUID(r, "snackId", "snack id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snack, err := svc.GetSnack(r.Context(), snackID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snack)
	}
}

// SnackUpdate mutates catalog fields; a stock value in the payload is
// applied as a ledger override rather than a plain column write.
func SnackUpdate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		snackID, err := pathUUID(r, "snackId", "snack id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateSnackRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.GetSnack(r.Context(), snackID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snack, err := svc.UpdateSnack(r.Context(), current.CompanyID, snackID, catalogsvc.UpdateSnackInput{
			Name:        body.Name,
			Description: body.Description,
			ImageURL:    body.ImageURL,
			Price:       body.Price,
			Stock:       body.Stock,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snack)
	}
}

func SnackDelete(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		snackID, err := pathUUID(r, "snackId", "snack id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.GetSnack(r.Context(), snackID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSnack(r.Context(), current.CompanyID, snackID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}

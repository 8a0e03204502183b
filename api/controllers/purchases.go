package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gathergraze/snackshop-backend/api/responses"
	"github.com/gathergraze/snackshop-backend/api/validators"
	purchasesvc "github.com/gathergraze/snackshop-backend/internal/purchases"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
	"github.com/gathergraze/snackshop-backend/pkg/logger"
)

func purchaseFilterFromQuery(r *http.Request) (purchasesvc.Filter, error) {
	var filter purchasesvc.Filter

	companyID, err := validators.ParseQueryUUID(r, "companyId")
	if err != nil {
		return filter, err
	}
	userID, err := validators.ParseQueryUUID(r, "userId")
	if err != nil {
		return filter, err
	}
	snackID, err := validators.ParseQueryUUID(r, "snackId")
	if err != nil {
		return filter, err
	}
	from, err := validators.ParseQueryDate(r, "from")
	if err != nil {
		return filter, err
	}
	to, err := validators.ParseQueryDate(r, "to")
	if err != nil {
		return filter, err
	}

	// A date-only upper bound covers that whole day.
	if to != nil && len(strings.TrimSpace(r.URL.Query().Get("to"))) == len("2006-01-02") {
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	filter = purchasesvc.Filter{
		CompanyID: companyID,
		UserID:    userID,
		SnackID:   snackID,
		From:      from,
		To:        to,
	}

	if companyID == nil && userID == nil && snackID == nil && from == nil && to == nil {
		return filter, pkgerrors.New(pkgerrors.CodeValidation, "at least one filter is required")
	}
	return filter, nil
}

// AdminQueryPurchases returns purchase ledger rows matching the query
// filters. Unfiltered dumps are refused.
func AdminQueryPurchases(svc purchasesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase service unavailable"))
			return
		}

		filter, err := purchaseFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		purchases, err := svc.Query(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if limit > 0 && len(purchases) > limit {
			purchases = purchases[:limit]
		}
		responses.WriteSuccess(w, purchases)
	}
}

// AdminExportPurchases streams the filtered ledger as a CSV download.
func AdminExportPurchases(svc purchasesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "purchase service unavailable"))
			return
		}

		filter, err := purchaseFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		purchases, err := svc.Query(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filename := "purchases_" + time.Now().UTC().Format("20060102_150405") + ".csv"
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		w.WriteHeader(http.StatusOK)

		if err := svc.WriteCSV(w, purchases); err != nil {
			// Headers are already gone; all we can do is log.
			if logg != nil {
				logg.Error(r.Context(), "purchase csv export failed", err)
			}
		}
	}
}

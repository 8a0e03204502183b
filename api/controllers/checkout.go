package controllers

import (
	"net/http"

	"github.com/gathergraze/snackshop-backend/api/responses"
	cartsvc "github.com/gathergraze/snackshop-backend/internal/cart"
	checkoutsvc "github.com/gathergraze/snackshop-backend/internal/checkout"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
	"github.com/gathergraze/snackshop-backend/pkg/logger"
)

// CheckoutCommit turns the caller's staged cart into purchases. Lines
// that commit are removed from the cart; failed lines stay staged so
// the user can retry or adjust them.
func CheckoutCommit(svc checkoutsvc.Service, carts cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || carts == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := requestUserID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		companyID, err := requestCompanyID(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sess, ok := carts.Sessions().Get(userID)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "no cart session"))
			return
		}

		snapshot := sess.Snapshot()
		lines := make([]checkoutsvc.CommitLine, 0, len(snapshot))
		for _, line := range snapshot {
			lines = append(lines, checkoutsvc.CommitLine{SnackID: line.SnackID, Quantity: line.Quantity})
		}

		result, err := svc.Commit(ctx, userID, companyID, lines)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if purchased := result.PurchasedSnackIDs(); len(purchased) > 0 {
			sess.RemoveLines(purchased)
		}

		responses.WriteSuccess(w, result)
	}
}

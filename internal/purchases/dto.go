package purchases

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
)

// PurchaseDTO is one ledger row enriched with display names. SnackName
// and CompanyName are empty when the referenced row has since been
// deleted; the ledger row itself always survives.
type PurchaseDTO struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	SnackID     uuid.UUID       `json:"snack_id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	SnackName   string          `json:"snack_name,omitempty"`
	CompanyName string          `json:"company_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	CreatedAt   time.Time       `json:"created_at"`
}

func fromModel(p *models.Purchase) PurchaseDTO {
	return PurchaseDTO{
		ID:         p.ID,
		UserID:     p.UserID,
		SnackID:    p.SnackID,
		CompanyID:  p.CompanyID,
		Quantity:   p.Quantity,
		UnitPrice:  p.UnitPrice,
		TotalPrice: p.TotalPrice,
		CreatedAt:  p.CreatedAt,
	}
}

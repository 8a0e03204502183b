package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
)

type snackLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Snack, error)
}

// StagedLineDTO reports the effective quantity after a staging call.
// Clamped is true when the requested quantity exceeded observed stock.
type StagedLineDTO struct {
	SnackID  uuid.UUID `json:"snack_id"`
	Quantity int       `json:"quantity"`
	Stock    int       `json:"stock"`
	Clamped  bool      `json:"clamped"`
}

// CartLineDTO is one staged line enriched with catalog data.
type CartLineDTO struct {
	SnackID   uuid.UUID       `json:"snack_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Stock     int             `json:"stock"`
}

// CartDTO is the full cart view.
type CartDTO struct {
	Lines []CartLineDTO   `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// Service exposes cart staging operations. Staging never reserves
// stock; it only clamps against the stock observed at call time. Carts
// are scoped to the user's company: staging a snack sold by another
// company is refused outright.
type Service interface {
	SetQuantity(ctx context.Context, userID, companyID, snackID uuid.UUID, qty int) (*StagedLineDTO, error)
	AddOne(ctx context.Context, userID, companyID, snackID uuid.UUID) (*StagedLineDTO, error)
	RemoveOne(ctx context.Context, userID, snackID uuid.UUID) (*StagedLineDTO, error)
	View(ctx context.Context, userID uuid.UUID) (*CartDTO, error)
	Clear(userID uuid.UUID)
	Sessions() *SessionStore
}

type service struct {
	sessions *SessionStore
	snacks   snackLoader
}

// NewService builds a cart service backed by the provided session store.
func NewService(sessions *SessionStore, snacks snackLoader) (Service, error) {
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	if snacks == nil {
		return nil, fmt.Errorf("snack loader required")
	}
	return &service{sessions: sessions, snacks: snacks}, nil
}

func (s *service) SetQuantity(ctx context.Context, userID, companyID, snackID uuid.UUID, qty int) (*StagedLineDTO, error) {
	if qty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}

	snack, err := s.loadCompanySnack(ctx, companyID, snackID)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Attach(userID)
	effective := sess.SetQuantity(snackID, qty, snack.Stock)
	return &StagedLineDTO{
		SnackID:  snackID,
		Quantity: effective,
		Stock:    snack.Stock,
		Clamped:  effective < qty,
	}, nil
}

func (s *service) AddOne(ctx context.Context, userID, companyID, snackID uuid.UUID) (*StagedLineDTO, error) {
	snack, err := s.loadCompanySnack(ctx, companyID, snackID)
	if err != nil {
		return nil, err
	}

	sess := s.sessions.Attach(userID)
	before := stagedQty(sess, snackID)
	effective := sess.AddOne(snackID, snack.Stock)
	return &StagedLineDTO{
		SnackID:  snackID,
		Quantity: effective,
		Stock:    snack.Stock,
		Clamped:  effective == before,
	}, nil
}

func (s *service) RemoveOne(ctx context.Context, userID, snackID uuid.UUID) (*StagedLineDTO, error) {
	sess := s.sessions.Attach(userID)
	effective := sess.RemoveOne(snackID)
	return &StagedLineDTO{SnackID: snackID, Quantity: effective}, nil
}

// View resolves the staged lines against the catalog. Lines whose snack
// has since been deleted are silently dropped from the session.
func (s *service) View(ctx context.Context, userID uuid.UUID) (*CartDTO, error) {
	sess := s.sessions.Attach(userID)

	var gone []uuid.UUID
	lines := make([]CartLineDTO, 0)
	total := decimal.Zero
	for _, line := range sess.Snapshot() {
		snack, err := s.snacks.FindByID(ctx, line.SnackID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				gone = append(gone, line.SnackID)
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snack")
		}
		lineTotal := snack.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lines = append(lines, CartLineDTO{
			SnackID:   snack.ID,
			Name:      snack.Name,
			UnitPrice: snack.Price,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
			Stock:     snack.Stock,
		})
		total = total.Add(lineTotal)
	}
	if len(gone) > 0 {
		sess.RemoveLines(gone)
	}

	return &CartDTO{Lines: lines, Total: total}, nil
}

func (s *service) Clear(userID uuid.UUID) {
	if sess, ok := s.sessions.Get(userID); ok {
		sess.Clear()
	}
}

// Sessions exposes the underlying store for login/logout lifecycle hooks.
func (s *service) Sessions() *SessionStore {
	return s.sessions
}

func (s *service) loadCompanySnack(ctx context.Context, companyID, snackID uuid.UUID) (*models.Snack, error) {
	snack, err := s.snacks.FindByID(ctx, snackID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "snack not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snack")
	}
	if snack.CompanyID != companyID {
		return nil, pkgerrors.New(pkgerrors.CodeItemUnavailable, "snack is not sold by your company")
	}
	return snack, nil
}

func stagedQty(sess *Session, snackID uuid.UUID) int {
	for _, line := range sess.Snapshot() {
		if line.SnackID == snackID {
			return line.Quantity
		}
	}
	return 0
}

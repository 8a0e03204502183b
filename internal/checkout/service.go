package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/internal/purchases"
	"github.com/gathergraze/snackshop-backend/internal/stock"
	"github.com/gathergraze/snackshop-backend/pkg/config"
	"github.com/gathergraze/snackshop-backend/pkg/db/models"
	"github.com/gathergraze/snackshop-backend/pkg/enums"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
	"github.com/gathergraze/snackshop-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type decrementer interface {
	Decrement(ctx context.Context, tx *gorm.DB, snackID uuid.UUID, qty int) (*stock.DecrementResult, error)
}

type snackLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Snack, error)
}

type ledgerEngine struct {
	ledger *stock.Ledger
}

func (e ledgerEngine) Decrement(ctx context.Context, tx *gorm.DB, snackID uuid.UUID, qty int) (*stock.DecrementResult, error) {
	return e.ledger.WithTx(tx).TryDecrement(ctx, snackID, qty)
}

// Service executes checkout orchestration.
type Service interface {
	Commit(ctx context.Context, userID, companyID uuid.UUID, lines []CommitLine) (*Result, error)
}

type service struct {
	tx        txRunner
	stock     decrementer
	snacks    snackLoader
	purchases purchases.Repository
	metrics   *metrics.CheckoutMetrics
	maxLines  int
}

// NewService builds the checkout service. The stock ledger is the only
// authority consulted for stock; purchases are written in the same
// transaction as the decrement that funds them.
func NewService(
	tx txRunner,
	ledger *stock.Ledger,
	snacks snackLoader,
	purchaseRepo purchases.Repository,
	checkoutMetrics *metrics.CheckoutMetrics,
	cfg config.CheckoutConfig,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("stock ledger required")
	}
	if snacks == nil {
		return nil, fmt.Errorf("snack loader required")
	}
	if purchaseRepo == nil {
		return nil, fmt.Errorf("purchase repository required")
	}
	maxLines := cfg.MaxLines
	if maxLines <= 0 {
		maxLines = 100
	}
	return &service{
		tx:        tx,
		stock:     ledgerEngine{ledger: ledger},
		snacks:    snacks,
		purchases: purchaseRepo,
		metrics:   checkoutMetrics,
		maxLines:  maxLines,
	}, nil
}

// Commit attempts every line independently. Each line runs in its own
// transaction pairing the conditional stock decrement with the purchase
// row it funds. Lines that lose the race for stock fail on their own;
// earlier committed lines are never rolled back.
func (s *service) Commit(ctx context.Context, userID, companyID uuid.UUID, lines []CommitLine) (*Result, error) {
	started := time.Now()

	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if companyID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company id required")
	}

	reason := s.rejectReason(lines)
	var observed map[uuid.UUID]int
	if reason == "" {
		var err error
		reason, observed, err = s.validate(ctx, companyID, lines)
		if err != nil {
			return nil, err
		}
	}
	if reason != "" {
		result := &Result{
			Status:       enums.CheckoutStatusRejected,
			RejectReason: reason,
			Lines:        []LineResult{},
			Total:        decimal.Zero,
		}
		s.metrics.ObserveCommit(result.Status.String(), time.Since(started))
		return result, nil
	}

	result := &Result{
		Status: enums.CheckoutStatusCommitted,
		Lines:  make([]LineResult, 0, len(lines)),
		Total:  decimal.Zero,
	}

	for _, line := range lines {
		lineResult, err := s.commitLine(ctx, userID, line)
		if err != nil {
			return nil, err
		}
		if available, ok := observed[line.SnackID]; ok {
			availableCopy := available
			lineResult.AvailableAtValidation = &availableCopy
		}
		if lineResult.Outcome == enums.LineOutcomeFailed {
			result.Status = enums.CheckoutStatusPartiallyFailed
		} else if lineResult.LineTotal != nil {
			result.Total = result.Total.Add(*lineResult.LineTotal)
		}
		s.metrics.IncLineOutcome(lineResult.Outcome.String())
		result.Lines = append(result.Lines, *lineResult)
	}

	s.metrics.ObserveCommit(result.Status.String(), time.Since(started))
	return result, nil
}

// rejectReason runs the structural pre-checks. Any hit rejects the
// whole checkout before a single decrement is attempted, so a rejected
// checkout can be retried without side effects.
func (s *service) rejectReason(lines []CommitLine) string {
	if len(lines) == 0 {
		return "checkout contains no lines"
	}
	if len(lines) > s.maxLines {
		return fmt.Sprintf("checkout exceeds %d lines", s.maxLines)
	}
	seen := make(map[uuid.UUID]struct{}, len(lines))
	for _, line := range lines {
		if line.SnackID == uuid.Nil {
			return "snack id required on every line"
		}
		if line.Quantity <= 0 {
			return fmt.Sprintf("invalid quantity %d for snack %s", line.Quantity, line.SnackID)
		}
		if _, dup := seen[line.SnackID]; dup {
			return fmt.Sprintf("duplicate line for snack %s", line.SnackID)
		}
		seen[line.SnackID] = struct{}{}
	}
	return ""
}

// validate is the advisory pre-commit pass. It rejects snacks staged
// against the wrong company and records the stock observed per line.
// A snack missing here is left for the commit phase to fail on its own;
// observed stock is a warning, never a reservation.
func (s *service) validate(ctx context.Context, companyID uuid.UUID, lines []CommitLine) (string, map[uuid.UUID]int, error) {
	observed := make(map[uuid.UUID]int, len(lines))
	for _, line := range lines {
		snack, err := s.snacks.FindByID(ctx, line.SnackID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return "", nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load snack")
		}
		if snack.CompanyID != companyID {
			return fmt.Sprintf("snack %s does not belong to company %s", snack.ID, companyID), nil, nil
		}
		observed[line.SnackID] = snack.Stock
	}
	return "", observed, nil
}

func (s *service) commitLine(ctx context.Context, userID uuid.UUID, line CommitLine) (*LineResult, error) {
	var dec *stock.DecrementResult
	var purchaseID uuid.UUID

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		dec, err = s.stock.Decrement(ctx, tx, line.SnackID, line.Quantity)
		if err != nil {
			return err
		}

		purchase := &models.Purchase{
			ID:         uuid.New(),
			UserID:     userID,
			SnackID:    dec.SnackID,
			CompanyID:  dec.CompanyID,
			Quantity:   dec.Quantity,
			UnitPrice:  dec.UnitPrice,
			TotalPrice: dec.UnitPrice.Mul(decimal.NewFromInt(int64(dec.Quantity))),
		}
		if err := s.purchases.WithTx(tx).Create(ctx, purchase); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record purchase")
		}
		purchaseID = purchase.ID
		return nil
	})
	if err != nil {
		return s.failedLine(line, err)
	}

	lineTotal := dec.UnitPrice.Mul(decimal.NewFromInt(int64(dec.Quantity)))
	unitPrice := dec.UnitPrice
	return &LineResult{
		SnackID:    dec.SnackID,
		SnackName:  dec.Name,
		Quantity:   dec.Quantity,
		Outcome:    enums.LineOutcomePurchased,
		PurchaseID: &purchaseID,
		UnitPrice:  &unitPrice,
		LineTotal:  &lineTotal,
	}, nil
}

// failedLine translates expected per-line failures into a LineResult.
// Anything else aborts the checkout; lines already committed stand.
func (s *service) failedLine(line CommitLine, err error) (*LineResult, error) {
	var short *stock.InsufficientStockError
	if errors.As(err, &short) {
		s.metrics.IncInsufficientStock()
		reason := enums.LineFailureInsufficientStock
		available := short.Available
		return &LineResult{
			SnackID:   line.SnackID,
			Quantity:  line.Quantity,
			Outcome:   enums.LineOutcomeFailed,
			Reason:    &reason,
			Available: &available,
		}, nil
	}
	if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeNotFound {
		reason := enums.LineFailureSnackNotFound
		return &LineResult{
			SnackID:  line.SnackID,
			Quantity: line.Quantity,
			Outcome:  enums.LineOutcomeFailed,
			Reason:   &reason,
		}, nil
	}
	return nil, err
}

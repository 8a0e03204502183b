package stock

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gathergraze/snackshop-backend/pkg/db/models"
	pkgerrors "github.com/gathergraze/snackshop-backend/pkg/errors"
)

func TestTryDecrementSuccess(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger(db)
	snack := seedSnack(t, db, 5, "1.50")

	res, err := ledger.TryDecrement(context.Background(), snack.ID, 3)
	if err != nil {
		t.Fatalf("decrement: %v", err)
	}
	if res.Quantity != 3 || res.Remaining != 2 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !res.UnitPrice.Equal(decimal.RequireFromString("1.50")) {
		t.Fatalf("expected unit price 1.50, got %s", res.UnitPrice)
	}

	stock, err := ledger.GetStock(context.Background(), snack.ID)
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if stock != 2 {
		t.Fatalf("expected stock 2, got %d", stock)
	}
}

func TestTryDecrementInsufficient(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger(db)
	snack := seedSnack(t, db, 1, "2.00")

	_, err := ledger.TryDecrement(context.Background(), snack.ID, 4)
	var short *InsufficientStockError
	if !errors.As(err, &short) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if short.Requested != 4 || short.Available != 1 {
		t.Fatalf("unexpected shortfall: %+v", short)
	}

	stock, err := ledger.GetStock(context.Background(), snack.ID)
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if stock != 1 {
		t.Fatalf("rejected decrement must not touch stock, got %d", stock)
	}
}

func TestTryDecrementExactRemainder(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger(db)
	snack := seedSnack(t, db, 2, "2.00")

	res, err := ledger.TryDecrement(context.Background(), snack.ID, 2)
	if err != nil {
		t.Fatalf("decrement to zero: %v", err)
	}
	if res.Remaining != 0 {
		t.Fatalf("expected remaining 0, got %d", res.Remaining)
	}

	_, err = ledger.TryDecrement(context.Background(), snack.ID, 1)
	var short *InsufficientStockError
	if !errors.As(err, &short) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if short.Available != 0 {
		t.Fatalf("expected available 0, got %d", short.Available)
	}
}

func TestTryDecrementUnknownSnack(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger(db)

	_, err := ledger.TryDecrement(context.Background(), uuid.New(), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestTryDecrementInvalidQty(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger(db)
	snack := seedSnack(t, db, 5, "2.00")

	for _, qty := range []int{0, -2} {
		_, err := ledger.TryDecrement(context.Background(), snack.ID, qty)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("qty %d: expected validation code, got %v", qty, err)
		}
	}
}

func TestTryDecrementConcurrentLastUnits(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger(db)
	snack := seedSnack(t, db, 3, "2.00")

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = ledger.TryDecrement(context.Background(), snack.ID, 2)
		}(i)
	}
	wg.Wait()

	var ok, failed int
	for _, err := range results {
		if err == nil {
			ok++
			continue
		}
		var short *InsufficientStockError
		if !errors.As(err, &short) {
			t.Fatalf("unexpected error: %v", err)
		}
		if short.Available != 1 {
			t.Fatalf("expected available 1 for the loser, got %d", short.Available)
		}
		failed++
	}
	if ok != 1 || failed != 1 {
		t.Fatalf("expected exactly one winner, got ok=%d failed=%d", ok, failed)
	}

	stock, err := ledger.GetStock(context.Background(), snack.ID)
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if stock != 1 {
		t.Fatalf("expected stock 1 after race, got %d", stock)
	}
}

func TestTryDecrementNeverOversells(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger(db)
	snack := seedSnack(t, db, 10, "2.00")

	var wg sync.WaitGroup
	var committed int64
	var mu sync.Mutex
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := ledger.TryDecrement(context.Background(), snack.ID, 1)
			if err != nil {
				var short *InsufficientStockError
				if !errors.As(err, &short) {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			mu.Lock()
			committed += int64(res.Quantity)
			mu.Unlock()
		}()
	}
	wg.Wait()

	stock, err := ledger.GetStock(context.Background(), snack.ID)
	if err != nil {
		t.Fatalf("get stock: %v", err)
	}
	if stock < 0 {
		t.Fatalf("stock went negative: %d", stock)
	}
	if committed != 10 || stock != 0 {
		t.Fatalf("expected 10 committed and 0 left, got committed=%d stock=%d", committed, stock)
	}
}

func TestSetStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	ledger := NewLedger(db)
	snack := seedSnack(t, db, 1, "2.00")

	updated, err := ledger.SetStock(context.Background(), snack.ID, 25)
	if err != nil {
		t.Fatalf("set stock: %v", err)
	}
	if updated.Stock != 25 {
		t.Fatalf("expected stock 25, got %d", updated.Stock)
	}

	if _, err := ledger.SetStock(context.Background(), snack.ID, -1); err == nil {
		t.Fatal("expected error setting negative stock")
	}
	if _, err := ledger.SetStock(context.Background(), uuid.New(), 5); err == nil {
		t.Fatal("expected error for unknown snack")
	}
}

func seedSnack(t *testing.T, db *gorm.DB, stock int, price string) *models.Snack {
	t.Helper()
	snack := &models.Snack{
		ID:        uuid.New(),
		CompanyID: uuid.New(),
		Name:      "Test Snack",
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
	}
	if err := db.Create(snack).Error; err != nil {
		t.Fatalf("seed snack: %v", err)
	}
	return snack
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:stock_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	// Single connection keeps the shared in-memory DB serialized under
	// concurrent writers, matching what row locks give us on postgres.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&models.Snack{}); err != nil {
		t.Fatalf("migrate snacks: %v", err)
	}
	return db
}

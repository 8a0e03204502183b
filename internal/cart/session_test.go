package cart

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func TestSetQuantityClampsToObservedStock(t *testing.T) {
	sess := newSession()
	snackID := uuid.New()

	if got := sess.SetQuantity(snackID, 10, 4); got != 4 {
		t.Fatalf("expected clamp to 4, got %d", got)
	}
	if got := sess.SetQuantity(snackID, 2, 4); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
	if got := sess.SetQuantity(snackID, -3, 4); got != 0 {
		t.Fatalf("expected negative request to stage 0, got %d", got)
	}
	if lines := sess.Snapshot(); len(lines) != 0 {
		t.Fatalf("expected zero quantity to drop the line, got %v", lines)
	}
}

func TestAddOneStopsAtStock(t *testing.T) {
	sess := newSession()
	snackID := uuid.New()

	for i := 0; i < 5; i++ {
		sess.AddOne(snackID, 3)
	}
	lines := sess.Snapshot()
	if len(lines) != 1 || lines[0].Quantity != 3 {
		t.Fatalf("expected quantity pinned at 3, got %v", lines)
	}
}

func TestRemoveOneFloorsAtZero(t *testing.T) {
	sess := newSession()
	snackID := uuid.New()

	sess.SetQuantity(snackID, 2, 10)
	if got := sess.RemoveOne(snackID); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := sess.RemoveOne(snackID); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := sess.RemoveOne(snackID); got != 0 {
		t.Fatalf("expected floor at 0, got %d", got)
	}
	if lines := sess.Snapshot(); len(lines) != 0 {
		t.Fatalf("expected line removed at zero, got %v", lines)
	}
}

func TestSnapshotPreservesInsertionOrder(t *testing.T) {
	sess := newSession()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	sess.SetQuantity(a, 1, 10)
	sess.SetQuantity(b, 2, 10)
	sess.SetQuantity(c, 3, 10)
	sess.SetQuantity(a, 5, 10)

	lines := sess.Snapshot()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0].SnackID != a || lines[0].Quantity != 5 {
		t.Fatalf("expected a first with qty 5, got %v", lines[0])
	}
	if lines[1].SnackID != b || lines[2].SnackID != c {
		t.Fatalf("unexpected order: %v", lines)
	}
}

func TestRemoveLines(t *testing.T) {
	sess := newSession()
	a, b := uuid.New(), uuid.New()

	sess.SetQuantity(a, 1, 10)
	sess.SetQuantity(b, 2, 10)
	sess.RemoveLines([]uuid.UUID{a, uuid.New()})

	lines := sess.Snapshot()
	if len(lines) != 1 || lines[0].SnackID != b {
		t.Fatalf("expected only b to remain, got %v", lines)
	}
}

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	userID := uuid.New()

	sess := store.Attach(userID)
	if again := store.Attach(userID); again != sess {
		t.Fatal("expected Attach to return the same session")
	}

	sess.SetQuantity(uuid.New(), 2, 10)
	store.Detach(userID)
	if _, ok := store.Get(userID); ok {
		t.Fatal("expected session gone after Detach")
	}

	fresh := store.Attach(userID)
	if len(fresh.Snapshot()) != 0 {
		t.Fatal("expected a fresh session after re-attach")
	}
}

func TestSessionConcurrentStaging(t *testing.T) {
	store := NewSessionStore()
	userID := uuid.New()
	snackID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Attach(userID).AddOne(snackID, 1000)
		}()
	}
	wg.Wait()

	lines := store.Attach(userID).Snapshot()
	if len(lines) != 1 || lines[0].Quantity != 50 {
		t.Fatalf("expected 50 staged, got %v", lines)
	}
}

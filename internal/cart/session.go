package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Line is one staged snack quantity inside a session.
type Line struct {
	SnackID  uuid.UUID
	Quantity int
}

// Session holds one user's staged quantities. Quantities are advisory
// until checkout: they are clamped against the stock observed at
// staging time, but only the ledger decides what actually commits.
type Session struct {
	mu    sync.Mutex
	lines map[uuid.UUID]int
	order []uuid.UUID
}

func newSession() *Session {
	return &Session{lines: make(map[uuid.UUID]int)}
}

// SetQuantity stages qty for the snack, clamped to [0, observedStock].
// A clamp is not an error; the effective quantity is returned. Setting
// zero removes the line.
func (s *Session) SetQuantity(snackID uuid.UUID, qty, observedStock int) int {
	if qty < 0 {
		qty = 0
	}
	if observedStock < 0 {
		observedStock = 0
	}
	if qty > observedStock {
		qty = observedStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(snackID, qty)
	return qty
}

// AddOne bumps the staged quantity by one, clamped to observedStock.
func (s *Session) AddOne(snackID uuid.UUID, observedStock int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty := s.lines[snackID] + 1
	if qty > observedStock {
		qty = observedStock
	}
	if qty < 0 {
		qty = 0
	}
	s.set(snackID, qty)
	return qty
}

// RemoveOne lowers the staged quantity by one; at zero the line is gone.
func (s *Session) RemoveOne(snackID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	qty := s.lines[snackID] - 1
	if qty < 0 {
		qty = 0
	}
	s.set(snackID, qty)
	return qty
}

// Snapshot returns the staged lines in insertion order.
func (s *Session) Snapshot() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, 0, len(s.order))
	for _, id := range s.order {
		lines = append(lines, Line{SnackID: id, Quantity: s.lines[id]})
	}
	return lines
}

// Clear drops every staged line.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = make(map[uuid.UUID]int)
	s.order = nil
}

// RemoveLines drops the listed snacks, keeping everything else staged.
func (s *Session) RemoveLines(snackIDs []uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range snackIDs {
		s.remove(id)
	}
}

func (s *Session) set(snackID uuid.UUID, qty int) {
	if qty == 0 {
		s.remove(snackID)
		return
	}
	if _, ok := s.lines[snackID]; !ok {
		s.order = append(s.order, snackID)
	}
	s.lines[snackID] = qty
}

func (s *Session) remove(snackID uuid.UUID) {
	if _, ok := s.lines[snackID]; !ok {
		return
	}
	delete(s.lines, snackID)
	for i, id := range s.order {
		if id == snackID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

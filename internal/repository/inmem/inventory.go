// Package inmem keeps the borrowing state in process memory. It backs the
// service when it runs without Postgres and gives tests a real store with
// the same contract as the SQL one.
package inmem

import (
	"context"
	"sync"

	"github.com/libtrack/borrowing-service/internal/errs"
	"github.com/libtrack/borrowing-service/internal/model"
	"github.com/libtrack/borrowing-service/internal/repository"
)

var _ repository.Inventory = (*InventoryStore)(nil)

// InventoryStore guards each book with its own lock, so borrows of different
// books do not contend. The outer RWMutex only protects the map itself.
type InventoryStore struct {
	mu    sync.RWMutex
	books map[string]*bookEntry
}

type bookEntry struct {
	mu  sync.Mutex
	inv model.BookInventory
}

func NewInventoryStore() *InventoryStore {
	return &InventoryStore{
		books: make(map[string]*bookEntry),
	}
}

func (s *InventoryStore) Allocate(_ context.Context, bookUid string) error {
	e, ok := s.entry(bookUid)
	if !ok {
		return errs.ErrBookNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inv.AvailableCopies <= 0 {
		return errs.ErrOutOfCopies
	}
	e.inv.AvailableCopies--
	return nil
}

func (s *InventoryStore) Release(_ context.Context, bookUid string) error {
	e, ok := s.entry(bookUid)
	if !ok {
		return errs.ErrBookNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.inv.AvailableCopies >= e.inv.TotalCopies {
		return errs.ErrInconsistentState
	}
	e.inv.AvailableCopies++
	return nil
}

func (s *InventoryStore) SetTotalCopies(_ context.Context, bookUid string, totalCopies int) (model.BookInventory, error) {
	s.mu.Lock()
	e, ok := s.books[bookUid]
	if !ok {
		e = &bookEntry{inv: model.BookInventory{
			BookUid:         bookUid,
			TotalCopies:     totalCopies,
			AvailableCopies: totalCopies,
		}}
		s.books[bookUid] = e
		s.mu.Unlock()
		return e.inv, nil
	}
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	outstanding := e.inv.TotalCopies - e.inv.AvailableCopies
	e.inv.TotalCopies = totalCopies
	e.inv.AvailableCopies = max(0, totalCopies-outstanding)
	return e.inv, nil
}

func (s *InventoryStore) InventoryByBook(_ context.Context, bookUid string) (model.BookInventory, error) {
	e, ok := s.entry(bookUid)
	if !ok {
		return model.BookInventory{}, errs.ErrBookNotFound
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inv, nil
}

func (s *InventoryStore) entry(bookUid string) (*bookEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.books[bookUid]
	return e, ok
}

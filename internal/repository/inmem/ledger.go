package inmem

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/libtrack/borrowing-service/internal/errs"
	"github.com/libtrack/borrowing-service/internal/model"
	"github.com/libtrack/borrowing-service/internal/repository"
)

var _ repository.Ledger = (*LedgerStore)(nil)

// LedgerStore is an append-style loan log. One mutex serializes writes; the
// active index enforces the single-ACTIVE-loan rule the same way the partial
// unique index does in Postgres.
type LedgerStore struct {
	mu       sync.RWMutex
	seq      int
	loans    map[string]*model.Loan
	active   map[activeKey]string
	byMember map[string][]string
}

type activeKey struct {
	bookUid  string
	memberID string
}

func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		loans:    make(map[string]*model.Loan),
		active:   make(map[activeKey]string),
		byMember: make(map[string][]string),
	}
}

func (s *LedgerStore) CreateLoan(_ context.Context, loan model.Loan) (model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := activeKey{bookUid: loan.BookUid, memberID: loan.MemberID}
	if _, ok := s.active[key]; ok {
		return model.Loan{}, errs.ErrAlreadyHolds
	}

	s.seq++
	stored := loan
	stored.ID = s.seq
	stored.LoanUid = uuid.NewString()
	stored.Status = model.StatusActive
	stored.ReturnedAt = nil

	s.loans[stored.LoanUid] = &stored
	s.active[key] = stored.LoanUid
	s.byMember[stored.MemberID] = append(s.byMember[stored.MemberID], stored.LoanUid)

	return stored, nil
}

func (s *LedgerStore) MarkReturned(_ context.Context, loanUid, memberID string, returnedAt time.Time) (model.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.loans[loanUid]
	if !ok {
		return model.Loan{}, errs.ErrLoanNotFound
	}
	if memberID != "" && l.MemberID != memberID {
		return model.Loan{}, errs.ErrLoanNotFound
	}
	if l.Status == model.StatusReturned {
		return *l, errs.ErrAlreadyReturned
	}

	l.Status = model.StatusReturned
	t := returnedAt
	l.ReturnedAt = &t
	delete(s.active, activeKey{bookUid: l.BookUid, memberID: l.MemberID})

	return *l, nil
}

func (s *LedgerStore) LoanByUid(_ context.Context, loanUid string) (model.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.loans[loanUid]
	if !ok {
		return model.Loan{}, errs.ErrLoanNotFound
	}
	return *l, nil
}

func (s *LedgerStore) HasActiveLoan(_ context.Context, bookUid, memberID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.active[activeKey{bookUid: bookUid, memberID: memberID}]
	return ok, nil
}

func (s *LedgerStore) CountActive(_ context.Context, memberID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, uid := range s.byMember[memberID] {
		if s.loans[uid].Status == model.StatusActive {
			count++
		}
	}
	return count, nil
}

func (s *LedgerStore) ActiveLoansFor(_ context.Context, memberID string) ([]model.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uids := s.byMember[memberID]
	items := make([]model.Loan, 0, len(uids))
	for i := len(uids) - 1; i >= 0; i-- {
		if l := s.loans[uids[i]]; l.Status == model.StatusActive {
			items = append(items, *l)
		}
	}
	return items, nil
}

// HistoryFor lists every loan of a member, newest first.
func (s *LedgerStore) HistoryFor(_ context.Context, memberID string) ([]model.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uids := s.byMember[memberID]
	items := make([]model.Loan, 0, len(uids))
	for i := len(uids) - 1; i >= 0; i-- {
		items = append(items, *s.loans[uids[i]])
	}
	return items, nil
}

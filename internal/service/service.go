// Package service implements the borrowing rules on top of the inventory
// counter and the loan ledger. All multi-step write sequences live here so
// that the stores themselves stay single-purpose.
package service

import (
	"context"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/libtrack/borrowing-service/config"
	"github.com/libtrack/borrowing-service/internal/errs"
	"github.com/libtrack/borrowing-service/internal/model"
	"github.com/libtrack/borrowing-service/internal/policy"
	"github.com/libtrack/borrowing-service/internal/repository"
	"github.com/libtrack/borrowing-service/pkg/kafka"
)

type Service struct {
	log       *zap.Logger
	ledger    repository.Ledger
	inventory repository.Inventory
	member    MemberService
	catalog   CatalogService
	publisher Publisher
	cfg       config.Borrowing

	now func() time.Time
}

func NewService(log *zap.Logger, ledger repository.Ledger, inventory repository.Inventory,
	memberSvc MemberService, catalogSvc CatalogService, publisher Publisher, cfg config.Borrowing) *Service {
	return &Service{
		log:       log.Named("borrowing"),
		ledger:    ledger,
		inventory: inventory,
		member:    memberSvc,
		catalog:   catalogSvc,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Borrow runs the borrow sequence: validate the member and the book, apply
// the quota and duplicate-hold gates, then take a copy and write the loan.
// The copy is taken before the ledger write; if that write fails the copy is
// released again, so a failed borrow never leaks inventory.
func (s *Service) Borrow(ctx context.Context, req model.CreateLoanRequest) (model.CreateLoanResponse, error) {
	var book model.Book

	gg, ctxGG := errgroup.WithContext(ctx)
	gg.Go(func() error {
		ok, err := s.member.IsValidMember(ctxGG, req.MemberID)
		if err != nil {
			return err
		}
		if !ok {
			return errs.ErrMemberInvalid
		}
		return nil
	})
	gg.Go(func() error {
		b, err := s.catalog.GetBook(ctxGG, req.BookUid)
		if err != nil {
			return err
		}
		book = b
		return nil
	})
	if err := gg.Wait(); err != nil {
		return model.CreateLoanResponse{}, storeErr(err)
	}

	active, err := s.ledger.CountActive(ctx, req.MemberID)
	if err != nil {
		return model.CreateLoanResponse{}, storeErr(err)
	}
	if active >= s.cfg.MaxActiveLoans {
		return model.CreateLoanResponse{}, errs.ErrQuotaExceeded
	}

	holds, err := s.ledger.HasActiveLoan(ctx, req.BookUid, req.MemberID)
	if err != nil {
		return model.CreateLoanResponse{}, storeErr(err)
	}
	if holds {
		return model.CreateLoanResponse{}, errs.ErrAlreadyHolds
	}

	// From here on a vanished caller must not strand a copy: allocation,
	// ledger write and any compensation run to completion even when ctx is
	// already canceled.
	opCtx := context.WithoutCancel(ctx)

	if err := s.inventory.Allocate(opCtx, req.BookUid); err != nil {
		return model.CreateLoanResponse{}, storeErr(err)
	}

	now := s.now()
	created, err := s.ledger.CreateLoan(opCtx, model.Loan{
		BookUid:    req.BookUid,
		MemberID:   req.MemberID,
		BorrowedAt: now,
		DueAt:      policy.DueDate(now, s.cfg.LoanTermDays),
	})
	if err != nil {
		if relErr := s.inventory.Release(opCtx, req.BookUid); relErr != nil {
			s.log.Error("compensating release failed",
				zap.String("bookUid", req.BookUid), zap.Error(relErr))
			return model.CreateLoanResponse{}, pkgerrors.WithMessage(errs.ErrInconsistentState, "compensating release failed")
		}
		return model.CreateLoanResponse{}, storeErr(err)
	}

	s.publish(kafka.LoanEvent{
		EventType: kafka.LoanEventBorrowed,
		LoanUid:   created.LoanUid,
		BookUid:   created.BookUid,
		MemberID:  created.MemberID,
		At:        now,
	})

	return model.CreateLoanResponse{Loan: created, Book: book}, nil
}

// Return marks the loan returned and puts the copy back on the shelf.
// Returning an already-returned loan is benign: the loan comes back together
// with ErrAlreadyReturned and no second release happens.
func (s *Service) Return(ctx context.Context, memberID, loanUid string) (model.Loan, error) {
	scope := ""
	if s.cfg.ReturnRestrictedToBorrower {
		scope = memberID
	}

	opCtx := context.WithoutCancel(ctx)

	returned, err := s.ledger.MarkReturned(opCtx, loanUid, scope, s.now())
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyReturned) {
			return returned, err
		}
		return model.Loan{}, storeErr(err)
	}

	if relErr := s.inventory.Release(opCtx, returned.BookUid); relErr != nil {
		s.log.Error("release after return failed",
			zap.String("bookUid", returned.BookUid), zap.String("loanUid", loanUid), zap.Error(relErr))
		return model.Loan{}, pkgerrors.WithMessage(errs.ErrInconsistentState, "release after return failed")
	}

	s.publish(kafka.LoanEvent{
		EventType: kafka.LoanEventReturned,
		LoanUid:   returned.LoanUid,
		BookUid:   returned.BookUid,
		MemberID:  returned.MemberID,
		At:        s.now(),
	})

	return returned, nil
}

// History lists a member's loans newest first, with the overdue flag freshly
// derived. With activeOnly only open loans are listed.
func (s *Service) History(ctx context.Context, memberID string, activeOnly bool) ([]model.Loan, error) {
	var (
		loans []model.Loan
		err   error
	)
	if activeOnly {
		loans, err = s.ledger.ActiveLoansFor(ctx, memberID)
	} else {
		loans, err = s.ledger.HistoryFor(ctx, memberID)
	}
	if err != nil {
		return nil, storeErr(err)
	}

	now := s.now()
	for i := range loans {
		policy.Decorate(&loans[i], now)
	}
	return loans, nil
}

// Loan fetches a single loan. Members only see their own: asking for someone
// else's loan behaves exactly like asking for one that does not exist.
func (s *Service) Loan(ctx context.Context, memberID, loanUid string) (model.Loan, error) {
	loan, err := s.ledger.LoanByUid(ctx, loanUid)
	if err != nil {
		return model.Loan{}, storeErr(err)
	}
	if loan.MemberID != memberID {
		return model.Loan{}, errs.ErrLoanNotFound
	}
	policy.Decorate(&loan, s.now())
	return loan, nil
}

func (s *Service) SetTotalCopies(ctx context.Context, req model.SetInventoryRequest) (model.BookInventory, error) {
	inv, err := s.inventory.SetTotalCopies(ctx, req.BookUid, req.TotalCopies)
	if err != nil {
		return model.BookInventory{}, storeErr(err)
	}
	s.log.Info("inventory updated",
		zap.String("bookUid", inv.BookUid),
		zap.Int("totalCopies", inv.TotalCopies),
		zap.Int("availableCopies", inv.AvailableCopies))
	return inv, nil
}

func (s *Service) Inventory(ctx context.Context, bookUid string) (model.BookInventory, error) {
	inv, err := s.inventory.InventoryByBook(ctx, bookUid)
	if err != nil {
		return model.BookInventory{}, storeErr(err)
	}
	return inv, nil
}

func (s *Service) publish(event kafka.LoanEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLoanEvent(event); err != nil {
		s.log.Warn("publish loan event", zap.String("loanUid", event.LoanUid), zap.Error(err))
	}
}

// storeErr keeps known borrowing outcomes as they are and folds everything
// else (driver errors, timeouts, canceled contexts) into ErrStoreUnavailable
// with the original text preserved.
func storeErr(err error) error {
	if err == nil || errs.IsKind(err) {
		return err
	}
	return pkgerrors.WithMessage(errs.ErrStoreUnavailable, err.Error())
}

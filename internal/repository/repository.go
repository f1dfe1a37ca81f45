package repository

//go:generate mockgen -source=repository.go -destination=mocks/mock.go

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/libtrack/borrowing-service/internal/model"
)

// Inventory is the per-book copy counter. Allocate and Release are atomic:
// concurrent callers never drive available_copies below zero or above
// total_copies.
type Inventory interface {
	Allocate(ctx context.Context, bookUid string) error
	Release(ctx context.Context, bookUid string) error
	SetTotalCopies(ctx context.Context, bookUid string, totalCopies int) (model.BookInventory, error)
	InventoryByBook(ctx context.Context, bookUid string) (model.BookInventory, error)
}

// Ledger records loans. Rows are never deleted; a return flips the status of
// the matching ACTIVE row exactly once.
type Ledger interface {
	CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error)
	MarkReturned(ctx context.Context, loanUid, memberID string, returnedAt time.Time) (model.Loan, error)
	LoanByUid(ctx context.Context, loanUid string) (model.Loan, error)
	HasActiveLoan(ctx context.Context, bookUid, memberID string) (bool, error)
	CountActive(ctx context.Context, memberID string) (int, error)
	ActiveLoansFor(ctx context.Context, memberID string) ([]model.Loan, error)
	HistoryFor(ctx context.Context, memberID string) ([]model.Loan, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	loanTableName      = `loan`
	inventoryTableName = `book_inventory`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var loanColumns = []string{"id", "loan_uid", "book_uid", "member_id", "status", "borrowed_at", "due_at", "returned_at"}

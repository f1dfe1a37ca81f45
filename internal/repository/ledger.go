package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/libtrack/borrowing-service/internal/errs"
	"github.com/libtrack/borrowing-service/internal/model"
)

func (r *repository) CreateLoan(ctx context.Context, loan model.Loan) (model.Loan, error) {
	q, args, err := qb.Insert(loanTableName).
		Columns("loan_uid", "book_uid", "member_id", "status", "borrowed_at", "due_at").
		Values(uuid.New(), loan.BookUid, loan.MemberID, model.StatusActive, loan.BorrowedAt, loan.DueAt).
		Suffix("returning *").
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var created model.Loan
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		// the partial unique index backstops the duplicate-hold check done
		// before allocation
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.Loan{}, errs.ErrAlreadyHolds
		}
		r.log.Error("CreateLoan", zap.String("q", q), zap.Any("args", args))
		return model.Loan{}, err
	}
	return created, nil
}

// MarkReturned flips the matching ACTIVE loan to RETURNED. With a non-empty
// memberID only that member's loan qualifies. When no ACTIVE row matches, the
// ledger is consulted once more to tell "already returned" apart from "no
// such loan": the first is benign for callers, the second is not.
func (r *repository) MarkReturned(ctx context.Context, loanUid, memberID string, returnedAt time.Time) (model.Loan, error) {
	b := qb.Update(loanTableName).
		Set("status", model.StatusReturned).
		Set("returned_at", returnedAt).
		Where(sq.Eq{"loan_uid": loanUid, "status": model.StatusActive})
	if memberID != "" {
		b = b.Where(sq.Eq{"member_id": memberID})
	}
	q, args, err := b.Suffix("returning " + loanColumnList()).ToSql()
	if err != nil {
		return model.Loan{}, err
	}

	var returned model.Loan
	err = r.db.GetContext(ctx, &returned, q, args...)
	if err == nil {
		return returned, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		r.log.Error("MarkReturned", zap.String("q", q), zap.Any("args", args))
		return model.Loan{}, err
	}

	existing, lerr := r.LoanByUid(ctx, loanUid)
	if lerr != nil {
		return model.Loan{}, lerr
	}
	if memberID != "" && existing.MemberID != memberID {
		return model.Loan{}, errs.ErrLoanNotFound
	}
	if existing.Status == model.StatusReturned {
		return existing, errs.ErrAlreadyReturned
	}
	return model.Loan{}, errs.ErrLoanNotFound
}

func (r *repository) LoanByUid(ctx context.Context, loanUid string) (model.Loan, error) {
	q, args, err := qb.Select(loanColumns...).
		From(loanTableName).
		Where(sq.Eq{"loan_uid": loanUid}).
		ToSql()
	if err != nil {
		return model.Loan{}, err
	}
	var loan model.Loan
	if err := r.db.GetContext(ctx, &loan, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Loan{}, errs.ErrLoanNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}

func (r *repository) HasActiveLoan(ctx context.Context, bookUid, memberID string) (bool, error) {
	q := fmt.Sprintf(`select exists(
	select 1 from %s
	where book_uid = $1 and member_id = $2 and status = 'ACTIVE')`, loanTableName)

	var holds bool
	if err := r.db.QueryRowContext(ctx, q, bookUid, memberID).Scan(&holds); err != nil {
		return false, err
	}
	return holds, nil
}

func (r *repository) CountActive(ctx context.Context, memberID string) (int, error) {
	q := fmt.Sprintf(`select count(*) from %s
	where member_id = $1 and status = 'ACTIVE'`, loanTableName)

	var count int
	if err := r.db.QueryRowContext(ctx, q, memberID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) ActiveLoansFor(ctx context.Context, memberID string) ([]model.Loan, error) {
	q, args, err := qb.Select(loanColumns...).
		From(loanTableName).
		Where(sq.Eq{"member_id": memberID, "status": model.StatusActive}).
		OrderBy("borrowed_at desc", "id desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Loan
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

// HistoryFor returns every loan of a member, newest first.
func (r *repository) HistoryFor(ctx context.Context, memberID string) ([]model.Loan, error) {
	q, args, err := qb.Select(loanColumns...).
		From(loanTableName).
		Where(sq.Eq{"member_id": memberID}).
		OrderBy("borrowed_at desc", "id desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	var items []model.Loan
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func loanColumnList() string {
	return strings.Join(loanColumns, ", ")
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"github.com/libtrack/borrowing-service/internal/errs"
	"github.com/libtrack/borrowing-service/internal/model"
)

// Allocate takes one copy off the shelf. The guard in the where clause is
// what keeps concurrent borrows from overbooking: the row update either sees
// a positive available_copies or touches nothing.
func (r *repository) Allocate(ctx context.Context, bookUid string) error {
	q := fmt.Sprintf(`update %s
	set available_copies = available_copies - 1
	where book_uid = $1 and available_copies > 0`, inventoryTableName)

	res, err := r.db.ExecContext(ctx, q, bookUid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		exists, err := r.bookExists(ctx, bookUid)
		if err != nil {
			return err
		}
		if !exists {
			return errs.ErrBookNotFound
		}
		return errs.ErrOutOfCopies
	}
	return nil
}

// Release puts one copy back. A release that would push the counter past
// total_copies means the ledger and the counter disagree; that is reported,
// never papered over by clamping.
func (r *repository) Release(ctx context.Context, bookUid string) error {
	q := fmt.Sprintf(`update %s
	set available_copies = available_copies + 1
	where book_uid = $1 and available_copies < total_copies`, inventoryTableName)

	res, err := r.db.ExecContext(ctx, q, bookUid)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		exists, err := r.bookExists(ctx, bookUid)
		if err != nil {
			return err
		}
		if !exists {
			return errs.ErrBookNotFound
		}
		r.log.Error("release overflow", zap.String("bookUid", bookUid))
		return errs.ErrInconsistentState
	}
	return nil
}

// SetTotalCopies upserts the copy count for a book. Copies currently out on
// loan stay out: the new available count is the new total minus outstanding
// loans, floored at zero.
func (r *repository) SetTotalCopies(ctx context.Context, bookUid string, totalCopies int) (model.BookInventory, error) {
	q := fmt.Sprintf(`insert into %[1]s (book_uid, total_copies, available_copies)
	values ($1, $2, $2)
	on conflict (book_uid) do update
	set total_copies     = excluded.total_copies,
	    available_copies = greatest(0, excluded.total_copies - (%[1]s.total_copies - %[1]s.available_copies))
	returning book_uid, total_copies, available_copies`, inventoryTableName)

	var inv model.BookInventory
	if err := r.db.GetContext(ctx, &inv, q, bookUid, totalCopies); err != nil {
		r.log.Error("SetTotalCopies", zap.String("q", q), zap.String("bookUid", bookUid), zap.Int("totalCopies", totalCopies))
		return model.BookInventory{}, err
	}
	return inv, nil
}

func (r *repository) InventoryByBook(ctx context.Context, bookUid string) (model.BookInventory, error) {
	q, args, err := qb.Select("book_uid", "total_copies", "available_copies").
		From(inventoryTableName).
		Where(sq.Eq{"book_uid": bookUid}).
		ToSql()
	if err != nil {
		return model.BookInventory{}, err
	}
	var inv model.BookInventory
	if err := r.db.GetContext(ctx, &inv, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.BookInventory{}, errs.ErrBookNotFound
		}
		return model.BookInventory{}, err
	}
	return inv, nil
}

func (r *repository) bookExists(ctx context.Context, bookUid string) (bool, error) {
	q := fmt.Sprintf(`select exists(select 1 from %s where book_uid = $1)`, inventoryTableName)

	var exists bool
	if err := r.db.QueryRowContext(ctx, q, bookUid).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

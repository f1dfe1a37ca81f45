// Package policy decides due dates and overdue state for loans. Everything
// here is a pure function of its arguments: callers pass the clock in, so the
// same inputs always give the same answer.
package policy

import (
	"time"

	"github.com/libtrack/borrowing-service/internal/model"
)

// DueDate returns the moment a loan taken at borrowedAt must be returned by.
// termDays below one day is treated as one day.
func DueDate(borrowedAt time.Time, termDays int) time.Time {
	if termDays < 1 {
		termDays = 1
	}
	return borrowedAt.AddDate(0, 0, termDays)
}

// IsOverdue reports whether an active loan has passed its due date at the
// given instant. Returned loans are never overdue, whatever their dates say.
func IsOverdue(status model.Status, dueAt, now time.Time) bool {
	return status == model.StatusActive && now.After(dueAt)
}

// Decorate recomputes the derived Overdue flag on a loan.
func Decorate(loan *model.Loan, now time.Time) {
	loan.Overdue = IsOverdue(loan.Status, loan.DueAt, now)
}

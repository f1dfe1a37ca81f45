package errs

import (
	"errors"
)

// Borrowing outcomes that callers branch on. Handlers map each of these to a
// single HTTP status, so wrap them instead of inventing new sentinels.
var (
	ErrBookNotFound      = errors.New("book not found")
	ErrMemberInvalid     = errors.New("member is not allowed to borrow")
	ErrOutOfCopies       = errors.New("no available copies")
	ErrQuotaExceeded     = errors.New("active loan quota exceeded")
	ErrAlreadyHolds      = errors.New("member already holds an active loan for this book")
	ErrLoanNotFound      = errors.New("loan not found")
	ErrAlreadyReturned   = errors.New("loan is already returned")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrInconsistentState = errors.New("inventory and ledger diverged")
)

var kinds = []error{
	ErrBookNotFound,
	ErrMemberInvalid,
	ErrOutOfCopies,
	ErrQuotaExceeded,
	ErrAlreadyHolds,
	ErrLoanNotFound,
	ErrAlreadyReturned,
	ErrStoreUnavailable,
	ErrInconsistentState,
}

// IsKind reports whether err already carries one of the borrowing sentinels.
func IsKind(err error) bool {
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

type ValidationErrorResponse struct {
	Message string `json:"message"`
	Errors  struct {
		AdditionalProperties string `json:"additionalProperties"`
	} `json:"errors"`
}

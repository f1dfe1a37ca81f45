package model

import (
	"time"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusReturned Status = "RETURNED"
)

// Loan is a single row of the append-style ledger. Overdue is never stored:
// it is recomputed from DueAt on every read, so a stale row can not pin an
// outdated flag.
type Loan struct {
	ID         int        `json:"-" db:"id"`
	LoanUid    string     `json:"loanUid" db:"loan_uid"`
	BookUid    string     `json:"bookUid" db:"book_uid"`
	MemberID   string     `json:"memberId" db:"member_id"`
	Status     Status     `json:"status" db:"status"`
	BorrowedAt time.Time  `json:"borrowedAt" db:"borrowed_at"`
	DueAt      time.Time  `json:"dueAt" db:"due_at"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty" db:"returned_at"`
	Overdue    bool       `json:"overdue" db:"-"`
}

type BookInventory struct {
	BookUid         string `json:"bookUid" db:"book_uid"`
	TotalCopies     int    `json:"totalCopies" db:"total_copies"`
	AvailableCopies int    `json:"availableCopies" db:"available_copies"`
}

type Book struct {
	BookUid string `json:"bookUid"`
	Name    string `json:"name"`
	Author  string `json:"author"`
	Genre   string `json:"genre"`
}

const (
	MemberStatusActive  = "ACTIVE"
	MemberStatusBlocked = "BLOCKED"
)

type Member struct {
	MemberID string `json:"memberId"`
	Status   string `json:"status"`
}

type CreateLoanRequest struct {
	BookUid  string `json:"bookUid" validate:"required"`
	MemberID string `json:"-" validate:"required"`
}

type CreateLoanResponse struct {
	Loan
	Book Book `json:"book"`
}

type SetInventoryRequest struct {
	BookUid     string `json:"bookUid" validate:"required"`
	TotalCopies int    `json:"totalCopies" validate:"min=0"`
}

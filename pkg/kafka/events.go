package kafka

import (
	"time"
)

const (
	LoanEventBorrowed = "LOAN_BORROWED"
	LoanEventReturned = "LOAN_RETURNED"
)

// LoanEvent is published to LoanEventsTopic after a borrow or return has been
// committed. It is informational: consumers must not treat it as a command.
type LoanEvent struct {
	EventType string    `json:"eventType"`
	LoanUid   string    `json:"loanUid"`
	BookUid   string    `json:"bookUid"`
	MemberID  string    `json:"memberId"`
	At        time.Time `json:"at"`
}

// InventorySync arrives on InventorySyncTopic whenever the catalog pipeline
// changes the number of physical copies of a book.
type InventorySync struct {
	BookUid     string `json:"bookUid"`
	TotalCopies int    `json:"totalCopies"`
}

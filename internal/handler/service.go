package handler

import (
	"context"

	"github.com/libtrack/borrowing-service/internal/model"
	"github.com/libtrack/borrowing-service/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var _ BorrowingService = (*service.Service)(nil)

type BorrowingService interface {
	Borrow(ctx context.Context, req model.CreateLoanRequest) (model.CreateLoanResponse, error)
	Return(ctx context.Context, memberID, loanUid string) (model.Loan, error)
	History(ctx context.Context, memberID string, activeOnly bool) ([]model.Loan, error)
	Loan(ctx context.Context, memberID, loanUid string) (model.Loan, error)
	SetTotalCopies(ctx context.Context, req model.SetInventoryRequest) (model.BookInventory, error)
	Inventory(ctx context.Context, bookUid string) (model.BookInventory, error)
}

package service

import (
	"context"

	"github.com/libtrack/borrowing-service/internal/model"
	"github.com/libtrack/borrowing-service/internal/service/catalog"
	"github.com/libtrack/borrowing-service/internal/service/member"
	"github.com/libtrack/borrowing-service/pkg/kafka"
)

//go:generate go run github.com/golang/mock/mockgen -source=deps.go -destination=mocks/mock.go

var (
	_ MemberService  = (*member.Service)(nil)
	_ CatalogService = (*catalog.Service)(nil)
)

type MemberService interface {
	IsValidMember(ctx context.Context, memberID string) (bool, error)
}

type CatalogService interface {
	GetBook(ctx context.Context, bookUid string) (model.Book, error)
}

// Publisher pushes loan facts to the event stream. Publishing is best effort:
// a failed publish is logged, never surfaced to the borrower.
type Publisher interface {
	PublishLoanEvent(event kafka.LoanEvent) error
}

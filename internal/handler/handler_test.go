package handler_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/libtrack/borrowing-service/internal/errs"
	"github.com/libtrack/borrowing-service/internal/handler"
	"github.com/libtrack/borrowing-service/internal/model"
	"github.com/libtrack/borrowing-service/pkg/auth"
	md "github.com/libtrack/borrowing-service/pkg/middleware"
	"github.com/libtrack/borrowing-service/pkg/validate"

	service_mocks "github.com/libtrack/borrowing-service/internal/handler/mocks"
)

const (
	testMemberID = "9d2f3b1a-7c64-4e0a-8f5b-2a1d6c9e4b33"
	testBookUid  = "f7cdc58f-2caf-4b15-9727-f89dcc629b27"
	testLoanUid  = "84a6f1d2-3b5c-47e8-9a0d-1c2e3f4a5b6d"
	testLoanUid2 = "1f6f37bd-9e80-4b2c-8a3d-5c4e6f7a8b9c"
)

var (
	testBorrowedAt = time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)
	testDueAt      = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	testReturnedAt = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
)

func TestHandler_CreateLoan(t *testing.T) {
	t.Parallel()
	type input struct {
		body     string
		memberID string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBorrowingService, inp input)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), model.CreateLoanRequest{BookUid: testBookUid, MemberID: inp.memberID}).
					Return(model.CreateLoanResponse{
						Loan: model.Loan{
							LoanUid:    testLoanUid,
							BookUid:    testBookUid,
							MemberID:   inp.memberID,
							Status:     model.StatusActive,
							BorrowedAt: testBorrowedAt,
							DueAt:      testDueAt,
						},
						Book: model.Book{
							BookUid: testBookUid,
							Name:    "Distributed Systems",
							Author:  "Maarten van Steen",
							Genre:   "Computing",
						},
					}, nil)
			},
			input: input{
				body:     fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusCreated,
				expectedBody: `{"loanUid":"84a6f1d2-3b5c-47e8-9a0d-1c2e3f4a5b6d","bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","memberId":"9d2f3b1a-7c64-4e0a-8f5b-2a1d6c9e4b33","status":"ACTIVE","borrowedAt":"2024-03-01T10:00:00Z","dueAt":"2024-03-15T10:00:00Z","overdue":false,"book":{"bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","name":"Distributed Systems","author":"Maarten van Steen","genre":"Computing"}}`,
			},
			wantErr: false,
		},
		{
			name:         "err. bookUid required",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {},
			input: input{
				body:     `{}`,
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'CreateLoanRequest.BookUid' Error:Field validation for 'BookUid' failed on the 'required' tag"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. no member id",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {},
			input: input{
				body:     fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
				memberID: "",
			},
			response: response{
				expectedCode: http.StatusUnauthorized,
				expectedBody: `{"message":"member id is empty"}`,
			},
			wantErr: true,
		},
		{
			name: "err. book not found",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), model.CreateLoanRequest{BookUid: testBookUid, MemberID: inp.memberID}).
					Return(model.CreateLoanResponse{}, errs.ErrBookNotFound)
			},
			input: input{
				body:     fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"book not found"}`,
			},
			wantErr: true,
		},
		{
			name: "err. member blocked",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), model.CreateLoanRequest{BookUid: testBookUid, MemberID: inp.memberID}).
					Return(model.CreateLoanResponse{}, errs.ErrMemberInvalid)
			},
			input: input{
				body:     fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"member is not allowed to borrow"}`,
			},
			wantErr: true,
		},
		{
			name: "err. out of copies",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), model.CreateLoanRequest{BookUid: testBookUid, MemberID: inp.memberID}).
					Return(model.CreateLoanResponse{}, errs.ErrOutOfCopies)
			},
			input: input{
				body:     fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"no available copies"}`,
			},
			wantErr: true,
		},
		{
			name: "err. quota exceeded",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), model.CreateLoanRequest{BookUid: testBookUid, MemberID: inp.memberID}).
					Return(model.CreateLoanResponse{}, errs.ErrQuotaExceeded)
			},
			input: input{
				body:     fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"active loan quota exceeded"}`,
			},
			wantErr: true,
		},
		{
			name: "err. already holds",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), model.CreateLoanRequest{BookUid: testBookUid, MemberID: inp.memberID}).
					Return(model.CreateLoanResponse{}, errs.ErrAlreadyHolds)
			},
			input: input{
				body:     fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusConflict,
				expectedBody: `{"message":"member already holds an active loan for this book"}`,
			},
			wantErr: true,
		},
		{
			name: "err. store unavailable",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Borrow(gomock.Any(), model.CreateLoanRequest{BookUid: testBookUid, MemberID: inp.memberID}).
					Return(model.CreateLoanResponse{}, errs.ErrStoreUnavailable)
			},
			input: input{
				body:     fmt.Sprintf(`{"bookUid":%q}`, testBookUid),
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusServiceUnavailable,
				expectedBody: `{"message":"store unavailable"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBorrowingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/api/v1/loans", h.CreateLoan, md.AuthContext)

			r := httptest.NewRequest(http.MethodPost, "/api/v1/loans", strings.NewReader(tt.input.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			if tt.input.memberID != "" {
				r.Header.Set(auth.XMemberIDHeader, tt.input.memberID)
			}
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ReturnLoan(t *testing.T) {
	t.Parallel()
	type input struct {
		loanUid  string
		memberID string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBorrowingService, inp input)

	returnedLoan := model.Loan{
		LoanUid:    testLoanUid,
		BookUid:    testBookUid,
		MemberID:   testMemberID,
		Status:     model.StatusReturned,
		BorrowedAt: testBorrowedAt,
		DueAt:      testDueAt,
		ReturnedAt: &testReturnedAt,
	}
	returnedLoanBody := `{"loanUid":"84a6f1d2-3b5c-47e8-9a0d-1c2e3f4a5b6d","bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","memberId":"9d2f3b1a-7c64-4e0a-8f5b-2a1d6c9e4b33","status":"RETURNED","borrowedAt":"2024-03-01T10:00:00Z","dueAt":"2024-03-15T10:00:00Z","returnedAt":"2024-03-10T12:00:00Z","overdue":false}`

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Return(gomock.Any(), inp.memberID, inp.loanUid).
					Return(returnedLoan, nil)
			},
			input: input{
				loanUid:  testLoanUid,
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: returnedLoanBody,
			},
			wantErr: false,
		},
		{
			name: "ok. repeated return",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Return(gomock.Any(), inp.memberID, inp.loanUid).
					Return(returnedLoan, errs.ErrAlreadyReturned)
			},
			input: input{
				loanUid:  testLoanUid,
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: returnedLoanBody,
			},
			wantErr: false,
		},
		{
			name:         "err. loanUid not a uuid",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {},
			input: input{
				loanUid:  "not-a-uuid",
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"loanUid must be a uuid"}`,
			},
			wantErr: true,
		},
		{
			name: "err. loan not found",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Return(gomock.Any(), inp.memberID, inp.loanUid).
					Return(model.Loan{}, errs.ErrLoanNotFound)
			},
			input: input{
				loanUid:  testLoanUid,
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"loan not found"}`,
			},
			wantErr: true,
		},
		{
			name: "err. stores diverged",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Return(gomock.Any(), inp.memberID, inp.loanUid).
					Return(model.Loan{}, errs.ErrInconsistentState)
			},
			input: input{
				loanUid:  testLoanUid,
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"inventory and ledger diverged"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBorrowingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/api/v1/loans/:loanUid/return", h.ReturnLoan, md.AuthContext)

			r := httptest.NewRequest(
				http.MethodPost, fmt.Sprintf("/api/v1/loans/%s/return", tt.input.loanUid), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(auth.XMemberIDHeader, tt.input.memberID)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetLoans(t *testing.T) {
	t.Parallel()
	type input struct {
		query    string
		memberID string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBorrowingService, inp input)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok. active only",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					History(gomock.Any(), inp.memberID, true).
					Return([]model.Loan{
						{
							LoanUid:    testLoanUid,
							BookUid:    testBookUid,
							MemberID:   inp.memberID,
							Status:     model.StatusActive,
							BorrowedAt: testBorrowedAt,
							DueAt:      testDueAt,
							Overdue:    true,
						},
					}, nil)
			},
			input: input{
				query:    "?active=true",
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[{"loanUid":"84a6f1d2-3b5c-47e8-9a0d-1c2e3f4a5b6d","bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","memberId":"9d2f3b1a-7c64-4e0a-8f5b-2a1d6c9e4b33","status":"ACTIVE","borrowedAt":"2024-03-01T10:00:00Z","dueAt":"2024-03-15T10:00:00Z","overdue":true}]`,
			},
			wantErr: false,
		},
		{
			name: "ok. full history newest first",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					History(gomock.Any(), inp.memberID, false).
					Return([]model.Loan{
						{
							LoanUid:    testLoanUid,
							BookUid:    testBookUid,
							MemberID:   inp.memberID,
							Status:     model.StatusReturned,
							BorrowedAt: testBorrowedAt,
							DueAt:      testDueAt,
							ReturnedAt: &testReturnedAt,
						},
						{
							LoanUid:    testLoanUid2,
							BookUid:    testBookUid,
							MemberID:   inp.memberID,
							Status:     model.StatusActive,
							BorrowedAt: time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC),
							DueAt:      time.Date(2024, time.February, 15, 10, 0, 0, 0, time.UTC),
							Overdue:    true,
						},
					}, nil)
			},
			input: input{
				query:    "",
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `[{"loanUid":"84a6f1d2-3b5c-47e8-9a0d-1c2e3f4a5b6d","bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","memberId":"9d2f3b1a-7c64-4e0a-8f5b-2a1d6c9e4b33","status":"RETURNED","borrowedAt":"2024-03-01T10:00:00Z","dueAt":"2024-03-15T10:00:00Z","returnedAt":"2024-03-10T12:00:00Z","overdue":false},{"loanUid":"1f6f37bd-9e80-4b2c-8a3d-5c4e6f7a8b9c","bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","memberId":"9d2f3b1a-7c64-4e0a-8f5b-2a1d6c9e4b33","status":"ACTIVE","borrowedAt":"2024-02-01T10:00:00Z","dueAt":"2024-02-15T10:00:00Z","overdue":true}]`,
			},
			wantErr: false,
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					History(gomock.Any(), inp.memberID, false).
					Return(nil, errors.New("db internal"))
			},
			input: input{
				query:    "",
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				expectedBody: `{"message":"db internal"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBorrowingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/api/v1/loans", h.GetLoans, md.AuthContext)

			r := httptest.NewRequest(http.MethodGet, "/api/v1/loans"+tt.input.query, http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(auth.XMemberIDHeader, tt.input.memberID)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetLoan(t *testing.T) {
	t.Parallel()
	type input struct {
		loanUid  string
		memberID string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBorrowingService, inp input)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Loan(gomock.Any(), inp.memberID, inp.loanUid).
					Return(model.Loan{
						LoanUid:    testLoanUid,
						BookUid:    testBookUid,
						MemberID:   inp.memberID,
						Status:     model.StatusActive,
						BorrowedAt: testBorrowedAt,
						DueAt:      testDueAt,
					}, nil)
			},
			input: input{
				loanUid:  testLoanUid,
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"loanUid":"84a6f1d2-3b5c-47e8-9a0d-1c2e3f4a5b6d","bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","memberId":"9d2f3b1a-7c64-4e0a-8f5b-2a1d6c9e4b33","status":"ACTIVE","borrowedAt":"2024-03-01T10:00:00Z","dueAt":"2024-03-15T10:00:00Z","overdue":false}`,
			},
			wantErr: false,
		},
		{
			name: "err. someone else's loan stays hidden",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Loan(gomock.Any(), inp.memberID, inp.loanUid).
					Return(model.Loan{}, errs.ErrLoanNotFound)
			},
			input: input{
				loanUid:  testLoanUid,
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"loan not found"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. loanUid not a uuid",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {},
			input: input{
				loanUid:  "42",
				memberID: testMemberID,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"loanUid must be a uuid"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBorrowingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/api/v1/loans/:loanUid", h.GetLoan, md.AuthContext)

			r := httptest.NewRequest(
				http.MethodGet, fmt.Sprintf("/api/v1/loans/%s", tt.input.loanUid), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(auth.XMemberIDHeader, tt.input.memberID)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_SetInventory(t *testing.T) {
	t.Parallel()
	type input struct {
		body string
		role string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBorrowingService, inp input)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					SetTotalCopies(gomock.Any(), model.SetInventoryRequest{BookUid: testBookUid, TotalCopies: 5}).
					Return(model.BookInventory{
						BookUid:         testBookUid,
						TotalCopies:     5,
						AvailableCopies: 3,
					}, nil)
			},
			input: input{
				body: fmt.Sprintf(`{"bookUid":%q,"totalCopies":5}`, testBookUid),
				role: auth.RoleLibrarian,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","totalCopies":5,"availableCopies":3}`,
			},
			wantErr: false,
		},
		{
			name:         "err. member role forbidden",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {},
			input: input{
				body: fmt.Sprintf(`{"bookUid":%q,"totalCopies":5}`, testBookUid),
				role: auth.RoleMember,
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"librarian role required"}`,
			},
			wantErr: true,
		},
		{
			name:         "err. negative copies",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {},
			input: input{
				body: fmt.Sprintf(`{"bookUid":%q,"totalCopies":-1}`, testBookUid),
				role: auth.RoleLibrarian,
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'SetInventoryRequest.TotalCopies' Error:Field validation for 'TotalCopies' failed on the 'min' tag"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBorrowingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PATCH("/api/v1/inventory", h.SetInventory, md.AuthContext)

			r := httptest.NewRequest(http.MethodPatch, "/api/v1/inventory", strings.NewReader(tt.input.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(auth.XMemberIDHeader, testMemberID)
			r.Header.Set(auth.XMemberRoleHeader, tt.input.role)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_GetInventory(t *testing.T) {
	t.Parallel()
	type input struct {
		bookUid string
		role    string
	}
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockBorrowingService, inp input)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		input        input
		response     response
		wantErr      bool
	}{
		{
			name: "ok",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Inventory(gomock.Any(), inp.bookUid).
					Return(model.BookInventory{
						BookUid:         testBookUid,
						TotalCopies:     3,
						AvailableCopies: 0,
					}, nil)
			},
			input: input{
				bookUid: testBookUid,
				role:    auth.RoleLibrarian,
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"bookUid":"f7cdc58f-2caf-4b15-9727-f89dcc629b27","totalCopies":3,"availableCopies":0}`,
			},
			wantErr: false,
		},
		{
			name:         "err. member role forbidden",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {},
			input: input{
				bookUid: testBookUid,
				role:    auth.RoleMember,
			},
			response: response{
				expectedCode: http.StatusForbidden,
				expectedBody: `{"message":"librarian role required"}`,
			},
			wantErr: true,
		},
		{
			name: "err. book not tracked",
			mockBehavior: func(r *service_mocks.MockBorrowingService, inp input) {
				r.EXPECT().
					Inventory(gomock.Any(), inp.bookUid).
					Return(model.BookInventory{}, errs.ErrBookNotFound)
			},
			input: input{
				bookUid: testBookUid,
				role:    auth.RoleLibrarian,
			},
			response: response{
				expectedCode: http.StatusNotFound,
				expectedBody: `{"message":"book not found"}`,
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockBorrowingService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/api/v1/inventory/:bookUid", h.GetInventory, md.AuthContext)

			r := httptest.NewRequest(
				http.MethodGet, fmt.Sprintf("/api/v1/inventory/%s", tt.input.bookUid), http.NoBody)
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			r.Header.Set(auth.XMemberIDHeader, testMemberID)
			r.Header.Set(auth.XMemberRoleHeader, tt.input.role)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc, tt.input)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

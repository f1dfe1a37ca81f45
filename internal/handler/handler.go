package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/libtrack/borrowing-service/internal/errs"
	"github.com/libtrack/borrowing-service/internal/model"
	"github.com/libtrack/borrowing-service/pkg/auth"
	md "github.com/libtrack/borrowing-service/pkg/middleware"
	"github.com/libtrack/borrowing-service/pkg/validate"
	_ "github.com/libtrack/borrowing-service/swagger"
)

type Handler struct {
	borrowingSvc BorrowingService
	log          *zap.Logger
}

func New(borrowingSvc BorrowingService, log *zap.Logger) *Handler {
	return &Handler{
		borrowingSvc: borrowingSvc,
		log:          log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.AuthContext,
	)

	api.POST("/loans", h.CreateLoan)
	api.GET("/loans", h.GetLoans)
	api.GET("/loans/:loanUid", h.GetLoan)
	api.POST("/loans/:loanUid/return", h.ReturnLoan)

	api.PATCH("/inventory", h.SetInventory)
	api.GET("/inventory/:bookUid", h.GetInventory)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) CreateLoan(c echo.Context) error {
	var req model.CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ctx := c.Request().Context()
	req.MemberID = auth.MemberID(ctx)
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.borrowingSvc.Borrow(ctx, req)
	if err != nil {
		return borrowingError(err)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetLoans(c echo.Context) error {
	ctx := c.Request().Context()
	activeOnly, _ := strconv.ParseBool(c.QueryParam("active"))

	loans, err := h.borrowingSvc.History(ctx, auth.MemberID(ctx), activeOnly)
	if err != nil {
		return borrowingError(err)
	}
	return c.JSON(http.StatusOK, loans)
}

func (h *Handler) GetLoan(c echo.Context) error {
	ctx := c.Request().Context()
	loanUid := c.Param("loanUid")
	if _, err := uuid.Parse(loanUid); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid must be a uuid")
	}

	loan, err := h.borrowingSvc.Loan(ctx, auth.MemberID(ctx), loanUid)
	if err != nil {
		return borrowingError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) ReturnLoan(c echo.Context) error {
	ctx := c.Request().Context()
	loanUid := c.Param("loanUid")
	if _, err := uuid.Parse(loanUid); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "loanUid must be a uuid")
	}

	loan, err := h.borrowingSvc.Return(ctx, auth.MemberID(ctx), loanUid)
	if err != nil {
		// a repeated return answers exactly like the first one did
		if errors.Is(err, errs.ErrAlreadyReturned) {
			return c.JSON(http.StatusOK, loan)
		}
		return borrowingError(err)
	}
	return c.JSON(http.StatusOK, loan)
}

func (h *Handler) SetInventory(c echo.Context) error {
	ctx := c.Request().Context()
	if !auth.IsLibrarian(ctx) {
		return echo.NewHTTPError(http.StatusForbidden, "librarian role required")
	}
	var req model.SetInventoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inv, err := h.borrowingSvc.SetTotalCopies(ctx, req)
	if err != nil {
		return borrowingError(err)
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *Handler) GetInventory(c echo.Context) error {
	ctx := c.Request().Context()
	if !auth.IsLibrarian(ctx) {
		return echo.NewHTTPError(http.StatusForbidden, "librarian role required")
	}

	inv, err := h.borrowingSvc.Inventory(ctx, c.Param("bookUid"))
	if err != nil {
		return borrowingError(err)
	}
	return c.JSON(http.StatusOK, inv)
}

// borrowingError maps service outcomes onto HTTP statuses. Every sentinel in
// errs has exactly one home here.
func borrowingError(err error) error {
	switch {
	case errors.Is(err, errs.ErrBookNotFound), errors.Is(err, errs.ErrLoanNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrMemberInvalid):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrOutOfCopies),
		errors.Is(err, errs.ErrQuotaExceeded),
		errors.Is(err, errs.ErrAlreadyHolds):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrStoreUnavailable):
		return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

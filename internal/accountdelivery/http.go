// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/go-petr/mini-bank/internal/domain"
	"github.com/go-petr/mini-bank/internal/middleware"
	"github.com/go-petr/mini-bank/pkg/errorspkg"
	"github.com/go-petr/mini-bank/pkg/web"
)

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, owner, kind string, initialBalance decimal.Decimal) (domain.Account, error)
	Get(ctx context.Context, owner string, id int64) (domain.Account, error)
	List(ctx context.Context, owner string, pageSize, pageID int32) ([]domain.Account, error)
	History(ctx context.Context, owner string, id int64) ([]domain.Transaction, error)
	Deposit(ctx context.Context, owner string, id int64, amount decimal.Decimal) (domain.MovementResult, error)
	Withdraw(ctx context.Context, owner string, id int64, amount decimal.Decimal) (domain.MovementResult, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

func bindError(gctx *gin.Context, err error) {
	zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(ve)})
		return
	}

	gctx.JSON(http.StatusBadRequest, web.Error(err))
}

func serviceError(gctx *gin.Context, err error) {
	l := zerolog.Ctx(gctx.Request.Context())

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrUnknownAccountKind),
		errors.Is(err, domain.ErrNegativeInitialBalance):
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))
	case errors.Is(err, domain.ErrInvalidOwner):
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusUnauthorized, web.Error(err))
	case errors.Is(err, domain.ErrAccountNotFound):
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusNotFound, web.Error(err))
	default:
		l.Error().Err(err).Send()
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
	}
}

type accountData struct {
	Account domain.Account `json:"account"`
}

type createRequest struct {
	Kind           string `json:"kind" binding:"required,accountkind"`
	InitialBalance string `json:"initial_balance" binding:"omitempty,decimal"`
}

// Create handles http request to open an account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req createRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	initialBalance := decimal.Zero
	if req.InitialBalance != "" {
		initialBalance = decimal.RequireFromString(req.InitialBalance)
	}

	acc, err := h.service.Create(ctx, middleware.Username(gctx), req.Kind, initialBalance)
	if err != nil {
		serviceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{acc}})
}

type uriRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	acc, err := h.service.Get(ctx, middleware.Username(gctx), req.ID)
	if err != nil {
		serviceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{acc}})
}

type listRequest struct {
	PageID   int32 `form:"page_id" binding:"required,min=1"`
	PageSize int32 `form:"page_size" binding:"required,min=1,max=100"`
}

type accountsData struct {
	Accounts []domain.Account `json:"accounts"`
}

// List handles http request to list accounts.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		bindError(gctx, err)
		return
	}

	accounts, err := h.service.List(ctx, middleware.Username(gctx), req.PageSize, req.PageID)
	if err != nil {
		serviceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountsData{accounts}})
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

// History handles http request to list the account ledger.
func (h *Handler) History(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var req uriRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		bindError(gctx, err)
		return
	}

	txs, err := h.service.History(ctx, middleware.Username(gctx), req.ID)
	if err != nil {
		serviceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{txs}})
}

type movementRequest struct {
	Amount string `json:"amount" binding:"required,decimal"`
}

type movementData struct {
	Result domain.MovementResult `json:"result"`
}

type movementFunc func(ctx context.Context, owner string, id int64, amount decimal.Decimal) (domain.MovementResult, error)

func (h *Handler) move(gctx *gin.Context, fn movementFunc) {
	ctx := gctx.Request.Context()

	var uri uriRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		bindError(gctx, err)
		return
	}

	var req movementRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		bindError(gctx, err)
		return
	}

	result, err := fn(ctx, middleware.Username(gctx), uri.ID, decimal.RequireFromString(req.Amount))
	if err != nil {
		serviceError(gctx, err)
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: movementData{result}})
}

// Deposit handles http request to deposit money to an account.
func (h *Handler) Deposit(gctx *gin.Context) {
	h.move(gctx, h.service.Deposit)
}

// Withdraw handles http request to withdraw money from an account.
func (h *Handler) Withdraw(gctx *gin.Context) {
	h.move(gctx, h.service.Withdraw)
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/bankterm/terminal_backend/internal/core/domain"
	portssvc "github.com/bankterm/terminal_backend/internal/core/ports/services"
	"github.com/bankterm/terminal_backend/internal/dto"
	"github.com/bankterm/terminal_backend/internal/middleware"
)

// accountHandler handles account lookup and the withdrawal option flow.
type accountHandler struct {
	accountService     portssvc.AccountSvcFacade
	combinationService portssvc.CombinationSvcFacade
	operationService   portssvc.OperationSvcFacade
	userService        portssvc.UserSvcFacade
}

func newAccountHandler(
	as portssvc.AccountSvcFacade,
	cs portssvc.CombinationSvcFacade,
	os portssvc.OperationSvcFacade,
	us portssvc.UserSvcFacade,
) *accountHandler {
	return &accountHandler{
		accountService:     as,
		combinationService: cs,
		operationService:   os,
		userService:        us,
	}
}

// registerAccountRoutes registers all account-related routes.
func registerAccountRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newAccountHandler(services.Account, services.Combination, services.Operation, services.User)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/withdrawal-options", h.listWithdrawalOptions)
		accounts.POST("/:id/withdrawals", h.confirmWithdrawal)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req.OwnerUserID, *actor)
	if err != nil {
		respondError(c, logger, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccountsForUser(c.Request.Context(), *actor)
	if err != nil {
		respondError(c, logger, err, "Failed to list accounts")
		return
	}

	out := make([]dto.AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = dto.ToAccountResponse(&accounts[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), accountID, *actor)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listWithdrawalOptions returns the dispensable note combinations for the
// requested amount against the current inventory.
func (h *accountHandler) listWithdrawalOptions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}
	// Visibility check doubles as the ownership check.
	if _, err := h.accountService.GetAccountByID(c.Request.Context(), accountID, *actor); err != nil {
		respondError(c, logger, err, "Failed to retrieve account")
		return
	}

	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil || !amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'amount' must be a positive decimal"})
		return
	}

	descriptors, err := h.combinationService.ListOptions(c.Request.Context(), accountID, amount)
	if err != nil {
		respondError(c, logger, err, "Failed to compute withdrawal options")
		return
	}

	c.JSON(http.StatusOK, dto.ToWithdrawalOptionResponses(descriptors))
}

// confirmWithdrawal executes a withdrawal using a previously listed option id.
// The option's note counts become the withdrawal's note counts; the command
// re-validates balance and inventory at commit time.
func (h *accountHandler) confirmWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.ConfirmWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := currentUser(c, h.userService)
	if !ok {
		return
	}

	descriptor, err := h.combinationService.ResolveOption(c.Request.Context(), accountID, req.Amount, req.OptionID)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve withdrawal option")
		return
	}

	record, err := h.operationService.Run(c.Request.Context(), domain.OpWithdrawal, *actor, req.NotifyEmail, dto.OperationParams{
		AccountID:  accountID,
		Amount:     descriptor.Amount,
		NoteCounts: descriptor.Counts,
	})
	if err != nil {
		respondError(c, logger, err, "Failed to execute withdrawal")
		return
	}

	logger.Info("Withdrawal confirmed",
		slog.String("account_id", accountID),
		slog.String("option_id", req.OptionID),
		slog.String("record_id", record.RecordID))
	c.JSON(http.StatusCreated, dto.ToAuditRecordResponse(record))
}

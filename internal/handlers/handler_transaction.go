package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/finwallet/wallet_ledger/internal/core/domain"
	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/dto"
	"github.com/finwallet/wallet_ledger/internal/middleware"
	"github.com/finwallet/wallet_ledger/internal/utils/fixedpoint"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for direct ledger mutations
// and claims.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvcFacade
	claimService  portssvc.ClaimSvcFacade
	currencyCode  string
}

func registerTransactionRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, claim portssvc.ClaimSvcFacade, currencyCode string) {
	h := &transactionHandler{ledgerService: ledger, claimService: claim, currencyCode: currencyCode}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/:id", h.getTransaction)
		transactions.POST("/:id/claim", h.claimTransaction)
	}
}

// registerAdminTransactionRoutes mounts the direct ledger mutation. It can
// credit or debit any account, so it lives in the admin group; the gateway
// restricts that group to operators.
func registerAdminTransactionRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, currencyCode string) {
	h := &transactionHandler{ledgerService: ledger, currencyCode: currencyCode}
	rg.POST("/transactions", h.createTransaction)
}

// createTransaction applies a deposit, reward, mining credit, penalty or
// balance sync to the account named in the request. The account is
// created on first use; the caller identity is recorded as the actor.
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return
	}

	amount, err := fixedpoint.Parse(req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	txType := domain.TransactionType(req.Type)
	switch txType {
	case domain.TypeDeposit, domain.TypeReward, domain.TypeMining, domain.TypePenalty, domain.TypeBalanceSync:
	default:
		respondError(c, fmt.Errorf("type %q is not accepted on this endpoint: %w", req.Type, apperrors.ErrValidation))
		return
	}

	if _, err := h.ledgerService.EnsureAccount(c.Request.Context(), req.AccountID, h.currencyCode); err != nil {
		respondError(c, err)
		return
	}

	record, err := h.ledgerService.ApplyEffect(c.Request.Context(), req.AccountID, txType, amount, domain.Correlation{Details: req.Details}, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(record))
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	record, err := h.ledgerService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(record))
}

// claimTransaction re-credits a rejected or failed transaction to its
// owner, at most once no matter how many times it is called.
func (h *transactionHandler) claimTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return
	}

	credit, err := h.claimService.ClaimRejectedTransaction(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(credit))
}

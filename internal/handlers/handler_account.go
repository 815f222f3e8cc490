package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to wallet accounts.
type accountHandler struct {
	ledgerService         portssvc.LedgerSvcFacade
	reconciliationService portssvc.ReconciliationSvcFacade
}

func registerAccountRoutes(rg *gin.RouterGroup, ledger portssvc.LedgerSvcFacade, reconciliation portssvc.ReconciliationSvcFacade) {
	h := &accountHandler{ledgerService: ledger, reconciliationService: reconciliation}

	accounts := rg.Group("/accounts")
	{
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/verify", h.verifyAccount)
		accounts.GET("/:id/transactions", h.listTransactions)
	}
}

func (h *accountHandler) getAccount(c *gin.Context) {
	account, err := h.ledgerService.GetAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// verifyAccount replays the account's journal and reports whether the
// stored balance matches.
func (h *accountHandler) verifyAccount(c *gin.Context) {
	result, err := h.reconciliationService.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *accountHandler) listTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	records, next, err := h.ledgerService.ListTransactions(c.Request.Context(), c.Param("id"), limit, nextToken)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(records)),
		NextToken:    next,
	}
	for i := range records {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(&records[i]))
	}
	c.JSON(http.StatusOK, resp)
}

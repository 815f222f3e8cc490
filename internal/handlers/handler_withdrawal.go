package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/dto"
	"github.com/finwallet/wallet_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// withdrawalHandler handles HTTP requests for the withdrawal lifecycle.
type withdrawalHandler struct {
	withdrawalService portssvc.WithdrawalSvcFacade
}

func registerWithdrawalRoutes(rg *gin.RouterGroup, withdrawal portssvc.WithdrawalSvcFacade) {
	h := &withdrawalHandler{withdrawalService: withdrawal}

	withdrawals := rg.Group("/withdrawals")
	{
		withdrawals.POST("", h.createWithdrawal)
		withdrawals.GET("", h.listWithdrawals)
		withdrawals.GET("/:id", h.getWithdrawal)
		withdrawals.POST("/:id/cancel", h.cancelWithdrawal)
		// Operator actions. The gateway restricts these routes to
		// operator identities.
		withdrawals.POST("/:id/approve", h.approveWithdrawal)
		withdrawals.POST("/:id/reject", h.rejectWithdrawal)
		withdrawals.POST("/:id/processing", h.markProcessing)
	}
}

func (h *withdrawalHandler) createWithdrawal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateWithdrawal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return
	}

	w, err := h.withdrawalService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToWithdrawalResponse(w))
}

func (h *withdrawalHandler) listWithdrawals(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	withdrawals, next, err := h.withdrawalService.List(c.Request.Context(), userID, limit, nextToken)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ListWithdrawalsResponse{
		Withdrawals: make([]dto.WithdrawalResponse, 0, len(withdrawals)),
		NextToken:   next,
	}
	for i := range withdrawals {
		resp.Withdrawals = append(resp.Withdrawals, dto.ToWithdrawalResponse(&withdrawals[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *withdrawalHandler) getWithdrawal(c *gin.Context) {
	w, err := h.withdrawalService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(w))
}

func (h *withdrawalHandler) cancelWithdrawal(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return
	}

	w, err := h.withdrawalService.Cancel(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(w))
}

func (h *withdrawalHandler) approveWithdrawal(c *gin.Context) {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return
	}

	w, err := h.withdrawalService.Approve(c.Request.Context(), adminID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(w))
}

func (h *withdrawalHandler) rejectWithdrawal(c *gin.Context) {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return
	}

	var req dto.RejectWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "Invalid request format: " + err.Error()})
		return
	}

	w, err := h.withdrawalService.Reject(c.Request.Context(), adminID, c.Param("id"), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(w))
}

func (h *withdrawalHandler) markProcessing(c *gin.Context) {
	adminID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return
	}

	w, err := h.withdrawalService.MarkProcessing(c.Request.Context(), adminID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWithdrawalResponse(w))
}

package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/dto"
	"github.com/finwallet/wallet_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// referralHandler handles HTTP requests for referral edges and earnings.
type referralHandler struct {
	referralService portssvc.ReferralSvcFacade
}

func registerReferralRoutes(rg *gin.RouterGroup, referral portssvc.ReferralSvcFacade) {
	h := &referralHandler{referralService: referral}

	referrals := rg.Group("/referrals")
	{
		referrals.POST("", h.registerReferral)
		referrals.GET("", h.listReferrals)
		referrals.POST("/claim", h.claimEarnings)
	}
}

// registerAccrualRoutes exposes the manual batch trigger. The scheduler
// calls the same service; this route exists for operators.
func registerAccrualRoutes(rg *gin.RouterGroup, referral portssvc.ReferralSvcFacade) {
	h := &referralHandler{referralService: referral}
	rg.POST("/accrual/run", h.runAccrual)
}

func (h *referralHandler) registerReferral(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RegisterReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RegisterReferral", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: "Invalid request format: " + err.Error()})
		return
	}

	edge, err := h.referralService.Register(c.Request.Context(), req.ReferrerID, req.ReferredID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReferralEdgeResponse(edge))
}

func (h *referralHandler) listReferrals(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return
	}

	edges, err := h.referralService.ListEdges(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.ReferralEdgeResponse, 0, len(edges))
	for i := range edges {
		resp = append(resp, dto.ToReferralEdgeResponse(&edges[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *referralHandler) claimEarnings(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"})
		return
	}

	claimed, err := h.referralService.ClaimEarnings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ClaimEarningsResponse{Claimed: claimed.String()})
}

func (h *referralHandler) runAccrual(c *gin.Context) {
	result, err := h.referralService.RunAccrualBatch(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

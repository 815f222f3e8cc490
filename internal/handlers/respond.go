package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finwallet/wallet_ledger/internal/apperrors"
	"github.com/finwallet/wallet_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// errorBody is the uniform error payload.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps domain errors to HTTP statuses. Sentinels the caller
// can act on get a stable machine-readable code; everything else is a 500
// with the detail kept out of the response.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, errorBody{Code: "VALIDATION_ERROR", Message: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, errorBody{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, errorBody{Code: "INSUFFICIENT_BALANCE", Message: err.Error()})
	case errors.Is(err, apperrors.ErrNotClaimable):
		c.JSON(http.StatusUnprocessableEntity, errorBody{Code: "NOT_CLAIMABLE", Message: err.Error()})
	case errors.Is(err, apperrors.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, errorBody{Code: "INVALID_STATE_TRANSITION", Message: err.Error()})
	case errors.Is(err, apperrors.ErrAlreadyClaimed):
		c.JSON(http.StatusConflict, errorBody{Code: "ALREADY_CLAIMED", Message: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, errorBody{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, errorBody{Code: "CONCURRENCY_CONFLICT", Message: "the operation conflicted with concurrent writes, retry"})
	default:
		logger.Error("Unhandled error in handler", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, errorBody{Code: "INTERNAL_ERROR", Message: "internal server error"})
	}
}

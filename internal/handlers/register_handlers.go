package handlers

import (
	portssvc "github.com/finwallet/wallet_ledger/internal/core/ports/services"
	"github.com/finwallet/wallet_ledger/internal/middleware"
	"github.com/finwallet/wallet_ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies
// using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific
// entity route registrations. Identity comes from the gateway header, so
// the whole group sits behind the identity middleware.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1", middleware.IdentityMiddleware())

	registerTransactionRoutes(v1, services.Ledger, services.Claim, cfg.DefaultCurrencyCode)
	registerAccountRoutes(v1, services.Ledger, services.Reconciliation)
	registerWithdrawalRoutes(v1, services.Withdrawal)
	registerReferralRoutes(v1, services.Referral)

	admin := r.Group("/api/v1/admin", middleware.IdentityMiddleware())
	registerAdminTransactionRoutes(admin, services.Ledger, cfg.DefaultCurrencyCode)
	registerAccrualRoutes(admin, services.Referral)
}

package routes

import (
	"github.com/seribro/escrow-service/internal/adapter/http/handlers"
	"github.com/seribro/escrow-service/internal/adapter/http/middleware"
	"github.com/seribro/escrow-service/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

const PathPayments = "/payments"

func addPaymentRoutes(rg *gin.RouterGroup, jwtSecret []byte,
	orderHandler *handlers.OrderHandler,
	verificationHandler *handlers.VerificationHandler,
	releaseHandler *handlers.ReleaseHandler,
	queryHandler *handlers.QueryHandler,
) {
	payments := rg.Group(PathPayments)

	// The gateway webhook authenticates by HMAC, not by bearer token.
	payments.POST("/webhook", verificationHandler.Webhook)

	authed := payments.Group("", middleware.RequireAuth(jwtSecret))
	{
		authed.POST("/create-order", middleware.RequireRole(entities.RoleCompany), orderHandler.CreateOrder)
		authed.POST("/verify", verificationHandler.VerifyCapture)
		authed.GET("/:payment_id", queryHandler.GetPayment)

		authed.GET("/company/summary", middleware.RequireRole(entities.RoleCompany, entities.RoleAdmin), queryHandler.CompanySummary)
		authed.GET("/student/earnings", middleware.RequireRole(entities.RoleStudent, entities.RoleAdmin), queryHandler.StudentEarnings)

		admin := authed.Group("/admin", middleware.RequireRole(entities.RoleAdmin))
		{
			admin.GET("/pending-releases", queryHandler.PendingReleases)
			admin.POST("/:payment_id/release", releaseHandler.Release)
			admin.POST("/:payment_id/refund", releaseHandler.Refund)
			admin.POST("/bulk-release", releaseHandler.BulkRelease)
		}
	}
}

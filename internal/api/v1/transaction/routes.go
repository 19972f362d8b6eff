package transaction

import (
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/middleware"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the caller's own transaction routes. router must
// already be behind AuthMiddleware.
func RegisterRoutes(router *gin.RouterGroup) {
	tx := router.Group("/transactions")
	tx.GET("", ListOwn)
	tx.POST("/earn", middleware.RequireCapability(services.CapSubmitEarn), SubmitEarn)
	tx.POST("/redeem", middleware.RequireCapability(services.CapRedeem), Redeem)
}

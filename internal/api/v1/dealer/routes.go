package dealer

import (
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/middleware"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(router *gin.RouterGroup) {
	dealer := router.Group("/dealer/transactions")
	dealer.Use(middleware.RequireCapability(services.CapDealerReview))
	dealer.GET("", ListRequests)
	dealer.POST("/:id/approve", Approve)
	dealer.POST("/:id/reject", Reject)
}

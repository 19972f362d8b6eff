package user

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the caller-scoped user routes. router must already
// be behind AuthMiddleware.
func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/auth/user", CurrentUser)
	router.GET("/dealers", ListDealers)
	router.GET("/points/history", PointsHistory)
}

package notification

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/notifications", List)
	router.POST("/notifications/:id/read", MarkRead)
}

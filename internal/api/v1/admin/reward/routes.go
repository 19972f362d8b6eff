package reward

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts reward management under an admin-only group.
func RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/rewards", Create)
	router.PUT("/rewards/:id", Update)
}

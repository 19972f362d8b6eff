package middleware

import (
	"net/http"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"
	"github.com/Tapee2025/TCITapeecement2025-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequireCapability lets the request through only if the authenticated user
// holds capability. It must run after AuthMiddleware.
func RequireCapability(capability services.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
			return
		}
		if err := services.Authorize(user, capability); err != nil {
			logger.Log.Warn("forbidden access attempt",
				zap.Uint("user_id", user.ID),
				zap.String("role", string(user.Role)),
				zap.String("capability", string(capability)),
				zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusForbidden, utils.NewErrorResponse(http.StatusForbidden, err.Error()))
			return
		}
		c.Next()
	}
}

// AdminAuthMiddleware authenticates the caller and requires the admin role.
func AdminAuthMiddleware() gin.HandlersChain {
	return gin.HandlersChain{AuthMiddleware(), RequireCapability(services.CapAdminReview)}
}

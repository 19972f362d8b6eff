package api

import (
	"net/http"

	"github.com/Tapee2025/TCITapeecement2025-sub000/config"
	adminReward "github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/admin/reward"
	adminTransaction "github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/admin/transaction"
	adminUser "github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/admin/user"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/auth"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/dealer"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/notification"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/reward"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/transaction"
	userRoutes "github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/user"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/middleware"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route. The database and redis must already be connected.
func NewRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.GET("/healthz", healthz)
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		auth.RegisterRoutes(v1)

		authorized := v1.Group("/")
		authorized.Use(middleware.AuthMiddleware())
		{
			userRoutes.RegisterRoutes(authorized)
			reward.RegisterRoutes(authorized)
			transaction.RegisterRoutes(authorized)
			notification.RegisterRoutes(authorized)
			dealer.RegisterRoutes(authorized)
		}

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuthMiddleware()...)
		{
			adminUser.RegisterRoutes(admin)
			adminTransaction.RegisterRoutes(admin)
			adminReward.RegisterRoutes(admin.Group("", middleware.RequireCapability(services.CapManageRewards)))
		}
	}

	return router
}

func healthz(c *gin.Context) {
	status := gin.H{"database": "ok", "redis": "disabled"}
	code := http.StatusOK

	if sqlDB, err := database.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		status["database"] = "unreachable"
		code = http.StatusServiceUnavailable
	}
	if database.RedisClient != nil {
		status["redis"] = "ok"
		if err := database.RedisClient.Ping(c.Request.Context()).Err(); err != nil {
			status["redis"] = "unreachable"
			code = http.StatusServiceUnavailable
		}
	}
	c.JSON(code, status)
}

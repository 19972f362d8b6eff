package transaction

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/transactions", ListTransactions)
	router.GET("/transactions/export", ExportTransactions)
	router.GET("/transactions/export.xlsx", ExportTransactionsXLSX)
	router.POST("/transactions/:id/approve", Approve)
	router.POST("/transactions/:id/reject", Reject)
	router.POST("/transactions/:id/complete", Complete)
}

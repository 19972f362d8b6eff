package dealer

import (
	"net/http"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/common"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/transaction"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// ListRequests godoc
// @Summary List earn requests naming the caller as dealer
// @Tags dealer
// @Produce json
// @Security Bearer
// @Param status query string false "Filter by status" default(pending)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} utils.Response{data=transaction.TransactionListResponse}
// @Failure 403 {object} utils.Response
// @Router /dealer/transactions [get]
func ListRequests(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}
	page, limit, ok := common.Pagination(c)
	if !ok {
		return
	}

	earned := models.TransactionTypeEarned
	status := models.TransactionStatus(c.DefaultQuery("status", string(models.TransactionStatusPending)))
	filter := services.TransactionFilter{
		DealerID: &u.ID,
		Type:     &earned,
		Page:     page,
		Limit:    limit,
	}
	if status != "all" {
		filter.Status = &status
	}

	transactions, total, err := services.FindTransactions(filter)
	if err != nil {
		common.WriteError(c, err, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Requests retrieved successfully", transaction.TransactionListResponse{
		Transactions: transaction.NewTransactionResponses(transactions),
		Total:        total,
		Page:         page,
		Limit:        limit,
	}))
}

// Approve godoc
// @Summary Confirm a buyer's purchase claim
// @Description Moves a pending request to dealer_approved. No points move yet.
// @Tags dealer
// @Produce json
// @Security Bearer
// @Param id path int true "Transaction ID"
// @Success 200 {object} utils.Response{data=transaction.TransactionResponse}
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /dealer/transactions/{id}/approve [post]
func Approve(c *gin.Context) {
	act(c, services.DealerApprove, "Request approved")
}

// Reject godoc
// @Summary Reject a buyer's purchase claim
// @Tags dealer
// @Produce json
// @Security Bearer
// @Param id path int true "Transaction ID"
// @Success 200 {object} utils.Response{data=transaction.TransactionResponse}
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /dealer/transactions/{id}/reject [post]
func Reject(c *gin.Context) {
	act(c, services.DealerReject, "Request rejected")
}

func act(c *gin.Context, op func(models.User, uint) (*models.Transaction, error), message string) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}
	id, ok := common.PathID(c)
	if !ok {
		return
	}

	t, err := op(u, id)
	if err != nil {
		common.WriteError(c, err, "Failed to update request")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(message, transaction.NewTransactionResponse(*t)))
}

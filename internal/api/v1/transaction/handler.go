package transaction

import (
	"net/http"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/common"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// SubmitEarn godoc
// @Summary Claim points for a cement purchase
// @Description Opens a pending earn request. Points are credited only after the dealer and then an admin approve.
// @Tags transactions
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body EarnRequest true "Purchase"
// @Success 201 {object} utils.Response{data=TransactionResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 422 {object} utils.Response
// @Router /transactions/earn [post]
func SubmitEarn(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}

	var req EarnRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if _, err := services.ValidateDealerForRequester(u, req.DealerID); err != nil {
		common.WriteError(c, err, "Failed to validate dealer")
		return
	}

	t, err := services.SubmitEarnRequest(u, req.DealerID, req.CementType, req.BagCount)
	if err != nil {
		common.WriteError(c, err, "Failed to submit request")
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Request submitted for dealer approval", NewTransactionResponse(*t)))
}

// Redeem godoc
// @Summary Redeem a reward
// @Description Debits the reward cost at once. An admin rejection refunds it.
// @Tags transactions
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body RedeemRequest true "Reward"
// @Success 201 {object} utils.Response{data=TransactionResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 422 {object} utils.Response
// @Router /transactions/redeem [post]
func Redeem(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}

	var req RedeemRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	t, err := services.RedeemReward(u, req.RewardID)
	if err != nil {
		common.WriteError(c, err, "Failed to redeem reward")
		return
	}

	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Redemption submitted for approval", NewTransactionResponse(*t)))
}

// ListOwn godoc
// @Summary List my transactions
// @Tags transactions
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param type query string false "earned or redeemed"
// @Param status query string false "Filter by status"
// @Success 200 {object} utils.Response{data=TransactionListResponse}
// @Failure 400 {object} utils.Response
// @Router /transactions [get]
func ListOwn(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}

	page, limit, ok := common.Pagination(c)
	if !ok {
		return
	}

	filter := services.TransactionFilter{UserID: &u.ID, Page: page, Limit: limit}
	if v, exists := c.GetQuery("type"); exists {
		typ := models.TransactionType(v)
		filter.Type = &typ
	}
	if v, exists := c.GetQuery("status"); exists {
		status := models.TransactionStatus(v)
		filter.Status = &status
	}

	transactions, total, err := services.FindTransactions(filter)
	if err != nil {
		common.WriteError(c, err, "Failed to fetch transactions")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", TransactionListResponse{
		Transactions: NewTransactionResponses(transactions),
		Total:        total,
		Page:         page,
		Limit:        limit,
	}))
}

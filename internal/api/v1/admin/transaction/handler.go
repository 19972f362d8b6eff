package transaction

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/common"
	own "github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/transaction"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// exportLimit caps the rows of a single export.
const exportLimit = 10000

// parseFilter reads the filter query parameters shared by listing and export.
// It answers 400 and returns false on a malformed value.
func parseFilter(c *gin.Context) (services.TransactionFilter, bool) {
	var filter services.TransactionFilter

	for _, p := range []struct {
		key string
		dst **uint
	}{
		{"user_id", &filter.UserID},
		{"dealer_id", &filter.DealerID},
	} {
		if v, exists := c.GetQuery(p.key); exists {
			id, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid "+p.key))
				return filter, false
			}
			uid := uint(id)
			*p.dst = &uid
		}
	}

	if v, exists := c.GetQuery("type"); exists {
		t := models.TransactionType(v)
		filter.Type = &t
	}
	if v, exists := c.GetQuery("status"); exists {
		s := models.TransactionStatus(v)
		filter.Status = &s
	}

	for _, p := range []struct {
		key string
		dst **time.Time
	}{
		{"start_time", &filter.StartTime},
		{"end_time", &filter.EndTime},
	} {
		if v, exists := c.GetQuery(p.key); exists {
			ts, err := time.Parse(time.RFC3339, v)
			if err != nil {
				c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("Invalid %s format", p.key)))
				return filter, false
			}
			*p.dst = &ts
		}
	}

	for _, p := range []struct {
		key string
		dst **int
	}{
		{"min_amount", &filter.MinAmount},
		{"max_amount", &filter.MaxAmount},
	} {
		if v, exists := c.GetQuery(p.key); exists {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid "+p.key))
				return filter, false
			}
			*p.dst = &n
		}
	}

	return filter, true
}

// ListTransactions godoc
// @Summary List transactions
// @Description Get a paginated list of transactions with filtering. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param user_id query int false "Filter by owner"
// @Param dealer_id query int false "Filter by dealer"
// @Param type query string false "earned or redeemed"
// @Param status query string false "Filter by status"
// @Param start_time query string false "Filter by start time (RFC3339)"
// @Param end_time query string false "Filter by end time (RFC3339)"
// @Param min_amount query int false "Filter by minimum points"
// @Param max_amount query int false "Filter by maximum points"
// @Success 200 {object} utils.Response{data=transaction.TransactionListResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/transactions [get]
func ListTransactions(c *gin.Context) {
	page, limit, ok := common.Pagination(c)
	if !ok {
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	filter.Page, filter.Limit = page, limit

	transactions, total, err := services.FindTransactions(filter)
	if err != nil {
		common.WriteError(c, err, "Failed to fetch transactions")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Transactions retrieved successfully", own.TransactionListResponse{
		Transactions: own.NewTransactionResponses(transactions),
		Total:        total,
		Page:         page,
		Limit:        limit,
	}))
}

func exportRows(c *gin.Context) ([]models.Transaction, bool) {
	filter, ok := parseFilter(c)
	if !ok {
		return nil, false
	}
	filter.Page, filter.Limit = 1, exportLimit

	transactions, _, err := services.FindTransactions(filter)
	if err != nil {
		common.WriteError(c, err, "Failed to fetch transactions")
		return nil, false
	}
	return transactions, true
}

func attachment(c *gin.Context, ext, contentType string, body []byte) {
	filename := fmt.Sprintf("transactions_%s.%s", time.Now().Format("20060102150405"), ext)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, body)
}

// ExportTransactions godoc
// @Summary Export transactions as CSV
// @Tags admin
// @Produce text/csv
// @Security Bearer
// @Success 200 {string} string "CSV content"
// @Failure 400 {object} utils.Response
// @Router /admin/transactions/export [get]
func ExportTransactions(c *gin.Context) {
	transactions, ok := exportRows(c)
	if !ok {
		return
	}
	body, err := services.GenerateTransactionCSV(transactions)
	if err != nil {
		common.WriteError(c, err, "Failed to generate CSV")
		return
	}
	attachment(c, "csv", "text/csv", body)
}

// ExportTransactionsXLSX godoc
// @Summary Export transactions as a spreadsheet
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security Bearer
// @Success 200 {file} file
// @Failure 400 {object} utils.Response
// @Router /admin/transactions/export.xlsx [get]
func ExportTransactionsXLSX(c *gin.Context) {
	transactions, ok := exportRows(c)
	if !ok {
		return
	}
	body, err := services.GenerateTransactionXLSX(transactions)
	if err != nil {
		common.WriteError(c, err, "Failed to generate spreadsheet")
		return
	}
	attachment(c, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", body)
}

// Approve godoc
// @Summary Final approval
// @Description Earned requests must be dealer approved first; approval credits the owner.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Transaction ID"
// @Success 200 {object} utils.Response{data=transaction.TransactionResponse}
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/transactions/{id}/approve [post]
func Approve(c *gin.Context) {
	act(c, services.AdminApprove, "Transaction approved")
}

// Reject godoc
// @Summary Reject a transaction
// @Description Rejecting a redemption refunds its points.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Transaction ID"
// @Success 200 {object} utils.Response{data=transaction.TransactionResponse}
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/transactions/{id}/reject [post]
func Reject(c *gin.Context) {
	act(c, services.AdminReject, "Transaction rejected")
}

// Complete godoc
// @Summary Mark a redemption dispatched
// @Tags admin
// @Produce json
// @Security Bearer
// @Param id path int true "Transaction ID"
// @Success 200 {object} utils.Response{data=transaction.TransactionResponse}
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /admin/transactions/{id}/complete [post]
func Complete(c *gin.Context) {
	act(c, services.AdminComplete, "Redemption completed")
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
		common.WriteError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse(message, own.NewTransactionResponse(*t)))
}

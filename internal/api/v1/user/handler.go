package user

import (
	"net/http"
	"strconv"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/common"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/database"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// CurrentUser godoc
// @Summary Get current user
// @Description Get the caller's profile and point balance
// @Tags user
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 401 {object} utils.Response
// @Router /auth/user [get]
func CurrentUser(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}

	// The middleware copy may come from cache; the balance must be current.
	var latest models.User
	if err := database.DB.First(&latest, u.ID).Error; err == nil {
		u = latest
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User information retrieved successfully", NewUserResponse(u)))
}

// ListDealers godoc
// @Summary List dealers
// @Description Dealers in the caller's district, for submitting earn requests
// @Tags user
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]user.DealerItem}
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /dealers [get]
func ListDealers(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}

	dealers, err := services.FindDealersByDistrict(u.District)
	if err != nil {
		common.WriteError(c, err, "Failed to fetch dealers")
		return
	}

	items := make([]DealerItem, 0, len(dealers))
	for _, d := range dealers {
		items = append(items, DealerItem{
			ID:        d.ID,
			FullName:  d.FullName,
			City:      d.City,
			District:  d.District,
			ShortCode: d.ShortCode,
		})
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Dealers retrieved successfully", items))
}

// PointsHistory godoc
// @Summary Point balance history
// @Tags user
// @Produce  json
// @Security Bearer
// @Param limit query int false "Max entries" default(50)
// @Success 200 {object} utils.Response{data=[]user.LedgerItem}
// @Failure 401 {object} utils.Response
// @Router /points/history [get]
func PointsHistory(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > common.MaxPageSize {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
		return
	}

	entries, err := services.FindLedgerEntries(u.ID, limit)
	if err != nil {
		common.WriteError(c, err, "Failed to fetch point history")
		return
	}

	items := make([]LedgerItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, LedgerItem{
			ID:            e.ID,
			CreatedAt:     e.CreatedAt,
			TransactionID: e.TransactionID,
			Type:          e.Type,
			Delta:         e.Delta,
			BalanceBefore: e.BalanceBefore,
			BalanceAfter:  e.BalanceAfter,
		})
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Point history retrieved successfully", items))
}

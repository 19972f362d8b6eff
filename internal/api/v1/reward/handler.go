package reward

import (
	"net/http"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/common"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// List godoc
// @Summary Reward catalog
// @Description Rewards the caller can redeem. Admins see the whole catalog.
// @Tags rewards
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.Response{data=[]RewardResponse}
// @Router /rewards [get]
func List(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}

	var (
		rewards []models.Reward
		err     error
	)
	if services.Can(u, services.CapManageRewards) {
		rewards, err = services.ListAllRewards()
	} else {
		rewards, err = services.ListVisibleRewards(u.Role)
	}
	if err != nil {
		common.WriteError(c, err, "Failed to fetch rewards")
		return
	}

	items := make([]RewardResponse, 0, len(rewards))
	for _, r := range rewards {
		items = append(items, NewRewardResponse(r))
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rewards retrieved successfully", items))
}

package reward

import (
	"net/http"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/common"
	catalog "github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/reward"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// RewardRequest is the body of both create and update.
type RewardRequest struct {
	Title          string        `json:"title" binding:"required,max=200"`
	Description    string        `json:"description"`
	ImageURL       string        `json:"image_url" binding:"omitempty,url,max=500"`
	PointsRequired int           `json:"points_required" binding:"required,gt=0"`
	Available      *bool         `json:"available"`
	VisibleTo      []models.Role `json:"visible_to" binding:"omitempty,dive,oneof=admin dealer contractor sub_dealer"`
	ExpiresAt      *time.Time    `json:"expires_at"`
}

func (r RewardRequest) input() services.RewardInput {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return services.RewardInput{
		Title:          r.Title,
		Description:    r.Description,
		ImageURL:       r.ImageURL,
		PointsRequired: r.PointsRequired,
		Available:      available,
		VisibleTo:      r.VisibleTo,
		ExpiresAt:      r.ExpiresAt,
	}
}

// Create godoc
// @Summary Add a reward
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param body body RewardRequest true "Reward"
// @Success 201 {object} utils.Response{data=reward.RewardResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/rewards [post]
func Create(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}
	var req RewardRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	r, err := services.CreateReward(u, req.input())
	if err != nil {
		common.WriteError(c, err, "Failed to create reward")
		return
	}
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "Reward created", catalog.NewRewardResponse(*r)))
}

// Update godoc
// @Summary Replace a reward
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Reward ID"
// @Param body body RewardRequest true "Reward"
// @Success 200 {object} utils.Response{data=reward.RewardResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /admin/rewards/{id} [put]
func Update(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}
	id, ok := common.PathID(c)
	if !ok {
		return
	}
	var req RewardRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	r, err := services.UpdateReward(u, id, req.input())
	if err != nil {
		common.WriteError(c, err, "Failed to update reward")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Reward updated", catalog.NewRewardResponse(*r)))
}

package notification

import (
	"net/http"
	"time"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/common"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationItem struct {
	ID            uint        `json:"id"`
	CreatedAt     time.Time   `json:"created_at"`
	TransactionID *uint       `json:"transaction_id,omitempty"`
	Title         string      `json:"title"`
	Message       string      `json:"message"`
	Data          models.JSON `json:"data,omitempty"`
	IsRead        bool        `json:"is_read"`
}

// List godoc
// @Summary List my notifications
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param unread query bool false "Only unread"
// @Success 200 {object} utils.Response{data=[]NotificationItem}
// @Router /notifications [get]
func List(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}

	notes, err := services.ListNotifications(u.ID, c.Query("unread") == "true", common.MaxPageSize)
	if err != nil {
		common.WriteError(c, err, "Failed to fetch notifications")
		return
	}

	items := make([]NotificationItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, NotificationItem{
			ID:            n.ID,
			CreatedAt:     n.CreatedAt,
			TransactionID: n.TransactionID,
			Title:         n.Title,
			Message:       n.Message,
			Data:          n.Data,
			IsRead:        n.IsRead,
		})
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Notifications retrieved successfully", items))
}

// MarkRead godoc
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security Bearer
// @Param id path int true "Notification ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /notifications/{id}/read [post]
func MarkRead(c *gin.Context) {
	u, ok := common.RequireUser(c)
	if !ok {
		return
	}
	id, ok := common.PathID(c)
	if !ok {
		return
	}

	if err := services.MarkNotificationRead(u.ID, id); err != nil {
		common.WriteError(c, err, "Failed to update notification")
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Notification marked as read", nil))
}

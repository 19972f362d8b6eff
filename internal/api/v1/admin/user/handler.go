package user

import (
	"net/http"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/common"
	profile "github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/user"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserListResponse struct {
	Users []profile.UserResponse `json:"users"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// ListUsers godoc
// @Summary List all users
// @Description Get a paginated list of users. Admin only.
// @Tags admin
// @Produce json
// @Security Bearer
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param role query string false "Filter by role"
// @Param district query string false "Filter by district"
// @Success 200 {object} utils.Response{data=UserListResponse}
// @Failure 400 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /admin/users [get]
func ListUsers(c *gin.Context) {
	page, limit, ok := common.Pagination(c)
	if !ok {
		return
	}

	filter := services.UserFilter{Page: page, Limit: limit}
	if v, exists := c.GetQuery("role"); exists {
		role := models.Role(v)
		filter.Role = &role
	}
	if v, exists := c.GetQuery("district"); exists {
		filter.District = &v
	}

	users, total, err := services.FindUsers(filter)
	if err != nil {
		common.WriteError(c, err, "Failed to fetch users")
		return
	}

	items := make([]profile.UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, profile.NewUserResponse(u))
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Users retrieved successfully", UserListResponse{
		Users: items,
		Total: total,
		Page:  page,
		Limit: limit,
	}))
}

// UpdateUserRequest represents the request body for updating a user.
// Point balances are not editable here.
type UpdateUserRequest struct {
	FullName  *string `json:"full_name,omitempty" binding:"omitempty,max=120"`
	Password  *string `json:"password,omitempty" binding:"omitempty,min=6"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=admin dealer contractor sub_dealer"`
	District  *string `json:"district,omitempty" binding:"omitempty,max=100"`
	City      *string `json:"city,omitempty" binding:"omitempty,max=100"`
	Address   *string `json:"address,omitempty"`
	GSTNumber *string `json:"gst_number,omitempty" binding:"omitempty,max=20"`
}

func (r UpdateUserRequest) updates() map[string]interface{} {
	updates := make(map[string]interface{})
	for column, v := range map[string]*string{
		"full_name":  r.FullName,
		"password":   r.Password,
		"district":   r.District,
		"city":       r.City,
		"address":    r.Address,
		"gst_number": r.GSTNumber,
	} {
		if v != nil {
			updates[column] = *v
		}
	}
	if r.Role != nil {
		updates["role"] = models.Role(*r.Role)
	}
	return updates
}

// UpdateUser godoc
// @Summary Update a user
// @Description Update profile, role or password. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "User ID"
// @Param body body UpdateUserRequest true "User details to update"
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 422 {object} utils.Response
// @Router /admin/users/{id} [patch]
func UpdateUser(c *gin.Context) {
	operator, ok := common.RequireUser(c)
	if !ok {
		return
	}
	if err := services.Authorize(operator, services.CapManageUsers); err != nil {
		common.WriteError(c, err, "")
		return
	}
	id, ok := common.PathID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	updates := req.updates()
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "No fields to update"))
		return
	}

	updated, err := services.UpdateUser(id, updates, operator.Email)
	if err != nil {
		common.WriteError(c, err, "Failed to update user")
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("User updated successfully", profile.NewUserResponse(*updated)))
}

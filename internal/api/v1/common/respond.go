// Package common holds helpers shared by the v1 handlers.
package common

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/middleware"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/models"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"
	"github.com/Tapee2025/TCITapeecement2025-sub000/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var errorStatus = []struct {
	err    error
	status int
}{
	{services.ErrInvalidBagCount, http.StatusUnprocessableEntity},
	{services.ErrInvalidCementType, http.StatusUnprocessableEntity},
	{services.ErrInsufficientPoints, http.StatusUnprocessableEntity},
	{services.ErrDealerNotFound, http.StatusUnprocessableEntity},
	{services.ErrDealerOutsideDistrict, http.StatusUnprocessableEntity},
	{services.ErrRewardUnavailable, http.StatusUnprocessableEntity},
	{services.ErrInvalidRewardCost, http.StatusUnprocessableEntity},
	{services.ErrGSTRequired, http.StatusUnprocessableEntity},
	{services.ErrDistrictRequired, http.StatusUnprocessableEntity},
	{services.ErrInvalidRole, http.StatusUnprocessableEntity},
	{services.ErrInvalidTransition, http.StatusConflict},
	{services.ErrStaleState, http.StatusConflict},
	{services.ErrOptimisticLock, http.StatusConflict},
	{services.ErrUserAlreadyExists, http.StatusConflict},
	{services.ErrForbidden, http.StatusForbidden},
	{services.ErrAdminSelfRegister, http.StatusForbidden},
	{services.ErrInvalidCredentials, http.StatusUnauthorized},
	{services.ErrTransactionNotFound, http.StatusNotFound},
	{services.ErrRewardNotFound, http.StatusNotFound},
	{services.ErrUserNotFound, http.StatusNotFound},
	{services.ErrNotificationNotFound, http.StatusNotFound},
}

// StatusFor maps a service error to its HTTP status. Unknown errors are 500.
func StatusFor(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// WriteError answers with the status for err. Internal errors are logged and
// replaced by fallback so storage details do not leak to clients.
func WriteError(c *gin.Context, err error, fallback string) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Log.Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
		_ = c.Error(err)
		message = fallback
	}
	c.JSON(status, utils.NewErrorResponse(status, message))
}

// RequireUser fetches the authenticated user or answers 401.
func RequireUser(c *gin.Context) (models.User, bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, "Unauthorized"))
	}
	return u, ok
}

// PathID parses the :id route parameter or answers 400.
func PathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid id"))
		return 0, false
	}
	return uint(id), true
}

// Pagination reads page and limit query parameters or answers 400.
func Pagination(c *gin.Context) (page, limit int, ok bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid page number"))
		return 0, 0, false
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid limit number"))
		return 0, 0, false
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, true
}

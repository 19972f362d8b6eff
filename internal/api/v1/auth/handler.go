package auth

import (
	"net/http"

	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/common"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/api/v1/user"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/services"
	"github.com/Tapee2025/TCITapeecement2025-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

// Register godoc
// @Summary Register a participant
// @Description Dealers must supply a GST number. The first account created becomes the admin.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   RegisterInput  true  "Register Input"
// @Success 201 {object} utils.Response{data=user.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Failure 422 {object} utils.Response
// @Router /auth/register [post]
func Register(c *gin.Context) {
	var input RegisterInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	u, err := services.RegisterUser(services.RegisterUserInput{
		Email:     input.Email,
		Password:  input.Password,
		FullName:  input.FullName,
		Role:      input.Role,
		District:  input.District,
		City:      input.City,
		Address:   input.Address,
		GSTNumber: input.GSTNumber,
	})
	if err != nil {
		common.WriteError(c, err, "Failed to register user due to an internal error")
		return
	}

	token, err := utils.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Could not generate token"))
		return
	}

	resp := user.NewUserResponse(*u)
	resp.Token = token
	c.JSON(http.StatusCreated, utils.NewResponse(http.StatusCreated, "User registered successfully", resp))
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   input     body   LoginInput  true  "Login Input"
// @Success 200 {object} utils.Response{data=user.UserResponse}
// @Failure 400 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Router /auth/login [post]
func Login(c *gin.Context) {
	var input LoginInput
	if !utils.BindAndValidate(c, &input) {
		return
	}

	token, u, err := services.LoginUser(input.Email, input.Password)
	if err != nil {
		common.WriteError(c, err, "Failed to log in")
		return
	}

	resp := user.NewUserResponse(*u)
	resp.Token = token
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged in successfully", resp))
}

// Logout godoc
// @Summary Log out
// @Description Revoke the caller's token for the rest of its lifetime
// @Tags auth
// @Produce  json
// @Security Bearer
// @Success 200 {object} utils.Response
// @Failure 401 {object} utils.Response
// @Failure 500 {object} utils.Response
// @Router /auth/logout [post]
func Logout(c *gin.Context) {
	tokenString, err := utils.ExtractToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse(http.StatusUnauthorized, err.Error()))
		return
	}

	ttl := utils.TokenTTL
	if claims, err := utils.ValidateToken(tokenString); err == nil {
		if remaining, ok := utils.RemainingTTL(claims); ok {
			ttl = remaining
		}
	}

	if err := services.AddToDenylist(tokenString, ttl); err != nil {
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse(http.StatusInternalServerError, "Failed to denylist token"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Logged out successfully", nil))
}

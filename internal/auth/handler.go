package auth

import (
	"net/http"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/validation"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *AuthService
}

func NewAuthHandler(service *AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register 注册
// @Summary 注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.AuthResponse
// @Failure 409 {object} response.ErrorBody
// @Failure 422 {object} response.ErrorBody
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	req := validation.Value[dto.RegisterRequest](c, validation.RuleRegister)

	result, err := h.service.Register(c.Request.Context(), req.User)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Login 登录
// @Summary 登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} response.ErrorBody
// @Failure 422 {object} response.ErrorBody
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	req := validation.Value[dto.LoginRequest](c, validation.RuleLogin)

	result, err := h.service.Login(c.Request.Context(), req.User)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Logout 登出，撤销当前令牌
// @Summary 登出
// @Tags Auth
// @Security BearerAuth
// @Success 204
// @Failure 401 {object} response.ErrorBody
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if err := h.service.Logout(c.Request.Context(), claims.UserID, claims.TokenID); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package user

import (
	"net/http"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/validation"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *UserService
}

func NewUserHandler(service *UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetCurrent 获取当前用户
// @Summary 获取当前用户
// @Tags User
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} response.ErrorBody
// @Router /user [get]
func (h *UserHandler) GetCurrent(c *gin.Context) {
	result, err := h.service.GetCurrent(middleware.CurrentUser(c), middleware.CurrentToken(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update 更新当前用户
// @Summary 更新当前用户
// @Description 修改密码会撤销全部会话并返回新令牌
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateUserRequest true "更新内容"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Failure 422 {object} response.ErrorBody
// @Router /user [put]
func (h *UserHandler) Update(c *gin.Context) {
	req := validation.Value[dto.UpdateUserRequest](c, validation.RuleUpdateUser)

	result, err := h.service.Update(c.Request.Context(), middleware.CurrentUser(c), middleware.CurrentToken(c), req.User)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

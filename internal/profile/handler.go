package profile

import (
	"net/http"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/validation"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	service *ProfileService
}

func NewProfileHandler(service *ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get 获取用户资料
// @Summary 获取用户资料
// @Description 已登录时 following 表示调用者是否关注该用户
// @Tags Profile
// @Produce json
// @Param username path string true "用户名"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} response.ErrorBody
// @Router /profile/{username} [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	params := validation.Value[dto.UsernameParams](c, validation.RuleGetProfile)

	result, err := h.service.Get(c.Request.Context(), middleware.CurrentUserID(c), params.Username)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Follow 关注用户
// @Summary 关注用户
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param username path string true "用户名"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /profile/{username}/follow [post]
func (h *ProfileHandler) Follow(c *gin.Context) {
	params := validation.Value[dto.UsernameParams](c, validation.RuleFollowProfile)

	result, err := h.service.Follow(c.Request.Context(), middleware.CurrentUserID(c), params.Username)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param username path string true "用户名"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} response.ErrorBody
// @Router /profile/{username}/follow [delete]
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	params := validation.Value[dto.UsernameParams](c, validation.RuleUnfollowProfile)

	result, err := h.service.Unfollow(c.Request.Context(), middleware.CurrentUserID(c), params.Username)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

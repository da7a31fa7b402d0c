package article

import (
	"net/http"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/validation"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	service *CommentService
}

func NewCommentHandler(service *CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// Create 发表评论
// @Summary 发表评论
// @Tags Comment
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "slug"
// @Param request body dto.CreateCommentRequest true "评论内容"
// @Success 201 {object} dto.CommentResponse
// @Failure 404 {object} response.ErrorBody
// @Failure 422 {object} response.ErrorBody
// @Router /article/{slug}/comment [post]
func (h *CommentHandler) Create(c *gin.Context) {
	req := validation.Value[dto.CreateCommentRequest](c, validation.RuleCreateComment)

	result, err := h.service.Create(c.Request.Context(), middleware.CurrentUser(c), slugParam(c), req.Comment)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// List 评论列表
// @Summary 评论列表（按创建时间升序）
// @Tags Comment
// @Produce json
// @Security BearerAuth
// @Param slug path string true "slug"
// @Success 200 {object} dto.CommentListResponse
// @Failure 404 {object} response.ErrorBody
// @Router /article/{slug}/comment [get]
func (h *CommentHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context(), middleware.CurrentUserID(c), slugParam(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete 删除评论
// @Summary 删除评论（仅评论作者）
// @Tags Comment
// @Security BearerAuth
// @Param slug path string true "slug"
// @Param id path int true "评论ID"
// @Success 204
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /article/{slug}/comment/{id} [delete]
func (h *CommentHandler) Delete(c *gin.Context) {
	params := validation.Value[dto.CommentParams](c, validation.RuleCommentParams)

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUserID(c), params.Slug, params.ID); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

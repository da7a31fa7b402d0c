package article

import (
	"net/http"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/validation"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	service *ArticleService
}

func NewArticleHandler(service *ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

func slugParam(c *gin.Context) string {
	return validation.Value[dto.ArticleParams](c, validation.RuleArticleParams).Slug
}

// Create 创建文章
// @Summary 创建文章
// @Description slug 由标题生成
// @Tags Article
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateArticleRequest true "文章内容"
// @Success 201 {object} dto.ArticleResponse
// @Failure 409 {object} response.ErrorBody
// @Failure 422 {object} response.ErrorBody
// @Router /article [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	req := validation.Value[dto.CreateArticleRequest](c, validation.RuleCreateArticle)

	result, err := h.service.Create(c.Request.Context(), middleware.CurrentUserID(c), req.Article)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// List 文章列表
// @Summary 文章列表（分页，按创建时间倒序）
// @Tags Article
// @Produce json
// @Security BearerAuth
// @Param tag query string false "标签"
// @Param author query string false "作者用户名"
// @Param username query string false "作者用户名（author 的别名）"
// @Param favorited query string false "收藏者用户名"
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} dto.ArticleListResponse
// @Failure 400 {object} response.ErrorBody
// @Router /article [get]
func (h *ArticleHandler) List(c *gin.Context) {
	q := validation.Value[dto.ListArticlesQuery](c, validation.RuleListArticles)

	result, err := h.service.List(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Feed 关注动态
// @Summary 关注的作者发布的文章
// @Tags Article
// @Produce json
// @Security BearerAuth
// @Param limit query int false "每页数量" default(20)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {object} dto.ArticleListResponse
// @Router /article/feed [get]
func (h *ArticleHandler) Feed(c *gin.Context) {
	q := validation.Value[dto.ListArticlesQuery](c, validation.RuleListArticles)

	result, err := h.service.Feed(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get 文章详情
// @Summary 文章详情
// @Tags Article
// @Produce json
// @Security BearerAuth
// @Param slug path string true "slug"
// @Success 200 {object} dto.ArticleResponse
// @Failure 404 {object} response.ErrorBody
// @Router /article/{slug} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), middleware.CurrentUserID(c), slugParam(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Update 更新文章
// @Summary 更新文章（仅作者）
// @Tags Article
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "slug"
// @Param request body dto.UpdateArticleRequest true "更新内容"
// @Success 200 {object} dto.ArticleResponse
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /article/{slug} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	req := validation.Value[dto.UpdateArticleRequest](c, validation.RuleUpdateArticle)

	result, err := h.service.Update(c.Request.Context(), middleware.CurrentUserID(c), slugParam(c), req.Article)
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Delete 删除文章
// @Summary 删除文章（仅作者）
// @Tags Article
// @Security BearerAuth
// @Param slug path string true "slug"
// @Success 204
// @Failure 403 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /article/{slug} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUserID(c), slugParam(c)); err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Favorite 收藏
// @Summary 收藏文章
// @Tags Favorite
// @Produce json
// @Security BearerAuth
// @Param slug path string true "slug"
// @Success 200 {object} dto.ArticleResponse
// @Failure 404 {object} response.ErrorBody
// @Router /article/{slug}/favorite [post]
func (h *ArticleHandler) Favorite(c *gin.Context) {
	result, err := h.service.Favorite(c.Request.Context(), middleware.CurrentUserID(c), slugParam(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Unfavorite 取消收藏
// @Summary 取消收藏
// @Tags Favorite
// @Produce json
// @Security BearerAuth
// @Param slug path string true "slug"
// @Success 200 {object} dto.ArticleResponse
// @Failure 404 {object} response.ErrorBody
// @Router /article/{slug}/favorite [delete]
func (h *ArticleHandler) Unfavorite(c *gin.Context) {
	result, err := h.service.Unfavorite(c.Request.Context(), middleware.CurrentUserID(c), slugParam(c))
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

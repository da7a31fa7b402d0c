package tag

import (
	"net/http"

	"terminal-terrace/conduit/internal/dto"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	service *TagService
}

func NewTagHandler(service *TagService) *TagHandler {
	return &TagHandler{service: service}
}

// List 标签列表
// @Summary 标签列表
// @Tags Tag
// @Produce json
// @Success 200 {object} dto.TagListResponse
// @Router /tag [get]
func (h *TagHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		dto.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

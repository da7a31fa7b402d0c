package dto

import (
	"terminal-terrace/conduit/packages/response"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 记录错误并中止，由 ErrorHandler 中间件统一输出
func ErrorResponse(c *gin.Context, err *response.BusinessError) {
	_ = c.Error(err)
	c.Abort()
}

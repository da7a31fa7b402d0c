package middleware

import (
	"fmt"
	"net/http"

	"terminal-terrace/conduit/internal/logging"
	"terminal-terrace/conduit/packages/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler 将 c.Errors 中最后一个错误转换为状态码与 JSON 错误体
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		be := response.AsBusinessError(c.Errors.Last().Err)
		status := be.Code.HTTPStatus()
		if status >= 500 {
			logging.WithFields(c.Request.Context(), logrus.Fields{
				"method": c.Request.Method,
				"path":   c.FullPath(),
			}).WithError(be).Error("request failed")
		}
		c.JSON(status, response.ErrorResponse(be))
	}
}

// NotFound 未匹配路由
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		be := response.NewError(response.NotFound, "the route you are looking for does not exist.")
		c.JSON(be.Code.HTTPStatus(), response.ErrorResponse(be))
	}
}

// Recovery 捕获 panic，按统一错误格式返回 500
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		be := response.Internal(fmt.Errorf("panic: %v", recovered))
		logging.WithFields(c.Request.Context(), logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).WithError(be).Error("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse(be))
	})
}

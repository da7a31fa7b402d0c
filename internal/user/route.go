package user

import (
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/validation"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, service *UserService, auth *middleware.Authenticator) {
	h := NewUserHandler(service)

	g := r.Group("/user", validation.Validate(validation.RuleAuthHeader), auth.JWTAuth())
	g.GET("", h.GetCurrent)
	g.PUT("", validation.Validate(validation.RuleUpdateUser), h.Update)
}

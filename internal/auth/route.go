package auth

import (
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/validation"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, service *AuthService, auth *middleware.Authenticator) {
	h := NewAuthHandler(service)

	g := r.Group("/auth")
	g.POST("/register", validation.Validate(validation.RuleRegister), h.Register)
	g.POST("/login", validation.Validate(validation.RuleLogin), h.Login)
	g.POST("/logout", validation.Validate(validation.RuleAuthHeader), auth.JWTAuth(), h.Logout)
}

package profile

import (
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/validation"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, service *ProfileService, auth *middleware.Authenticator) {
	h := NewProfileHandler(service)

	g := r.Group("/profile/:username")
	g.GET("", validation.Validate(validation.RuleGetProfile), auth.OptionalJWTAuth(), h.Get)

	required := g.Group("/follow", validation.Validate(validation.RuleAuthHeader), auth.JWTAuth())
	required.POST("", validation.Validate(validation.RuleFollowProfile), h.Follow)
	required.DELETE("", validation.Validate(validation.RuleUnfollowProfile), h.Unfollow)
}

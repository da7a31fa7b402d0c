package article

import (
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/validation"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, articles *ArticleService, comments *CommentService, auth *middleware.Authenticator) {
	h := NewArticleHandler(articles)
	ch := NewCommentHandler(comments)

	g := r.Group("/article", validation.Validate(validation.RuleAuthHeader), auth.JWTAuth())
	{
		g.POST("", validation.Validate(validation.RuleCreateArticle), h.Create)
		g.GET("", validation.Validate(validation.RuleListArticles), h.List)
		g.GET("/feed", validation.Validate(validation.RuleListArticles), h.Feed)
	}

	single := g.Group("/:slug", validation.Validate(validation.RuleArticleParams))
	{
		single.GET("", h.Get)
		single.PUT("", validation.Validate(validation.RuleUpdateArticle), h.Update)
		single.DELETE("", h.Delete)

		single.POST("/favorite", h.Favorite)
		single.DELETE("/favorite", h.Unfavorite)

		single.POST("/comment", validation.Validate(validation.RuleCreateComment), ch.Create)
		single.GET("/comment", ch.List)
	}

	g.DELETE("/:slug/comment/:id", validation.Validate(validation.RuleCommentParams), ch.Delete)
}

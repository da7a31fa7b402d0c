package route

import (
	"net/http"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"terminal-terrace/conduit/config"
	_ "terminal-terrace/conduit/docs"
	"terminal-terrace/conduit/internal/article"
	"terminal-terrace/conduit/internal/auth"
	"terminal-terrace/conduit/internal/credential"
	"terminal-terrace/conduit/internal/database"
	"terminal-terrace/conduit/internal/middleware"
	"terminal-terrace/conduit/internal/profile"
	"terminal-terrace/conduit/internal/session"
	"terminal-terrace/conduit/internal/tag"
	"terminal-terrace/conduit/internal/user"
)

func initRoute(r *gin.Engine, conf *config.AppConfig, store *database.Store) {
	// 初始化依赖
	db := store.DB
	creds := credential.NewService(conf.JWT, conf.Auth)
	sessions := session.NewStore(store.Redis)
	issuer := session.NewIssuer(creds, sessions)
	repos := article.NewRepositories(db)
	authenticator := middleware.NewAuthenticator(creds, sessions, repos.Users)

	articleService := article.NewArticleService(db, repos)

	// Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "Ok")
	})

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		auth.RegisterRoutes(apiV1, auth.NewAuthService(db, repos.Users, creds, issuer), authenticator)
		user.RegisterRoutes(apiV1, user.NewUserService(db, repos.Users, creds, issuer), authenticator)
		profile.RegisterRoutes(apiV1, profile.NewProfileService(repos.Users, repos.Follows), authenticator)
		article.RegisterRoutes(apiV1, articleService, article.NewCommentService(articleService, repos), authenticator)
		tag.RegisterRoutes(apiV1, tag.NewTagService(repos.Tags))
	}

	r.NoRoute(middleware.NotFound())
}

func SetupRouter(conf *config.AppConfig, store *database.Store) *gin.Engine {
	if conf.Server.Mode != "" {
		gin.SetMode(conf.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.Recovery())

	if conf.Telemetry.Enabled {
		r.Use(otelgin.Middleware(conf.Telemetry.ServiceName))
	}
	r.Use(middleware.RequestLogger())

	// 允许多个前端端口
	allowedOrigins := append([]string{}, conf.CORS.AllowedOrigins...)
	if len(allowedOrigins) == 0 {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000")
	}
	// 如果设置了环境变量，添加到允许列表
	if envOrigin := os.Getenv("FRONTEND_URL"); envOrigin != "" {
		allowedOrigins = append(allowedOrigins, envOrigin)
	}

	// 设置跨域请求
	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
	}))

	r.Use(middleware.Timeout(conf.Server.RequestTimeoutDuration()))
	r.Use(middleware.ErrorHandler())

	initRoute(r, conf, store)

	return r
}

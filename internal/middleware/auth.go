package middleware

import (
	"context"
	"errors"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/model/user"
	"terminal-terrace/conduit/internal/session"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"
	"terminal-terrace/conduit/packages/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	userKey   = "current_user"
	claimsKey = "token_claims"
	tokenKey  = "token"
)

// TokenParser 校验令牌
type TokenParser interface {
	ParseToken(token string) (*authsdk.UserContext, error)
}

// UserLoader 按 ID 加载用户（含 Profile）
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*user.User, error)
}

// Authenticator 解析 Bearer 令牌并加载调用者
type Authenticator struct {
	tokens   TokenParser
	sessions session.Store
	users    UserLoader
}

func NewAuthenticator(tokens TokenParser, sessions session.Store, users UserLoader) *Authenticator {
	return &Authenticator{tokens: tokens, sessions: sessions, users: users}
}

// JWTAuth 必需认证
func (a *Authenticator) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := a.authenticate(c); err != nil {
			dto.ErrorResponse(c, err)
			return
		}
		c.Next()
	}
}

// OptionalJWTAuth 可选认证：没有 Authorization 头时匿名继续，有但无效时拒绝
func (a *Authenticator) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		if err := a.authenticate(c); err != nil {
			dto.ErrorResponse(c, err)
			return
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context) *response.BusinessError {
	token, err := authsdk.ExtractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return unauthorized(err.Error())
	}

	claims, err := a.tokens.ParseToken(token)
	if err != nil {
		if errors.Is(err, authsdk.ErrExpiredToken) {
			return unauthorized("token expired")
		}
		return unauthorized("invalid token")
	}

	ctx := c.Request.Context()
	active, err := a.sessions.Exists(ctx, claims.TokenID)
	if err != nil {
		return response.Internal(err)
	}
	if !active {
		return unauthorized("token has been revoked")
	}

	u, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return unauthorized("user not found")
		}
		return response.Internal(err)
	}
	// 邮箱变更后旧令牌失效
	if u.Email != claims.Email {
		return unauthorized("invalid token")
	}

	c.Set(userKey, u)
	c.Set(claimsKey, claims)
	c.Set(tokenKey, token)
	return nil
}

func unauthorized(msg string) *response.BusinessError {
	return response.NewError(response.Unauthorized, msg)
}

// CurrentUser 当前用户，匿名时返回 nil
func CurrentUser(c *gin.Context) *user.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*user.User)
	return u
}

// CurrentUserID 当前用户 ID，匿名时为 0
func CurrentUserID(c *gin.Context) uint {
	if u := CurrentUser(c); u != nil {
		return u.ID
	}
	return 0
}

// CurrentClaims 当前令牌声明
func CurrentClaims(c *gin.Context) *authsdk.UserContext {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*authsdk.UserContext)
	return claims
}

// CurrentToken 请求携带的原始令牌
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

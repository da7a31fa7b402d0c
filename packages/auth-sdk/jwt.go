package authsdk

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	ErrNoToken      = errors.New("no token provided")
)

// Claims JWT 自定义声明
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// UserContext 用户上下文信息
type UserContext struct {
	UserID    uint
	Username  string
	Email     string
	TokenID   string // jti，用于会话撤销
	ExpiresAt time.Time
}

// GenerateToken 签发 HS256 令牌，jti 为随机 uuid
func GenerateToken(user UserContext, secret string, ttl time.Duration) (string, *UserContext, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   user.UserID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", nil, err
	}
	return signed, claims.userContext(), nil
}

// ParseToken 解析并验证 JWT token（签名、算法、过期时间）
// secret: JWT 签名密钥
func ParseToken(tokenString, secret string) (*UserContext, error) {
	if tokenString == "" {
		return nil, ErrNoToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.Email == "" || claims.UserID == 0 {
			return nil, ErrInvalidToken
		}
		return claims.userContext(), nil
	}

	return nil, ErrInvalidToken
}

func (c *Claims) userContext() *UserContext {
	uc := &UserContext{
		UserID:   c.UserID,
		Username: c.Username,
		Email:    c.Email,
		TokenID:  c.ID,
	}
	if c.ExpiresAt != nil {
		uc.ExpiresAt = c.ExpiresAt.Time
	}
	return uc
}

package credential

import (
	"time"

	"terminal-terrace/conduit/config"
	"terminal-terrace/conduit/internal/model/user"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"

	"golang.org/x/crypto/bcrypt"
)

// Service 密码哈希与令牌签发/校验，无状态
type Service struct {
	secret string
	ttl    time.Duration
	cost   int
}

func NewService(jwtConf config.JWTConfig, authConf config.AuthConfig) *Service {
	cost := authConf.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		secret: jwtConf.Secret,
		ttl:    jwtConf.TokenTTL(),
		cost:   cost,
	}
}

// HashPassword bcrypt 哈希
func (s *Service) HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 校验明文与哈希是否匹配
func (s *Service) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// IssueToken 为用户签发访问令牌
func (s *Service) IssueToken(u *user.User) (string, *authsdk.UserContext, error) {
	return authsdk.GenerateToken(authsdk.UserContext{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
	}, s.secret, s.ttl)
}

// ParseToken 校验签名与有效期
func (s *Service) ParseToken(token string) (*authsdk.UserContext, error) {
	return authsdk.ParseToken(token, s.secret)
}


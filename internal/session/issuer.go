package session

import (
	"context"
	"fmt"
	"time"

	"terminal-terrace/conduit/internal/model/user"
	authsdk "terminal-terrace/conduit/packages/auth-sdk"
)

// TokenIssuer 签发令牌
type TokenIssuer interface {
	IssueToken(u *user.User) (string, *authsdk.UserContext, error)
}

// Issuer 签发令牌并登记会话
type Issuer struct {
	tokens TokenIssuer
	store  Store
}

func NewIssuer(tokens TokenIssuer, store Store) *Issuer {
	return &Issuer{tokens: tokens, store: store}
}

// Issue 为用户签发新令牌，会话有效期与令牌一致
func (i *Issuer) Issue(ctx context.Context, u *user.User) (string, error) {
	token, claims, err := i.tokens.IssueToken(u)
	if err != nil {
		return "", fmt.Errorf("签发令牌失败: %w", err)
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return "", fmt.Errorf("签发令牌失败: 有效期必须为正")
	}
	if err := i.store.Create(ctx, claims.TokenID, u.ID, ttl); err != nil {
		return "", err
	}
	return token, nil
}

// Revoke 撤销单个令牌
func (i *Issuer) Revoke(ctx context.Context, tokenID string) error {
	return i.store.Delete(ctx, tokenID)
}

// RevokeAll 撤销用户的全部令牌
func (i *Issuer) RevokeAll(ctx context.Context, userID uint) error {
	return i.store.DeleteAllByUserID(ctx, userID)
}

// ActiveSessions 用户当前的有效会话数；未启用 Redis 时为 0
func (i *Issuer) ActiveSessions(ctx context.Context, userID uint) (int, error) {
	return i.store.CountByUserID(ctx, userID)
}

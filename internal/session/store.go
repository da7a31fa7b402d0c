package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	dbPkg "terminal-terrace/conduit/packages/database"

	"github.com/redis/go-redis/v9"
)

const (
	// 令牌会话 key 前缀
	SessionPrefix = "session:"
	// 用户的会话集合 key 前缀（用于撤销用户的所有会话）
	UserSessionsPrefix = "user_sessions:"
)

// Store 已签发令牌（jti）的会话存储
type Store interface {
	Create(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error
	Exists(ctx context.Context, tokenID string) (bool, error)
	Delete(ctx context.Context, tokenID string) error
	DeleteAllByUserID(ctx context.Context, userID uint) error
	CountByUserID(ctx context.Context, userID uint) (int, error)
}

// NewStore 有 Redis 时返回 Redis 实现，否则返回不跟踪会话的实现
func NewStore(client *dbPkg.RedisClient) Store {
	if client == nil {
		return noopStore{}
	}
	return NewRedisStore(client)
}

// RedisStore 基于 Redis 的会话存储
type RedisStore struct {
	redis *dbPkg.RedisClient
}

func NewRedisStore(client *dbPkg.RedisClient) *RedisStore {
	return &RedisStore{redis: client}
}

func userSessionsKey(userID uint) string {
	return UserSessionsPrefix + strconv.FormatUint(uint64(userID), 10)
}

// Create 记录会话并加入用户的会话集合
func (r *RedisStore) Create(ctx context.Context, tokenID string, userID uint, ttl time.Duration) error {
	key := SessionPrefix + tokenID
	userKey := userSessionsKey(userID)

	pipe := r.redis.TxPipeline()
	pipe.Set(ctx, key, userID, ttl)
	pipe.SAdd(ctx, userKey, tokenID)
	pipe.Expire(ctx, userKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("存储会话失败: %w", err)
	}
	return nil
}

// Exists 会话是否仍然有效
func (r *RedisStore) Exists(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.redis.Exists(ctx, SessionPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("查询会话失败: %w", err)
	}
	return n > 0, nil
}

// Delete 撤销单个会话（登出）
func (r *RedisStore) Delete(ctx context.Context, tokenID string) error {
	key := SessionPrefix + tokenID

	// 先取出用户 ID，以便从用户的会话集合中删除
	userIDStr, err := r.redis.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("查询会话失败: %w", err)
	}
	if userID, convErr := strconv.ParseUint(userIDStr, 10, 64); convErr == nil {
		r.redis.SRem(ctx, userSessionsKey(uint(userID)), tokenID)
	}

	if err := r.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("撤销会话失败: %w", err)
	}
	return nil
}

// DeleteAllByUserID 撤销用户的所有会话（修改密码等场景）
func (r *RedisStore) DeleteAllByUserID(ctx context.Context, userID uint) error {
	userKey := userSessionsKey(userID)

	tokenIDs, err := r.redis.SMembers(ctx, userKey).Result()
	if err != nil {
		return fmt.Errorf("获取用户会话列表失败: %w", err)
	}

	keys := make([]string, 0, len(tokenIDs)+1)
	for _, id := range tokenIDs {
		keys = append(keys, SessionPrefix+id)
	}
	keys = append(keys, userKey)

	if err := r.redis.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("删除用户会话失败: %w", err)
	}
	return nil
}

// CountByUserID 用户的活跃会话数
func (r *RedisStore) CountByUserID(ctx context.Context, userID uint) (int, error) {
	count, err := r.redis.SCard(ctx, userSessionsKey(userID)).Result()
	if err != nil {
		return 0, fmt.Errorf("获取活跃会话数失败: %w", err)
	}
	return int(count), nil
}

// noopStore 未启用 Redis：令牌在过期前一直有效
type noopStore struct{}

func (noopStore) Create(context.Context, string, uint, time.Duration) error { return nil }
func (noopStore) Exists(context.Context, string) (bool, error)             { return true, nil }
func (noopStore) Delete(context.Context, string) error                     { return nil }
func (noopStore) DeleteAllByUserID(context.Context, uint) error            { return nil }
func (noopStore) CountByUserID(context.Context, uint) (int, error)         { return 0, nil }

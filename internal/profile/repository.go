package profile

import (
	"context"

	userModel "terminal-terrace/conduit/internal/model/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository 关注关系数据访问接口。关注对象以用户 ID 表示，内部换算为资料 ID
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followedUserID uint) error
	Unfollow(ctx context.Context, followerID, followedUserID uint) error
	IsFollowing(ctx context.Context, followerID, followedUserID uint) (bool, error)
	// FollowingSet 返回 candidates 中 followerID 已关注的用户
	FollowingSet(ctx context.Context, followerID uint, candidates []uint) (map[uint]bool, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) profileID(ctx context.Context, userID uint) (uint, error) {
	var p userModel.Profile
	if err := r.db.WithContext(ctx).Select("id").Where("user_id = ?", userID).First(&p).Error; err != nil {
		return 0, err
	}
	return p.ID, nil
}

// Follow 幂等：重复关注不会产生第二条记录
func (r *followRepository) Follow(ctx context.Context, followerID, followedUserID uint) error {
	profileID, err := r.profileID(ctx, followedUserID)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&userModel.FollowProfile{UserID: followerID, ProfileID: profileID}).Error
}

// Unfollow 幂等
func (r *followRepository) Unfollow(ctx context.Context, followerID, followedUserID uint) error {
	profileID, err := r.profileID(ctx, followedUserID)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND profile_id = ?", followerID, profileID).
		Delete(&userModel.FollowProfile{}).Error
}

func (r *followRepository) IsFollowing(ctx context.Context, followerID, followedUserID uint) (bool, error) {
	if followerID == 0 {
		return false, nil
	}
	set, err := r.FollowingSet(ctx, followerID, []uint{followedUserID})
	if err != nil {
		return false, err
	}
	return set[followedUserID], nil
}

func (r *followRepository) FollowingSet(ctx context.Context, followerID uint, candidates []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(candidates))
	if followerID == 0 || len(candidates) == 0 {
		return set, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&userModel.Profile{}).
		Joins("JOIN follow_profiles ON follow_profiles.profile_id = profiles.id").
		Where("follow_profiles.user_id = ? AND profiles.user_id IN ?", followerID, candidates).
		Pluck("profiles.user_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

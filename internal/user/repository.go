package user

import (
	"context"

	userModel "terminal-terrace/conduit/internal/model/user"

	"gorm.io/gorm"
)

// UserRepository 用户与资料的数据访问接口
type UserRepository interface {
	// WithTx 返回绑定到事务的仓储
	WithTx(tx *gorm.DB) UserRepository

	Create(ctx context.Context, u *userModel.User) error
	GetByID(ctx context.Context, id uint) (*userModel.User, error)
	GetByEmail(ctx context.Context, email string) (*userModel.User, error)
	GetByUsername(ctx context.Context, username string) (*userModel.User, error)
	GetByIDs(ctx context.Context, ids []uint) (map[uint]*userModel.User, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error)
	UpdateAccount(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdateProfile(ctx context.Context, userID uint, fields map[string]interface{}) error
	UpdateToken(ctx context.Context, id uint, token string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建 Repository 实例
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *gorm.DB) UserRepository {
	return &userRepository{db: tx}
}

// Create 创建用户，u.Profile 非空时一并创建资料
func (r *userRepository) Create(ctx context.Context, u *userModel.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*userModel.User, error) {
	var u userModel.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*userModel.User, error) {
	var u userModel.User
	if err := r.db.WithContext(ctx).Preload("Profile").Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*userModel.User, error) {
	var u userModel.User
	if err := r.db.WithContext(ctx).Preload("Profile").Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByIDs 批量加载用户（含资料），以 ID 为键
func (r *userRepository) GetByIDs(ctx context.Context, ids []uint) (map[uint]*userModel.User, error) {
	result := make(map[uint]*userModel.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var users []*userModel.User
	if err := r.db.WithContext(ctx).Preload("Profile").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		result[u.ID] = u
	}
	return result, nil
}

// ExistsByEmail excludeID 为 0 时不排除任何用户
func (r *userRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.exists(ctx, "email = ?", email, excludeID)
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string, excludeID uint) (bool, error) {
	return r.exists(ctx, "username = ?", username, excludeID)
}

func (r *userRepository) exists(ctx context.Context, cond string, value string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&userModel.User{}).Where(cond, value)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateAccount 更新 users 表字段（email、username、password_hash）
func (r *userRepository) UpdateAccount(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&userModel.User{}).Where("id = ?", id).Updates(fields).Error
}

// UpdateProfile 更新 profiles 表字段（bio、image）
func (r *userRepository) UpdateProfile(ctx context.Context, userID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&userModel.Profile{}).Where("user_id = ?", userID).Updates(fields).Error
}

// UpdateToken 记录最近一次签发的令牌
func (r *userRepository) UpdateToken(ctx context.Context, id uint, token string) error {
	return r.db.WithContext(ctx).Model(&userModel.User{}).Where("id = ?", id).Update("token", token).Error
}

package user

import "time"

type User struct {
	ID           uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex" json:"email"`
	Username     string    `gorm:"column:username;type:varchar(50);not null;uniqueIndex" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null" json:"-"`
	Token        *string   `gorm:"column:token;type:text" json:"-"` // 最近一次签发的令牌
	Profile      *Profile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Profile 用户资料，与 User 一对一
type Profile struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex" json:"user_id"`
	Bio       *string   `gorm:"column:bio;type:text" json:"bio"`
	Image     *string   `gorm:"column:image;type:varchar(500)" json:"image"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// FollowProfile 关注关系：UserID 关注了 ProfileID
type FollowProfile struct {
	UserID    uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	ProfileID uint      `gorm:"column:profile_id;primaryKey;index" json:"profile_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (FollowProfile) TableName() string {
	return "follow_profiles"
}

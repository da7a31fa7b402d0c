package article

import "time"

// Favorite 收藏表，(user_id, article_id) 唯一
type Favorite struct {
	UserID    uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	ArticleID uint      `gorm:"column:article_id;primaryKey;index" json:"article_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

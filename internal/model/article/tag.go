package article

import "time"

// Tag 标签表
type Tag struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:varchar(100);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}

// ArticleTag 文章-标签关联表
type ArticleTag struct {
	ArticleID uint      `gorm:"column:article_id;primaryKey;index" json:"article_id"`
	TagID     uint      `gorm:"column:tag_id;primaryKey;index" json:"tag_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ArticleTag) TableName() string {
	return "article_tags"
}

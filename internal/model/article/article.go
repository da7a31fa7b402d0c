package article

import "time"

type Article struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuthorID    uint      `gorm:"column:author_id;not null;index" json:"author_id"`
	Slug        string    `gorm:"column:slug;type:varchar(255);not null;uniqueIndex" json:"slug"`
	Title       string    `gorm:"column:title;type:varchar(255);not null" json:"title"`
	Description string    `gorm:"column:description;type:text;not null" json:"description"`
	Body        string    `gorm:"column:body;type:text;not null" json:"body"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Article) TableName() string {
	return "articles"
}

// Comment 评论，ID 由数据库生成
type Comment struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ArticleID uint      `gorm:"column:article_id;not null;index" json:"article_id"`
	AuthorID  uint      `gorm:"column:author_id;not null;index" json:"author_id"`
	Body      string    `gorm:"column:body;type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}

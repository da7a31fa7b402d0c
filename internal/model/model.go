package model

import (
	"fmt"

	"terminal-terrace/conduit/internal/model/article"
	"terminal-terrace/conduit/internal/model/user"

	"gorm.io/gorm"
)

// GetModels 返回所有需要迁移的模型
func GetModels() []interface{} {
	return []interface{}{
		&user.User{},
		&user.Profile{},
		&user.FollowProfile{},
		&article.Article{},
		&article.Tag{},
		&article.ArticleTag{},
		&article.Favorite{},
		&article.Comment{},
	}
}

func InitTable(db *gorm.DB) error {
	models := GetModels()

	// 执行自动迁移
	err := db.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("数据库表迁移失败: %w", err)
	}

	return nil
}

package article

import (
	"context"

	articleModel "terminal-terrace/conduit/internal/model/article"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository 收藏关系，收藏数始终由查询得出
type FavoriteRepository interface {
	WithTx(tx *gorm.DB) FavoriteRepository

	Add(ctx context.Context, userID, articleID uint) error
	Remove(ctx context.Context, userID, articleID uint) error
	DeleteByArticleID(ctx context.Context, articleID uint) error
	CountByArticleIDs(ctx context.Context, articleIDs []uint) (map[uint]int64, error)
	// FavoritedSet 返回 articleIDs 中 userID 已收藏的文章
	FavoritedSet(ctx context.Context, userID uint, articleIDs []uint) (map[uint]bool, error)
}

type favoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) WithTx(tx *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: tx}
}

// Add 幂等
func (r *favoriteRepository) Add(ctx context.Context, userID, articleID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&articleModel.Favorite{UserID: userID, ArticleID: articleID}).Error
}

// Remove 幂等
func (r *favoriteRepository) Remove(ctx context.Context, userID, articleID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&articleModel.Favorite{}).Error
}

func (r *favoriteRepository) DeleteByArticleID(ctx context.Context, articleID uint) error {
	return r.db.WithContext(ctx).Where("article_id = ?", articleID).Delete(&articleModel.Favorite{}).Error
}

func (r *favoriteRepository) CountByArticleIDs(ctx context.Context, articleIDs []uint) (map[uint]int64, error) {
	result := make(map[uint]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ArticleID uint
		Count     int64
	}
	err := r.db.WithContext(ctx).
		Model(&articleModel.Favorite{}).
		Select("article_id, COUNT(*) AS count").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ArticleID] = row.Count
	}
	return result, nil
}

func (r *favoriteRepository) FavoritedSet(ctx context.Context, userID uint, articleIDs []uint) (map[uint]bool, error) {
	set := make(map[uint]bool, len(articleIDs))
	if userID == 0 || len(articleIDs) == 0 {
		return set, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&articleModel.Favorite{}).
		Where("user_id = ? AND article_id IN ?", userID, articleIDs).
		Pluck("article_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

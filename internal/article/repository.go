package article

import (
	"context"

	articleModel "terminal-terrace/conduit/internal/model/article"

	"gorm.io/gorm"
)

// ListFilter 文章列表过滤条件，空字符串表示不过滤
type ListFilter struct {
	Tag       string
	Author    string // 作者用户名
	Favorited string // 收藏者用户名
	// FeedOf 非 0 时只返回该用户关注的作者的文章
	FeedOf uint
	Limit  int
	Offset int
}

// ArticleRepository 文章数据访问接口
type ArticleRepository interface {
	WithTx(tx *gorm.DB) ArticleRepository

	Create(ctx context.Context, a *articleModel.Article) error
	GetBySlug(ctx context.Context, slug string) (*articleModel.Article, error)
	ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	// List 按创建时间倒序分页，total 为分页前的匹配总数
	List(ctx context.Context, filter ListFilter) ([]*articleModel.Article, int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) WithTx(tx *gorm.DB) ArticleRepository {
	return &articleRepository{db: tx}
}

func (r *articleRepository) Create(ctx context.Context, a *articleModel.Article) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*articleModel.Article, error) {
	var a articleModel.Article
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *articleRepository) ExistsBySlug(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&articleModel.Article{}).Where("slug = ?", slug)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *articleRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&articleModel.Article{}).Where("id = ?", id).Updates(fields).Error
}

func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&articleModel.Article{}, id).Error
}

func (r *articleRepository) List(ctx context.Context, filter ListFilter) ([]*articleModel.Article, int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	articles := make([]*articleModel.Article, 0)
	if total == 0 {
		return articles, 0, nil
	}

	err := r.filtered(ctx, filter).
		Order("articles.created_at DESC").
		Order("articles.id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&articles).Error
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

func (r *articleRepository) filtered(ctx context.Context, filter ListFilter) *gorm.DB {
	db := r.db.WithContext(ctx)
	q := db.Model(&articleModel.Article{})

	if filter.Author != "" {
		q = q.Where("articles.author_id IN (?)",
			db.Table("users").Select("id").Where("username = ?", filter.Author))
	}
	if filter.Tag != "" {
		q = q.Where("articles.id IN (?)",
			db.Table("article_tags").
				Select("article_tags.article_id").
				Joins("JOIN tags ON tags.id = article_tags.tag_id").
				Where("tags.name = ?", filter.Tag))
	}
	if filter.Favorited != "" {
		q = q.Where("articles.id IN (?)",
			db.Table("favorites").
				Select("favorites.article_id").
				Joins("JOIN users ON users.id = favorites.user_id").
				Where("users.username = ?", filter.Favorited))
	}
	if filter.FeedOf != 0 {
		q = q.Where("articles.author_id IN (?)",
			db.Table("profiles").
				Select("profiles.user_id").
				Joins("JOIN follow_profiles ON follow_profiles.profile_id = profiles.id").
				Where("follow_profiles.user_id = ?", filter.FeedOf))
	}
	return q
}

package article

import (
	"context"
	"sort"

	articleModel "terminal-terrace/conduit/internal/model/article"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository 标签与文章-标签关联
type TagRepository interface {
	WithTx(tx *gorm.DB) TagRepository

	// SetArticleTags 用 names 替换文章的全部标签
	SetArticleTags(ctx context.Context, articleID uint, names []string) error
	DeleteByArticleID(ctx context.Context, articleID uint) error
	// NamesByArticleIDs 每篇文章的标签名，按名称排序
	NamesByArticleIDs(ctx context.Context, articleIDs []uint) (map[uint][]string, error)
	// ListNames 至少关联了一篇文章的标签名，去重并排序
	ListNames(ctx context.Context) ([]string, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) WithTx(tx *gorm.DB) TagRepository {
	return &tagRepository{db: tx}
}

func (r *tagRepository) findOrCreate(ctx context.Context, names []string) ([]articleModel.Tag, error) {
	db := r.db.WithContext(ctx)

	tags := make([]articleModel.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, articleModel.Tag{Name: name})
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tags).Error; err != nil {
		return nil, err
	}

	// DoNothing 时冲突行不会回填 ID，重新查询
	var stored []articleModel.Tag
	if err := db.Where("name IN ?", names).Find(&stored).Error; err != nil {
		return nil, err
	}
	return stored, nil
}

func (r *tagRepository) SetArticleTags(ctx context.Context, articleID uint, names []string) error {
	if err := r.DeleteByArticleID(ctx, articleID); err != nil {
		return err
	}

	names = uniqueNames(names)
	if len(names) == 0 {
		return nil
	}

	tags, err := r.findOrCreate(ctx, names)
	if err != nil {
		return err
	}
	links := make([]articleModel.ArticleTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, articleModel.ArticleTag{ArticleID: articleID, TagID: tag.ID})
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *tagRepository) DeleteByArticleID(ctx context.Context, articleID uint) error {
	return r.db.WithContext(ctx).Where("article_id = ?", articleID).Delete(&articleModel.ArticleTag{}).Error
}

func (r *tagRepository) NamesByArticleIDs(ctx context.Context, articleIDs []uint) (map[uint][]string, error) {
	result := make(map[uint][]string, len(articleIDs))
	if len(articleIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ArticleID uint
		Name      string
	}
	err := r.db.WithContext(ctx).
		Table("article_tags").
		Select("article_tags.article_id, tags.name").
		Joins("JOIN tags ON tags.id = article_tags.tag_id").
		Where("article_tags.article_id IN ?", articleIDs).
		Order("tags.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ArticleID] = append(result[row.ArticleID], row.Name)
	}
	return result, nil
}

func (r *tagRepository) ListNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	err := r.db.WithContext(ctx).
		Table("tags").
		Distinct("tags.name").
		Joins("JOIN article_tags ON article_tags.tag_id = tags.id").
		Order("tags.name ASC").
		Pluck("tags.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}

// uniqueNames 去重并排序，保证插入顺序稳定
func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

package article

import (
	"context"

	articleModel "terminal-terrace/conduit/internal/model/article"

	"gorm.io/gorm"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	WithTx(tx *gorm.DB) CommentRepository

	Create(ctx context.Context, c *articleModel.Comment) error
	GetByID(ctx context.Context, id uint) (*articleModel.Comment, error)
	// ListByArticleID 按创建时间升序
	ListByArticleID(ctx context.Context, articleID uint) ([]*articleModel.Comment, error)
	Delete(ctx context.Context, id uint) error
	DeleteByArticleID(ctx context.Context, articleID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(ctx context.Context, c *articleModel.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*articleModel.Comment, error) {
	var c articleModel.Comment
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) ListByArticleID(ctx context.Context, articleID uint) ([]*articleModel.Comment, error) {
	comments := make([]*articleModel.Comment, 0)
	err := r.db.WithContext(ctx).
		Where("article_id = ?", articleID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&articleModel.Comment{}, id).Error
}

func (r *commentRepository) DeleteByArticleID(ctx context.Context, articleID uint) error {
	return r.db.WithContext(ctx).Where("article_id = ?", articleID).Delete(&articleModel.Comment{}).Error
}

package article

import (
	"context"
	"errors"
	"time"

	"terminal-terrace/conduit/internal/dto"
	articleModel "terminal-terrace/conduit/internal/model/article"
	"terminal-terrace/conduit/internal/profile"
	userPkg "terminal-terrace/conduit/internal/user"
	"terminal-terrace/conduit/packages/response"

	"gorm.io/gorm"
)

// Repositories 文章模块依赖的仓储，启动时构建一次
type Repositories struct {
	Articles  ArticleRepository
	Tags      TagRepository
	Favorites FavoriteRepository
	Comments  CommentRepository
	Users     userPkg.UserRepository
	Follows   profile.FollowRepository
}

// NewRepositories 基于同一个连接构建全部仓储
func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Articles:  NewArticleRepository(db),
		Tags:      NewTagRepository(db),
		Favorites: NewFavoriteRepository(db),
		Comments:  NewCommentRepository(db),
		Users:     userPkg.NewUserRepository(db),
		Follows:   profile.NewFollowRepository(db),
	}
}

var (
	errArticleNotFound = response.NewError(response.NotFound, "article not found.")
	errSlugTaken       = response.NewError(response.Conflict, "slug already exists.")
	errEmptySlug       = response.NewError(response.InvalidParameter, "title must contain at least one letter or digit.")
)

type ArticleService struct {
	db    *gorm.DB
	repos Repositories
}

func NewArticleService(db *gorm.DB, repos Repositories) *ArticleService {
	return &ArticleService{db: db, repos: repos}
}

// Create 根据标题生成 slug，文章与标签在同一个事务中写入
func (s *ArticleService) Create(ctx context.Context, authorID uint, req *dto.CreateArticle) (dto.ArticleResponse, *response.BusinessError) {
	slug := dto.Slugify(req.Title)
	if slug == "" {
		return dto.ArticleResponse{}, errEmptySlug
	}

	a := &articleModel.Article{
		AuthorID:    authorID,
		Slug:        slug,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
	}
	be := inTx(ctx, s.db, func(tx *gorm.DB) error {
		articles := s.repos.Articles.WithTx(tx)

		taken, err := articles.ExistsBySlug(ctx, slug, 0)
		if err != nil {
			return err
		}
		if taken {
			return errSlugTaken
		}
		if err := articles.Create(ctx, a); err != nil {
			return err
		}
		return s.repos.Tags.WithTx(tx).SetArticleTags(ctx, a.ID, req.TagList)
	})
	if be != nil {
		return dto.ArticleResponse{}, be
	}
	return s.present(ctx, authorID, a)
}

// Get 按 slug 获取任意文章
func (s *ArticleService) Get(ctx context.Context, viewerID uint, slug string) (dto.ArticleResponse, *response.BusinessError) {
	a, be := s.find(ctx, s.repos.Articles, slug)
	if be != nil {
		return dto.ArticleResponse{}, be
	}
	return s.present(ctx, viewerID, a)
}

// Update 仅作者可修改；修改标题会重新生成 slug，tagList 非 nil 时替换标签
func (s *ArticleService) Update(ctx context.Context, viewerID uint, slug string, req *dto.UpdateArticle) (dto.ArticleResponse, *response.BusinessError) {
	var updated *articleModel.Article
	be := inTx(ctx, s.db, func(tx *gorm.DB) error {
		articles := s.repos.Articles.WithTx(tx)

		a, be := s.find(ctx, articles, slug)
		if be != nil {
			return be
		}
		if a.AuthorID != viewerID {
			return response.NewError(response.Forbidden, "you are not the author of this article.")
		}

		fields := map[string]interface{}{"updated_at": time.Now()}
		newSlug := a.Slug
		if req.Title != nil {
			newSlug = dto.Slugify(*req.Title)
			if newSlug == "" {
				return errEmptySlug
			}
			if newSlug != a.Slug {
				taken, err := articles.ExistsBySlug(ctx, newSlug, a.ID)
				if err != nil {
					return err
				}
				if taken {
					return errSlugTaken
				}
			}
			fields["title"] = *req.Title
			fields["slug"] = newSlug
		}
		if req.Description != nil {
			fields["description"] = *req.Description
		}
		if req.Body != nil {
			fields["body"] = *req.Body
		}

		if err := articles.Update(ctx, a.ID, fields); err != nil {
			return err
		}
		if req.TagList != nil {
			if err := s.repos.Tags.WithTx(tx).SetArticleTags(ctx, a.ID, req.TagList); err != nil {
				return err
			}
		}

		var err error
		updated, err = articles.GetBySlug(ctx, newSlug)
		return err
	})
	if be != nil {
		return dto.ArticleResponse{}, be
	}
	return s.present(ctx, viewerID, updated)
}

// Delete 仅作者可删除；收藏、评论、标签关联与文章在同一个事务中删除
func (s *ArticleService) Delete(ctx context.Context, viewerID uint, slug string) *response.BusinessError {
	return inTx(ctx, s.db, func(tx *gorm.DB) error {
		a, be := s.find(ctx, s.repos.Articles.WithTx(tx), slug)
		if be != nil {
			return be
		}
		if a.AuthorID != viewerID {
			return response.NewError(response.Forbidden, "you are not the author of this article.")
		}

		if err := s.repos.Favorites.WithTx(tx).DeleteByArticleID(ctx, a.ID); err != nil {
			return err
		}
		if err := s.repos.Comments.WithTx(tx).DeleteByArticleID(ctx, a.ID); err != nil {
			return err
		}
		if err := s.repos.Tags.WithTx(tx).DeleteByArticleID(ctx, a.ID); err != nil {
			return err
		}
		return s.repos.Articles.WithTx(tx).Delete(ctx, a.ID)
	})
}

// Favorite 幂等收藏
func (s *ArticleService) Favorite(ctx context.Context, viewerID uint, slug string) (dto.ArticleResponse, *response.BusinessError) {
	a, be := s.find(ctx, s.repos.Articles, slug)
	if be != nil {
		return dto.ArticleResponse{}, be
	}
	if err := s.repos.Favorites.Add(ctx, viewerID, a.ID); err != nil {
		return dto.ArticleResponse{}, response.Internal(err)
	}
	return s.present(ctx, viewerID, a)
}

// Unfavorite 幂等取消收藏
func (s *ArticleService) Unfavorite(ctx context.Context, viewerID uint, slug string) (dto.ArticleResponse, *response.BusinessError) {
	a, be := s.find(ctx, s.repos.Articles, slug)
	if be != nil {
		return dto.ArticleResponse{}, be
	}
	if err := s.repos.Favorites.Remove(ctx, viewerID, a.ID); err != nil {
		return dto.ArticleResponse{}, response.Internal(err)
	}
	return s.present(ctx, viewerID, a)
}

// List 全站文章列表，支持 tag/author/favorited 过滤
func (s *ArticleService) List(ctx context.Context, viewerID uint, q *dto.ListArticlesQuery) (dto.ArticleListResponse, *response.BusinessError) {
	limit, offset := q.Page()
	filter := ListFilter{Limit: limit, Offset: offset}
	if q != nil {
		filter.Tag = q.Tag
		filter.Author = q.AuthorFilter()
		filter.Favorited = q.Favorited
	}
	return s.list(ctx, viewerID, filter)
}

// Feed 关注的作者发布的文章
func (s *ArticleService) Feed(ctx context.Context, viewerID uint, q *dto.ListArticlesQuery) (dto.ArticleListResponse, *response.BusinessError) {
	limit, offset := q.Page()
	return s.list(ctx, viewerID, ListFilter{FeedOf: viewerID, Limit: limit, Offset: offset})
}

func (s *ArticleService) list(ctx context.Context, viewerID uint, filter ListFilter) (dto.ArticleListResponse, *response.BusinessError) {
	articles, total, err := s.repos.Articles.List(ctx, filter)
	if err != nil {
		return dto.ArticleListResponse{}, response.Internal(err)
	}
	records, err := s.loadDetails(ctx, viewerID, articles)
	if err != nil {
		return dto.ArticleListResponse{}, response.Internal(err)
	}
	resp, err := dto.NewArticleListResponse(records, total)
	if err != nil {
		return dto.ArticleListResponse{}, response.Internal(err)
	}
	return resp, nil
}

func (s *ArticleService) find(ctx context.Context, articles ArticleRepository, slug string) (*articleModel.Article, *response.BusinessError) {
	a, err := articles.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errArticleNotFound
		}
		return nil, response.Internal(err)
	}
	return a, nil
}

func (s *ArticleService) present(ctx context.Context, viewerID uint, a *articleModel.Article) (dto.ArticleResponse, *response.BusinessError) {
	records, err := s.loadDetails(ctx, viewerID, []*articleModel.Article{a})
	if err != nil {
		return dto.ArticleResponse{}, response.Internal(err)
	}
	resp, err := dto.NewArticleResponse(records[0])
	if err != nil {
		return dto.ArticleResponse{}, response.Internal(err)
	}
	return resp, nil
}

// loadDetails 批量加载作者、标签、收藏数以及调用者视角的 favorited/following
func (s *ArticleService) loadDetails(ctx context.Context, viewerID uint, articles []*articleModel.Article) ([]dto.ArticleRecord, error) {
	if len(articles) == 0 {
		return []dto.ArticleRecord{}, nil
	}

	articleIDs := make([]uint, 0, len(articles))
	authorIDs := make([]uint, 0, len(articles))
	for _, a := range articles {
		articleIDs = append(articleIDs, a.ID)
		authorIDs = append(authorIDs, a.AuthorID)
	}

	authors, err := s.repos.Users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	tags, err := s.repos.Tags.NamesByArticleIDs(ctx, articleIDs)
	if err != nil {
		return nil, err
	}
	counts, err := s.repos.Favorites.CountByArticleIDs(ctx, articleIDs)
	if err != nil {
		return nil, err
	}
	favorited, err := s.repos.Favorites.FavoritedSet(ctx, viewerID, articleIDs)
	if err != nil {
		return nil, err
	}
	following, err := s.repos.Follows.FollowingSet(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	records := make([]dto.ArticleRecord, 0, len(articles))
	for _, a := range articles {
		records = append(records, dto.ArticleRecord{
			Article:        a,
			Author:         authors[a.AuthorID],
			Tags:           tags[a.ID],
			Favorited:      favorited[a.ID],
			FavoritesCount: counts[a.ID],
			Following:      following[a.AuthorID],
		})
	}
	return records, nil
}

// inTx 执行事务；业务错误原样返回，唯一约束冲突视为 slug 冲突，其余为内部错误
func inTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) *response.BusinessError {
	err := db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return response.NewError(response.Conflict, "slug already exists.", response.WithError(err))
	}
	return response.AsBusinessError(err)
}

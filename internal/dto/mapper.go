package dto

import (
	"errors"
	"fmt"

	"terminal-terrace/conduit/internal/model/article"
	"terminal-terrace/conduit/internal/model/user"
)

var (
	ErrMissingUser    = errors.New("dto: user is nil")
	ErrMissingProfile = errors.New("dto: user profile not loaded")
	ErrMissingArticle = errors.New("dto: article is nil")
	ErrMissingComment = errors.New("dto: comment is nil")
)

// ArticleRecord 组装文章视图所需的全部数据
type ArticleRecord struct {
	Article        *article.Article
	Author         *user.User // 需预加载 Profile
	Tags           []string
	Favorited      bool
	FavoritesCount int64
	Following      bool // 当前用户是否关注作者
}

// CommentRecord 组装评论视图所需的数据
type CommentRecord struct {
	Comment   *article.Comment
	Author    *user.User // 需预加载 Profile
	Following bool
}

func NewAuthResponse(u *user.User, token string) (AuthResponse, error) {
	if u == nil {
		return AuthResponse{}, ErrMissingUser
	}
	if u.Profile == nil {
		return AuthResponse{}, fmt.Errorf("%w: user %d", ErrMissingProfile, u.ID)
	}
	return AuthResponse{
		User: UserView{
			Email:    u.Email,
			Token:    token,
			Username: u.Username,
			Bio:      u.Profile.Bio,
			Image:    u.Profile.Image,
		},
	}, nil
}

func NewProfileView(u *user.User, following bool) (ProfileView, error) {
	if u == nil {
		return ProfileView{}, ErrMissingUser
	}
	if u.Profile == nil {
		return ProfileView{}, fmt.Errorf("%w: user %d", ErrMissingProfile, u.ID)
	}
	return ProfileView{
		Username:  u.Username,
		Bio:       u.Profile.Bio,
		Image:     u.Profile.Image,
		Following: following,
	}, nil
}

func NewProfileResponse(u *user.User, following bool) (ProfileResponse, error) {
	view, err := NewProfileView(u, following)
	if err != nil {
		return ProfileResponse{}, err
	}
	return ProfileResponse{Profile: view}, nil
}

func NewArticleView(r ArticleRecord) (ArticleView, error) {
	if r.Article == nil {
		return ArticleView{}, ErrMissingArticle
	}
	author, err := NewProfileView(r.Author, r.Following)
	if err != nil {
		return ArticleView{}, fmt.Errorf("article %q author: %w", r.Article.Slug, err)
	}
	if r.Author.ID != r.Article.AuthorID {
		return ArticleView{}, fmt.Errorf("article %q: author %d does not match author_id %d", r.Article.Slug, r.Author.ID, r.Article.AuthorID)
	}

	tags := r.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleView{
		Slug:           r.Article.Slug,
		Title:          r.Article.Title,
		Description:    r.Article.Description,
		Body:           r.Article.Body,
		TagList:        tags,
		CreatedAt:      r.Article.CreatedAt,
		UpdatedAt:      r.Article.UpdatedAt,
		Favorited:      r.Favorited,
		FavoritesCount: r.FavoritesCount,
		Author:         author,
	}, nil
}

func NewArticleResponse(r ArticleRecord) (ArticleResponse, error) {
	view, err := NewArticleView(r)
	if err != nil {
		return ArticleResponse{}, err
	}
	return ArticleResponse{Article: view}, nil
}

// NewArticleListResponse total 为分页前的匹配总数
func NewArticleListResponse(records []ArticleRecord, total int64) (ArticleListResponse, error) {
	views := make([]ArticleView, 0, len(records))
	for _, r := range records {
		view, err := NewArticleView(r)
		if err != nil {
			return ArticleListResponse{}, err
		}
		views = append(views, view)
	}
	return ArticleListResponse{Articles: views, ArticlesCount: total}, nil
}

func NewCommentView(r CommentRecord) (CommentView, error) {
	if r.Comment == nil {
		return CommentView{}, ErrMissingComment
	}
	author, err := NewProfileView(r.Author, r.Following)
	if err != nil {
		return CommentView{}, fmt.Errorf("comment %d author: %w", r.Comment.ID, err)
	}
	return CommentView{
		ID:        r.Comment.ID,
		CreatedAt: r.Comment.CreatedAt,
		UpdatedAt: r.Comment.UpdatedAt,
		Body:      r.Comment.Body,
		Author:    author,
	}, nil
}

func NewCommentResponse(r CommentRecord) (CommentResponse, error) {
	view, err := NewCommentView(r)
	if err != nil {
		return CommentResponse{}, err
	}
	return CommentResponse{Comment: view}, nil
}

func NewCommentListResponse(records []CommentRecord) (CommentListResponse, error) {
	views := make([]CommentView, 0, len(records))
	for _, r := range records {
		view, err := NewCommentView(r)
		if err != nil {
			return CommentListResponse{}, err
		}
		views = append(views, view)
	}
	return CommentListResponse{Comments: views}, nil
}

func NewTagListResponse(names []string) TagListResponse {
	if names == nil {
		names = []string{}
	}
	return TagListResponse{Tags: names}
}

package article

import (
	"context"
	"errors"

	"terminal-terrace/conduit/internal/dto"
	articleModel "terminal-terrace/conduit/internal/model/article"
	userModel "terminal-terrace/conduit/internal/model/user"
	"terminal-terrace/conduit/packages/response"

	"gorm.io/gorm"
)

var errCommentNotFound = response.NewError(response.NotFound, "comment not found.")

type CommentService struct {
	articles *ArticleService
	repos    Repositories
}

func NewCommentService(articles *ArticleService, repos Repositories) *CommentService {
	return &CommentService{articles: articles, repos: repos}
}

// Create 发表评论，评论 ID 由数据库生成
func (s *CommentService) Create(ctx context.Context, author *userModel.User, slug string, req *dto.CreateComment) (dto.CommentResponse, *response.BusinessError) {
	a, be := s.articles.find(ctx, s.repos.Articles, slug)
	if be != nil {
		return dto.CommentResponse{}, be
	}

	c := &articleModel.Comment{ArticleID: a.ID, AuthorID: author.ID, Body: req.Body}
	if err := s.repos.Comments.Create(ctx, c); err != nil {
		return dto.CommentResponse{}, response.Internal(err)
	}

	resp, err := dto.NewCommentResponse(dto.CommentRecord{Comment: c, Author: author})
	if err != nil {
		return dto.CommentResponse{}, response.Internal(err)
	}
	return resp, nil
}

// List 文章的全部评论，按创建时间升序
func (s *CommentService) List(ctx context.Context, viewerID uint, slug string) (dto.CommentListResponse, *response.BusinessError) {
	a, be := s.articles.find(ctx, s.repos.Articles, slug)
	if be != nil {
		return dto.CommentListResponse{}, be
	}

	comments, err := s.repos.Comments.ListByArticleID(ctx, a.ID)
	if err != nil {
		return dto.CommentListResponse{}, response.Internal(err)
	}

	authorIDs := make([]uint, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.AuthorID)
	}
	authors, err := s.repos.Users.GetByIDs(ctx, authorIDs)
	if err != nil {
		return dto.CommentListResponse{}, response.Internal(err)
	}
	following, err := s.repos.Follows.FollowingSet(ctx, viewerID, authorIDs)
	if err != nil {
		return dto.CommentListResponse{}, response.Internal(err)
	}

	records := make([]dto.CommentRecord, 0, len(comments))
	for _, c := range comments {
		records = append(records, dto.CommentRecord{
			Comment:   c,
			Author:    authors[c.AuthorID],
			Following: following[c.AuthorID],
		})
	}

	resp, err := dto.NewCommentListResponse(records)
	if err != nil {
		return dto.CommentListResponse{}, response.Internal(err)
	}
	return resp, nil
}

// Delete 仅评论作者可删除；评论不属于该文章时视为不存在
func (s *CommentService) Delete(ctx context.Context, viewerID uint, slug string, commentID uint) *response.BusinessError {
	a, be := s.articles.find(ctx, s.repos.Articles, slug)
	if be != nil {
		return be
	}

	c, err := s.repos.Comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errCommentNotFound
		}
		return response.Internal(err)
	}
	if c.ArticleID != a.ID {
		return errCommentNotFound
	}
	if c.AuthorID != viewerID {
		return response.NewError(response.Forbidden, "you are not the author of this comment.")
	}

	if err := s.repos.Comments.Delete(ctx, c.ID); err != nil {
		return response.Internal(err)
	}
	return nil
}

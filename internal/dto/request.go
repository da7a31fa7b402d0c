package dto

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	User *RegisterUser `json:"user" binding:"required"`
}

type RegisterUser struct {
	Email    string `json:"email" binding:"required,email" example:"jake@jake.jake"`
	Username string `json:"username" binding:"required,max=50" example:"jake"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"jakejakejake"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	User *LoginUser `json:"user" binding:"required"`
}

type LoginUser struct {
	Email    string `json:"email" binding:"required,email" example:"jake@jake.jake"`
	Password string `json:"password" binding:"required,min=8,max=72" example:"jakejakejake"`
}

// UpdateUserRequest 更新当前用户，字段均可选但至少提供一个
type UpdateUserRequest struct {
	User *UpdateUser `json:"user" binding:"required"`
}

type UpdateUser struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Username *string `json:"username" binding:"omitempty,min=1,max=50"`
	Password *string `json:"password" binding:"omitempty,min=8,max=72"`
	Image    NullableString `json:"image" swaggertype:"string"` // null 或空字符串表示清空
	Bio      NullableString `json:"bio" swaggertype:"string"`   // null 或空字符串表示清空
}

const maxImageLength = 500

func (r *UpdateUserRequest) Validate() error {
	u := r.User
	if u.Email == nil && u.Username == nil && u.Password == nil && !u.Image.Set && !u.Bio.Set {
		return errors.New("user must contain at least one of [email, username, password, image, bio]")
	}
	if utf8.RuneCountInString(u.Image.Value) > maxImageLength {
		return fmt.Errorf("user.image must be at most %d characters long", maxImageLength)
	}
	return nil
}

// CreateArticleRequest 创建文章请求
type CreateArticleRequest struct {
	Article *CreateArticle `json:"article" binding:"required"`
}

type CreateArticle struct {
	Title       string   `json:"title" binding:"required,max=255" example:"How to train your dragon"`
	Description string   `json:"description" binding:"required" example:"Ever wonder how?"`
	Body        string   `json:"body" binding:"required" example:"You have to believe"`
	TagList     []string `json:"tagList" binding:"omitempty,dive,required,max=100"`
}

// UpdateArticleRequest 更新文章请求；tagList 为 null 或缺省时保持原标签
type UpdateArticleRequest struct {
	Article *UpdateArticle `json:"article" binding:"required"`
}

type UpdateArticle struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string  `json:"description" binding:"omitempty,min=1"`
	Body        *string  `json:"body" binding:"omitempty,min=1"`
	TagList     []string `json:"tagList" binding:"omitempty,dive,required,max=100"`
}

func (r *UpdateArticleRequest) Validate() error {
	a := r.Article
	if a.Title == nil && a.Description == nil && a.Body == nil && a.TagList == nil {
		return errors.New("article must contain at least one of [title, description, body, tagList]")
	}
	return nil
}

// CreateCommentRequest 创建评论请求
type CreateCommentRequest struct {
	Comment *CreateComment `json:"comment" binding:"required"`
}

type CreateComment struct {
	Body string `json:"body" binding:"required" example:"Thank you so much!"`
}

// AuthHeader Authorization 头
type AuthHeader struct {
	Authorization string `header:"Authorization" binding:"required,bearer"`
}

// UsernameParams 路径参数 :username
type UsernameParams struct {
	Username string `uri:"username" binding:"required,max=50"`
}

// ArticleParams 路径参数 :slug
type ArticleParams struct {
	Slug string `uri:"slug" binding:"required,max=255"`
}

// CommentParams 路径参数 :slug/:id
type CommentParams struct {
	Slug string `uri:"slug" binding:"required,max=255"`
	ID   uint   `uri:"id" binding:"required,min=1"`
}

// ListArticlesQuery 文章列表查询参数
type ListArticlesQuery struct {
	Tag       string `form:"tag" binding:"omitempty,max=100"`
	Author    string `form:"author" binding:"omitempty,max=50"`
	Username  string `form:"username" binding:"omitempty,max=50"` // author 的别名
	Favorited string `form:"favorited" binding:"omitempty,max=50"`
	Limit     *int   `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset    *int   `form:"offset" binding:"omitempty,min=0"`
}

const (
	DefaultLimit  = 20
	DefaultOffset = 0
)

// Page 返回生效的 limit/offset
func (q *ListArticlesQuery) Page() (limit, offset int) {
	limit, offset = DefaultLimit, DefaultOffset
	if q == nil {
		return limit, offset
	}
	if q.Limit != nil {
		limit = *q.Limit
	}
	if q.Offset != nil {
		offset = *q.Offset
	}
	return limit, offset
}

// AuthorFilter author 优先，其次 username
func (q *ListArticlesQuery) AuthorFilter() string {
	if q == nil {
		return ""
	}
	if q.Author != "" {
		return q.Author
	}
	return q.Username
}

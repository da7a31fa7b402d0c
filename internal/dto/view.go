package dto

import "time"

// UserView 当前用户视图
type UserView struct {
	Email    string  `json:"email" example:"jake@jake.jake"`
	Token    string  `json:"token"`
	Username string  `json:"username" example:"jake"`
	Bio      *string `json:"bio"`
	Image    *string `json:"image"`
}

type AuthResponse struct {
	User UserView `json:"user"`
}

// ProfileView 公开资料视图
type ProfileView struct {
	Username  string  `json:"username" example:"jake"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

type ProfileResponse struct {
	Profile ProfileView `json:"profile"`
}

type ArticleView struct {
	Slug           string      `json:"slug" example:"how-to-train-your-dragon"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int64       `json:"favoritesCount"`
	Author         ProfileView `json:"author"`
}

type ArticleResponse struct {
	Article ArticleView `json:"article"`
}

type ArticleListResponse struct {
	Articles      []ArticleView `json:"articles"`
	ArticlesCount int64         `json:"articlesCount"`
}

type CommentView struct {
	ID        uint        `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
	Body      string      `json:"body"`
	Author    ProfileView `json:"author"`
}

type CommentResponse struct {
	Comment CommentView `json:"comment"`
}

type CommentListResponse struct {
	Comments []CommentView `json:"comments"`
}

type TagListResponse struct {
	Tags []string `json:"tags"`
}

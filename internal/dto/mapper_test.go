package dto

import (
	"encoding/json"
	"testing"
	"time"

	"terminal-terrace/conduit/internal/model/article"
	"terminal-terrace/conduit/internal/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func testUser() *user.User {
	return &user.User{
		ID:       1,
		Email:    "jake@jake.jake",
		Username: "jake",
		Profile:  &user.Profile{UserID: 1, Bio: strPtr("I work at statefarm"), Image: nil},
	}
}

func TestNewAuthResponse(t *testing.T) {
	res, err := NewAuthResponse(testUser(), "jwt.token.here")
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"user":{"email":"jake@jake.jake","token":"jwt.token.here","username":"jake","bio":"I work at statefarm","image":null}}`, string(raw))

	_, err = NewAuthResponse(nil, "t")
	assert.ErrorIs(t, err, ErrMissingUser)

	noProfile := testUser()
	noProfile.Profile = nil
	_, err = NewAuthResponse(noProfile, "t")
	assert.ErrorIs(t, err, ErrMissingProfile)
}

func TestNewProfileResponse(t *testing.T) {
	res, err := NewProfileResponse(testUser(), true)
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"profile":{"username":"jake","bio":"I work at statefarm","image":null,"following":true}}`, string(raw))
}

func TestNewArticleView(t *testing.T) {
	created := time.Date(2024, 2, 18, 3, 22, 56, 0, time.UTC)
	a := &article.Article{
		ID:          10,
		AuthorID:    1,
		Slug:        "how-to-train-your-dragon",
		Title:       "How to train your dragon",
		Description: "Ever wonder how?",
		Body:        "It takes a Jacobian",
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	t.Run("full record", func(t *testing.T) {
		res, err := NewArticleResponse(ArticleRecord{
			Article:        a,
			Author:         testUser(),
			Tags:           []string{"dragons", "training"},
			Favorited:      true,
			FavoritesCount: 3,
			Following:      false,
		})
		require.NoError(t, err)

		assert.Equal(t, "how-to-train-your-dragon", res.Article.Slug)
		assert.Equal(t, []string{"dragons", "training"}, res.Article.TagList)
		assert.True(t, res.Article.Favorited)
		assert.Equal(t, int64(3), res.Article.FavoritesCount)
		assert.Equal(t, "jake", res.Article.Author.Username)
		assert.False(t, res.Article.Author.Following)
	})

	t.Run("nil tags become empty list", func(t *testing.T) {
		view, err := NewArticleView(ArticleRecord{Article: a, Author: testUser()})
		require.NoError(t, err)

		raw, err := json.Marshal(view)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"tagList":[]`)
	})

	t.Run("missing author fails", func(t *testing.T) {
		_, err := NewArticleView(ArticleRecord{Article: a})
		assert.ErrorIs(t, err, ErrMissingUser)
	})

	t.Run("mismatched author fails", func(t *testing.T) {
		other := testUser()
		other.ID = 2
		_, err := NewArticleView(ArticleRecord{Article: a, Author: other})
		assert.Error(t, err)
	})

	t.Run("missing article fails", func(t *testing.T) {
		_, err := NewArticleView(ArticleRecord{Author: testUser()})
		assert.ErrorIs(t, err, ErrMissingArticle)
	})
}

func TestNewArticleListResponse(t *testing.T) {
	res, err := NewArticleListResponse(nil, 0)
	require.NoError(t, err)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"articles":[],"articlesCount":0}`, string(raw))
}

func TestNewCommentResponse(t *testing.T) {
	c := &article.Comment{ID: 5, ArticleID: 10, AuthorID: 1, Body: "Thank you so much!"}

	res, err := NewCommentResponse(CommentRecord{Comment: c, Author: testUser(), Following: true})
	require.NoError(t, err)
	assert.Equal(t, uint(5), res.Comment.ID)
	assert.Equal(t, "Thank you so much!", res.Comment.Body)
	assert.True(t, res.Comment.Author.Following)

	_, err = NewCommentView(CommentRecord{Author: testUser()})
	assert.ErrorIs(t, err, ErrMissingComment)

	list, err := NewCommentListResponse(nil)
	require.NoError(t, err)
	assert.NotNil(t, list.Comments)
}

func TestNewTagListResponse(t *testing.T) {
	assert.Equal(t, []string{}, NewTagListResponse(nil).Tags)
	assert.Equal(t, []string{"go"}, NewTagListResponse([]string{"go"}).Tags)
}

func TestListArticlesQuery_Page(t *testing.T) {
	limit, offset := (*ListArticlesQuery)(nil).Page()
	assert.Equal(t, 20, limit)
	assert.Equal(t, 0, offset)

	five, ten := 5, 10
	limit, offset = (&ListArticlesQuery{Limit: &five, Offset: &ten}).Page()
	assert.Equal(t, 5, limit)
	assert.Equal(t, 10, offset)

	assert.Equal(t, "jake", (&ListArticlesQuery{Username: "jake"}).AuthorFilter())
	assert.Equal(t, "anna", (&ListArticlesQuery{Author: "anna", Username: "jake"}).AuthorFilter())
}

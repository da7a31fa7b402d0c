package article

import (
	"context"
	"testing"

	"terminal-terrace/conduit/internal/dto"
	userModel "terminal-terrace/conduit/internal/model/user"
	"terminal-terrace/conduit/internal/testutils"
	"terminal-terrace/conduit/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCommentService(t *testing.T) (*CommentService, *gorm.DB) {
	db := testutils.SetupTestDB(t)
	repos := NewRepositories(db)
	return NewCommentService(NewArticleService(db, repos), repos), db
}

func loadUser(t *testing.T, db *gorm.DB, id uint) *userModel.User {
	var u userModel.User
	require.NoError(t, db.Preload("Profile").First(&u, id).Error)
	return &u
}

func TestCommentService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	service, db := setupCommentService(t)
	author := testutils.CreateTestUser(db)
	commenter := testutils.CreateTestUser(db, testutils.WithUsername("commenter"))
	testutils.CreateTestArticle(db, author.ID, testutils.WithTitle("Topic", "topic"))
	testutils.Follow(db, author.ID, commenter.ID)

	first, be := service.Create(ctx, loadUser(t, db, commenter.ID), "topic", &dto.CreateComment{Body: "first"})
	require.Nil(t, be)
	assert.NotZero(t, first.Comment.ID)
	assert.Equal(t, "commenter", first.Comment.Author.Username)

	second, be := service.Create(ctx, loadUser(t, db, author.ID), "topic", &dto.CreateComment{Body: "second"})
	require.Nil(t, be)
	assert.Greater(t, second.Comment.ID, first.Comment.ID)

	list, be := service.List(ctx, author.ID, "topic")
	require.Nil(t, be)
	require.Len(t, list.Comments, 2)
	assert.Equal(t, first.Comment.ID, list.Comments[0].ID, "comment ids are stable and oldest first")
	assert.Equal(t, "first", list.Comments[0].Body)
	assert.True(t, list.Comments[0].Author.Following)
	assert.False(t, list.Comments[1].Author.Following)

	be = service.Delete(ctx, author.ID, "topic", first.Comment.ID)
	require.NotNil(t, be)
	assert.Equal(t, response.Forbidden, be.Code)

	require.Nil(t, service.Delete(ctx, commenter.ID, "topic", first.Comment.ID))

	list, be = service.List(ctx, 0, "topic")
	require.Nil(t, be)
	require.Len(t, list.Comments, 1)
	assert.Equal(t, second.Comment.ID, list.Comments[0].ID)
}

func TestCommentService_NotFound(t *testing.T) {
	ctx := context.Background()
	service, db := setupCommentService(t)
	author := testutils.CreateTestUser(db)
	a := testutils.CreateTestArticle(db, author.ID, testutils.WithTitle("One", "one"))
	testutils.CreateTestArticle(db, author.ID, testutils.WithTitle("Two", "two"))
	c := testutils.CreateTestComment(db, a.ID, author.ID, "on one")

	tests := []struct {
		name string
		call func() *response.BusinessError
	}{
		{name: "create on missing article", call: func() *response.BusinessError {
			_, be := service.Create(ctx, loadUser(t, db, author.ID), "missing", &dto.CreateComment{Body: "x"})
			return be
		}},
		{name: "list on missing article", call: func() *response.BusinessError {
			_, be := service.List(ctx, 0, "missing")
			return be
		}},
		{name: "delete missing comment", call: func() *response.BusinessError {
			return service.Delete(ctx, author.ID, "one", c.ID+100)
		}},
		{name: "delete comment under another article", call: func() *response.BusinessError {
			return service.Delete(ctx, author.ID, "two", c.ID)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := tt.call()
			require.NotNil(t, be)
			assert.Equal(t, response.NotFound, be.Code)
		})
	}
}

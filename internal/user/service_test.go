package user

import (
	"context"
	"testing"

	"terminal-terrace/conduit/config"
	"terminal-terrace/conduit/internal/credential"
	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/session"
	"terminal-terrace/conduit/internal/testutils"
	"terminal-terrace/conduit/packages/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserService(t *testing.T) (*UserService, *gorm.DB, *credential.Service) {
	return setupUserServiceWithStore(t, session.NewStore(nil))
}

func setupUserServiceWithStore(t *testing.T, store session.Store) (*UserService, *gorm.DB, *credential.Service) {
	db := testutils.SetupTestDB(t)
	creds := credential.NewService(config.JWTConfig{Secret: "user-test", ExpireTime: 1}, config.AuthConfig{BcryptCost: 4})
	service := NewUserService(db, NewUserRepository(db), creds, session.NewIssuer(creds, store))
	return service, db, creds
}

func strPtr(s string) *string { return &s }

func TestUserRepository_Lookups(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	jake := testutils.CreateTestUser(db, testutils.WithUsername("jake"), testutils.WithEmail("jake@jake.jake"), testutils.WithBio("I work at statefarm"))
	ann := testutils.CreateTestUser(db)

	byName, err := repo.GetByUsername(ctx, "jake")
	require.NoError(t, err)
	assert.Equal(t, jake.ID, byName.ID)
	require.NotNil(t, byName.Profile)
	assert.Equal(t, "I work at statefarm", *byName.Profile.Bio)

	byEmail, err := repo.GetByEmail(ctx, "jake@jake.jake")
	require.NoError(t, err)
	assert.Equal(t, jake.ID, byEmail.ID)

	_, err = repo.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	users, err := repo.GetByIDs(ctx, []uint{jake.ID, ann.ID, 9999})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NotNil(t, users[ann.ID].Profile)

	taken, err := repo.ExistsByEmail(ctx, "jake@jake.jake", 0)
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = repo.ExistsByEmail(ctx, "jake@jake.jake", jake.ID)
	require.NoError(t, err)
	assert.False(t, taken, "a user's own email does not conflict with itself")
	taken, err = repo.ExistsByUsername(ctx, "jake", ann.ID)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("profile fields keep the presented token", func(t *testing.T) {
		service, db, _ := setupUserService(t)
		u := testutils.CreateTestUser(db, testutils.WithImage("https://img/old.png"))
		current, err := NewUserRepository(db).GetByID(ctx, u.ID)
		require.NoError(t, err)

		resp, be := service.Update(ctx, current, "presented", &dto.UpdateUser{
			Bio:   dto.NullableString{Set: true, Valid: true, Value: "I like to skateboard"},
			Image: dto.NullableString{Set: true, Valid: true, Value: ""},
		})
		require.Nil(t, be)
		assert.Equal(t, "presented", resp.User.Token)
		require.NotNil(t, resp.User.Bio)
		assert.Equal(t, "I like to skateboard", *resp.User.Bio)
		assert.Nil(t, resp.User.Image, "empty string clears the image")
	})

	t.Run("explicit null clears the bio", func(t *testing.T) {
		service, db, _ := setupUserService(t)
		u := testutils.CreateTestUser(db, testutils.WithBio("hello"), testutils.WithImage("https://img/keep.png"))
		current, err := NewUserRepository(db).GetByID(ctx, u.ID)
		require.NoError(t, err)

		resp, be := service.Update(ctx, current, "presented", &dto.UpdateUser{
			Bio: dto.NullableString{Set: true},
		})
		require.Nil(t, be)
		assert.Nil(t, resp.User.Bio)
		require.NotNil(t, resp.User.Image, "absent image stays unchanged")
		assert.Equal(t, "https://img/keep.png", *resp.User.Image)
	})

	t.Run("email change issues a new token", func(t *testing.T) {
		service, db, creds := setupUserService(t)
		u := testutils.CreateTestUser(db)
		current, err := NewUserRepository(db).GetByID(ctx, u.ID)
		require.NoError(t, err)

		resp, be := service.Update(ctx, current, "presented", &dto.UpdateUser{Email: strPtr("new@conduit.io")})
		require.Nil(t, be)
		assert.Equal(t, "new@conduit.io", resp.User.Email)
		require.NotEqual(t, "presented", resp.User.Token)

		claims, err := creds.ParseToken(resp.User.Token)
		require.NoError(t, err)
		assert.Equal(t, "new@conduit.io", claims.Email)

		stored, err := NewUserRepository(db).GetByID(ctx, u.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Token)
		assert.Equal(t, resp.User.Token, *stored.Token)
	})

	t.Run("password change rehashes", func(t *testing.T) {
		service, db, creds := setupUserService(t)
		u := testutils.CreateTestUser(db)
		current, err := NewUserRepository(db).GetByID(ctx, u.ID)
		require.NoError(t, err)

		resp, be := service.Update(ctx, current, "presented", &dto.UpdateUser{Password: strPtr("a-brand-new-secret")})
		require.Nil(t, be)
		assert.NotEqual(t, "presented", resp.User.Token)

		stored, err := NewUserRepository(db).GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, creds.VerifyPassword("a-brand-new-secret", stored.PasswordHash))
		assert.False(t, creds.VerifyPassword(testutils.DefaultPassword, stored.PasswordHash))
	})

	t.Run("password change revokes existing sessions", func(t *testing.T) {
		client := testutils.SetupTestRedis(t)
		if client == nil {
			t.Skip("redis not available")
		}
		store := session.NewStore(client)
		service, db, creds := setupUserServiceWithStore(t, store)
		issuer := session.NewIssuer(creds, store)
		u := testutils.CreateTestUser(db)
		current, err := NewUserRepository(db).GetByID(ctx, u.ID)
		require.NoError(t, err)

		old, err := issuer.Issue(ctx, current)
		require.NoError(t, err)
		oldClaims, err := creds.ParseToken(old)
		require.NoError(t, err)

		resp, be := service.Update(ctx, current, old, &dto.UpdateUser{Password: strPtr("a-brand-new-secret")})
		require.Nil(t, be)
		newClaims, err := creds.ParseToken(resp.User.Token)
		require.NoError(t, err)

		active, err := store.Exists(ctx, oldClaims.TokenID)
		require.NoError(t, err)
		assert.False(t, active)
		active, err = store.Exists(ctx, newClaims.TokenID)
		require.NoError(t, err)
		assert.True(t, active)
	})

	t.Run("taken username conflicts", func(t *testing.T) {
		service, db, _ := setupUserService(t)
		testutils.CreateTestUser(db, testutils.WithUsername("taken"))
		u := testutils.CreateTestUser(db)
		current, err := NewUserRepository(db).GetByID(ctx, u.ID)
		require.NoError(t, err)

		_, be := service.Update(ctx, current, "presented", &dto.UpdateUser{Username: strPtr("taken")})
		require.NotNil(t, be)
		assert.Equal(t, response.Conflict, be.Code)

		stored, err := NewUserRepository(db).GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Username, stored.Username)
	})

	t.Run("taken email conflicts", func(t *testing.T) {
		service, db, _ := setupUserService(t)
		testutils.CreateTestUser(db, testutils.WithEmail("taken@conduit.io"))
		u := testutils.CreateTestUser(db)
		current, err := NewUserRepository(db).GetByID(ctx, u.ID)
		require.NoError(t, err)

		_, be := service.Update(ctx, current, "presented", &dto.UpdateUser{Email: strPtr("taken@conduit.io")})
		require.NotNil(t, be)
		assert.Equal(t, response.Conflict, be.Code)
		assert.Equal(t, "email already taken.", be.Msg)
	})
}

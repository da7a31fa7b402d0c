package testutils

import (
	"fmt"
	"strings"

	"terminal-terrace/conduit/internal/model/article"
	"terminal-terrace/conduit/internal/model/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password of users created by CreateTestUser
const DefaultPassword = "password123"

// CreateTestUser creates a test user with its profile and a unique username/email
func CreateTestUser(db *gorm.DB, opts ...UserOption) *user.User {
	uniqueID := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]

	// MinCost keeps fixtures fast
	passwordHash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)

	testUser := &user.User{
		Username:     "user_" + uniqueID,
		Email:        fmt.Sprintf("test_%s@example.com", uniqueID),
		PasswordHash: string(passwordHash),
		Profile:      &user.Profile{},
	}

	for _, opt := range opts {
		opt(testUser)
	}

	if err := db.Create(testUser).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}

	return testUser
}

// UserOption configures test user
type UserOption func(*user.User)

// WithUsername sets the username
func WithUsername(username string) UserOption {
	return func(u *user.User) {
		u.Username = username
	}
}

// WithEmail sets the email
func WithEmail(email string) UserOption {
	return func(u *user.User) {
		u.Email = email
	}
}

// WithPassword sets the password (will be hashed)
func WithPassword(password string) UserOption {
	return func(u *user.User) {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		u.PasswordHash = string(hash)
	}
}

// WithBio sets the profile bio
func WithBio(bio string) UserOption {
	return func(u *user.User) {
		u.Profile.Bio = &bio
	}
}

// WithImage sets the profile image
func WithImage(image string) UserOption {
	return func(u *user.User) {
		u.Profile.Image = &image
	}
}

// CreateTestArticle creates an article owned by authorID, optionally tagged
func CreateTestArticle(db *gorm.DB, authorID uint, opts ...ArticleOption) *article.Article {
	uniqueID := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]

	a := &articleFixture{
		article: &article.Article{
			AuthorID:    authorID,
			Slug:        "test-article-" + uniqueID,
			Title:       "Test Article " + uniqueID,
			Description: "Test description",
			Body:        "Test body",
		},
	}
	for _, opt := range opts {
		opt(a)
	}

	if err := db.Create(a.article).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test article: %v", err))
	}

	for _, name := range a.tags {
		tag := article.Tag{Name: name}
		if err := db.Where(article.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			panic(fmt.Sprintf("Failed to create test tag: %v", err))
		}
		if err := db.Create(&article.ArticleTag{ArticleID: a.article.ID, TagID: tag.ID}).Error; err != nil {
			panic(fmt.Sprintf("Failed to tag test article: %v", err))
		}
	}

	return a.article
}

type articleFixture struct {
	article *article.Article
	tags    []string
}

// ArticleOption configures test article
type ArticleOption func(*articleFixture)

// WithTitle sets the title and slug
func WithTitle(title, slug string) ArticleOption {
	return func(a *articleFixture) {
		a.article.Title = title
		a.article.Slug = slug
	}
}

// WithTags attaches tags to the article
func WithTags(tags ...string) ArticleOption {
	return func(a *articleFixture) {
		a.tags = append(a.tags, tags...)
	}
}

// CreateTestComment creates a comment on articleID by authorID
func CreateTestComment(db *gorm.DB, articleID, authorID uint, body string) *article.Comment {
	c := &article.Comment{ArticleID: articleID, AuthorID: authorID, Body: body}
	if err := db.Create(c).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test comment: %v", err))
	}
	return c
}

// Follow makes followerID follow the profile of user followedUserID
func Follow(db *gorm.DB, followerID, followedUserID uint) {
	var profile user.Profile
	if err := db.Where("user_id = ?", followedUserID).First(&profile).Error; err != nil {
		panic(fmt.Sprintf("Failed to find profile: %v", err))
	}
	if err := db.Create(&user.FollowProfile{UserID: followerID, ProfileID: profile.ID}).Error; err != nil {
		panic(fmt.Sprintf("Failed to follow: %v", err))
	}
}

// Favorite marks articleID as favorited by userID
func Favorite(db *gorm.DB, userID, articleID uint) {
	if err := db.Create(&article.Favorite{UserID: userID, ArticleID: articleID}).Error; err != nil {
		panic(fmt.Sprintf("Failed to favorite: %v", err))
	}
}

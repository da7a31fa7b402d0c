package auth

import (
	"context"
	"errors"

	"terminal-terrace/conduit/internal/dto"
	"terminal-terrace/conduit/internal/logging"
	userModel "terminal-terrace/conduit/internal/model/user"
	"terminal-terrace/conduit/internal/session"
	userPkg "terminal-terrace/conduit/internal/user"
	"terminal-terrace/conduit/packages/response"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Credentials 密码哈希与校验
type Credentials interface {
	HashPassword(plaintext string) (string, error)
	VerifyPassword(plaintext, hash string) bool
}

type AuthService struct {
	db     *gorm.DB
	users  userPkg.UserRepository
	creds  Credentials
	issuer *session.Issuer
}

func NewAuthService(db *gorm.DB, users userPkg.UserRepository, creds Credentials, issuer *session.Issuer) *AuthService {
	return &AuthService{db: db, users: users, creds: creds, issuer: issuer}
}

var errInvalidCredentials = response.NewError(response.Unauthorized, "invalid credentials.")

// Register 在一个事务中创建用户与资料并签发令牌
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterUser) (dto.AuthResponse, *response.BusinessError) {
	hash, err := s.creds.HashPassword(req.Password)
	if err != nil {
		return dto.AuthResponse{}, response.Internal(err)
	}

	var (
		created *userModel.User
		token   string
		bizErr  *response.BusinessError
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := s.users.WithTx(tx)

		if be := s.checkAvailable(ctx, users, req.Email, req.Username); be != nil {
			bizErr = be
			return be
		}

		u := &userModel.User{
			Email:        req.Email,
			Username:     req.Username,
			PasswordHash: hash,
			Profile:      &userModel.Profile{},
		}
		if err := users.Create(ctx, u); err != nil {
			return err
		}

		token, err = s.issuer.Issue(ctx, u)
		if err != nil {
			return err
		}
		if err := users.UpdateToken(ctx, u.ID, token); err != nil {
			return err
		}
		created = u
		return nil
	})
	if bizErr != nil {
		return dto.AuthResponse{}, bizErr
	}
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.AuthResponse{}, response.NewError(response.Conflict, "email or username already taken.", response.WithError(err))
		}
		return dto.AuthResponse{}, response.Internal(err)
	}

	resp, err := dto.NewAuthResponse(created, token)
	if err != nil {
		return dto.AuthResponse{}, response.Internal(err)
	}
	return resp, nil
}

func (s *AuthService) checkAvailable(ctx context.Context, users userPkg.UserRepository, email, username string) *response.BusinessError {
	taken, err := users.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return response.Internal(err)
	}
	if taken {
		return response.NewError(response.Conflict, "email already taken.")
	}

	taken, err = users.ExistsByUsername(ctx, username, 0)
	if err != nil {
		return response.Internal(err)
	}
	if taken {
		return response.NewError(response.Conflict, "username already taken.")
	}
	return nil
}

// Login 按邮箱查找用户、校验密码并签发新令牌；邮箱不存在与密码错误返回同一错误
func (s *AuthService) Login(ctx context.Context, req *dto.LoginUser) (dto.AuthResponse, *response.BusinessError) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AuthResponse{}, errInvalidCredentials
		}
		return dto.AuthResponse{}, response.Internal(err)
	}
	if !s.creds.VerifyPassword(req.Password, u.PasswordHash) {
		return dto.AuthResponse{}, errInvalidCredentials
	}

	token, err := s.issuer.Issue(ctx, u)
	if err != nil {
		return dto.AuthResponse{}, response.Internal(err)
	}
	if err := s.users.UpdateToken(ctx, u.ID, token); err != nil {
		return dto.AuthResponse{}, response.Internal(err)
	}

	resp, err := dto.NewAuthResponse(u, token)
	if err != nil {
		return dto.AuthResponse{}, response.Internal(err)
	}
	return resp, nil
}

// Logout 撤销当前令牌，并记录该用户剩余的会话数
func (s *AuthService) Logout(ctx context.Context, userID uint, tokenID string) *response.BusinessError {
	if err := s.issuer.Revoke(ctx, tokenID); err != nil {
		return response.Internal(err)
	}

	remaining, err := s.issuer.ActiveSessions(ctx, userID)
	if err != nil {
		logging.WithContext(ctx).WithError(err).Warn("count active sessions failed")
		return nil
	}
	logging.WithFields(ctx, logrus.Fields{
		"user_id":         userID,
		"active_sessions": remaining,
	}).Info("user logged out")
	return nil
}

package user

import (
	"context"
	"errors"

	"terminal-terrace/conduit/internal/dto"
	userModel "terminal-terrace/conduit/internal/model/user"
	"terminal-terrace/conduit/internal/session"
	"terminal-terrace/conduit/packages/response"

	"gorm.io/gorm"
)

// PasswordHasher 密码哈希
type PasswordHasher interface {
	HashPassword(plaintext string) (string, error)
}

type UserService struct {
	db     *gorm.DB
	repo   UserRepository
	hasher PasswordHasher
	issuer *session.Issuer
}

func NewUserService(db *gorm.DB, repo UserRepository, hasher PasswordHasher, issuer *session.Issuer) *UserService {
	return &UserService{db: db, repo: repo, hasher: hasher, issuer: issuer}
}

// GetCurrent 返回当前用户，令牌沿用请求携带的令牌
func (s *UserService) GetCurrent(current *userModel.User, token string) (dto.AuthResponse, *response.BusinessError) {
	resp, err := dto.NewAuthResponse(current, token)
	if err != nil {
		return dto.AuthResponse{}, response.Internal(err)
	}
	return resp, nil
}

// Update 在一个事务中更新账号与资料。修改密码会撤销该用户的全部会话并签发新令牌；
// 修改邮箱会签发新令牌
func (s *UserService) Update(ctx context.Context, current *userModel.User, token string, req *dto.UpdateUser) (dto.AuthResponse, *response.BusinessError) {
	var (
		updated *userModel.User
		bizErr  *response.BusinessError
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		account, profile, be := s.buildChanges(ctx, repo, current, req)
		if be != nil {
			bizErr = be
			return be
		}
		if err := repo.UpdateAccount(ctx, current.ID, account); err != nil {
			return err
		}
		if err := repo.UpdateProfile(ctx, current.ID, profile); err != nil {
			return err
		}

		u, err := repo.GetByID(ctx, current.ID)
		if err != nil {
			return err
		}

		_, passwordChanged := account["password_hash"]
		emailChanged := u.Email != current.Email
		if passwordChanged {
			if err := s.issuer.RevokeAll(ctx, u.ID); err != nil {
				return err
			}
		}
		if passwordChanged || emailChanged {
			token, err = s.issuer.Issue(ctx, u)
			if err != nil {
				return err
			}
			if err := repo.UpdateToken(ctx, u.ID, token); err != nil {
				return err
			}
		}

		updated = u
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

	resp, err := dto.NewAuthResponse(updated, token)
	if err != nil {
		return dto.AuthResponse{}, response.Internal(err)
	}
	return resp, nil
}

func (s *UserService) buildChanges(ctx context.Context, repo UserRepository, current *userModel.User, req *dto.UpdateUser) (map[string]interface{}, map[string]interface{}, *response.BusinessError) {
	account := map[string]interface{}{}
	profile := map[string]interface{}{}

	if req.Email != nil && *req.Email != current.Email {
		taken, err := repo.ExistsByEmail(ctx, *req.Email, current.ID)
		if err != nil {
			return nil, nil, response.Internal(err)
		}
		if taken {
			return nil, nil, response.NewError(response.Conflict, "email already taken.")
		}
		account["email"] = *req.Email
	}

	if req.Username != nil && *req.Username != current.Username {
		taken, err := repo.ExistsByUsername(ctx, *req.Username, current.ID)
		if err != nil {
			return nil, nil, response.Internal(err)
		}
		if taken {
			return nil, nil, response.NewError(response.Conflict, "username already taken.")
		}
		account["username"] = *req.Username
	}

	if req.Password != nil {
		hash, err := s.hasher.HashPassword(*req.Password)
		if err != nil {
			return nil, nil, response.Internal(err)
		}
		account["password_hash"] = hash
	}

	if req.Bio.Set {
		profile["bio"] = nullable(req.Bio)
	}
	if req.Image.Set {
		profile["image"] = nullable(req.Image)
	}

	return account, profile, nil
}

// null 与空字符串都清空字段
func nullable(v dto.NullableString) interface{} {
	if v.Cleared() {
		return nil
	}
	return v.Value
}

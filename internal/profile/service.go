package profile

import (
	"context"
	"errors"

	"terminal-terrace/conduit/internal/dto"
	userModel "terminal-terrace/conduit/internal/model/user"
	userPkg "terminal-terrace/conduit/internal/user"
	"terminal-terrace/conduit/packages/response"

	"gorm.io/gorm"
)

type ProfileService struct {
	users   userPkg.UserRepository
	follows FollowRepository
}

func NewProfileService(users userPkg.UserRepository, follows FollowRepository) *ProfileService {
	return &ProfileService{users: users, follows: follows}
}

// Get 获取资料；viewerID 为 0 表示匿名
func (s *ProfileService) Get(ctx context.Context, viewerID uint, username string) (dto.ProfileResponse, *response.BusinessError) {
	target, be := s.findUser(ctx, username)
	if be != nil {
		return dto.ProfileResponse{}, be
	}

	following, err := s.follows.IsFollowing(ctx, viewerID, target.ID)
	if err != nil {
		return dto.ProfileResponse{}, response.Internal(err)
	}
	return s.present(target, following)
}

// Follow 关注，不能关注自己
func (s *ProfileService) Follow(ctx context.Context, followerID uint, username string) (dto.ProfileResponse, *response.BusinessError) {
	target, be := s.findUser(ctx, username)
	if be != nil {
		return dto.ProfileResponse{}, be
	}
	if target.ID == followerID {
		return dto.ProfileResponse{}, response.NewError(response.ParseError, "you cannot follow yourself.")
	}

	if err := s.follows.Follow(ctx, followerID, target.ID); err != nil {
		return dto.ProfileResponse{}, response.Internal(err)
	}
	return s.present(target, true)
}

// Unfollow 取消关注
func (s *ProfileService) Unfollow(ctx context.Context, followerID uint, username string) (dto.ProfileResponse, *response.BusinessError) {
	target, be := s.findUser(ctx, username)
	if be != nil {
		return dto.ProfileResponse{}, be
	}

	if err := s.follows.Unfollow(ctx, followerID, target.ID); err != nil {
		return dto.ProfileResponse{}, response.Internal(err)
	}
	return s.present(target, false)
}

func (s *ProfileService) findUser(ctx context.Context, username string) (*userModel.User, *response.BusinessError) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewError(response.NotFound, "profile not found.")
		}
		return nil, response.Internal(err)
	}
	return u, nil
}

func (s *ProfileService) present(u *userModel.User, following bool) (dto.ProfileResponse, *response.BusinessError) {
	resp, err := dto.NewProfileResponse(u, following)
	if err != nil {
		return dto.ProfileResponse{}, response.Internal(err)
	}
	return resp, nil
}

package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chlyn/COSC369-Final-Project/internal/dto"
	"github.com/chlyn/COSC369-Final-Project/internal/model"
	"github.com/chlyn/COSC369-Final-Project/internal/repository"
)

var ErrEmptyName = errors.New("name must not be empty")

// UserService profile reads and edits
type UserService interface {
	Get(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	UpdateAcademic(ctx context.Context, userID string, req *dto.UpdateAcademicRequest) (*dto.UserResponse, error)
	UpdatePassword(ctx context.Context, userID, password string) error
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) load(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (s *userService) save(ctx context.Context, user *model.User) error {
	if err := s.repo.User.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailExists
		}
		s.logger.Error("update user failed", zap.String("user_id", user.UserID), zap.Error(err))
		return err
	}
	return nil
}

func (s *userService) Get(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// UpdateProfile changes display name and/or email. A new display name is
// split on the first space into first and last name.
func (s *userService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.Join(strings.Fields(*req.Name), " ")
		if name == "" {
			return nil, ErrEmptyName
		}
		user.Name = name
		first, last, _ := strings.Cut(name, " ")
		user.FirstName, user.LastName = first, last
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != user.Email {
			if other, err := s.repo.User.GetByEmail(ctx, email); err == nil && other.UserID != user.UserID {
				return nil, ErrEmailExists
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("lookup user by email failed", zap.Error(err))
				return nil, err
			}
			user.Email = email
		}
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateAcademic(ctx context.Context, userID string, req *dto.UpdateAcademicRequest) (*dto.UserResponse, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Major != nil {
		user.Major = strings.TrimSpace(*req.Major)
	}
	if req.Minor != nil {
		user.Minor = strings.TrimSpace(*req.Minor)
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdatePassword(ctx context.Context, userID, password string) error {
	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return err
	}
	user.PasswordHash = string(hash)

	return s.save(ctx, user)
}

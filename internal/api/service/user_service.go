package service

import (
	"context"
	"errors"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validate"

	"gorm.io/gorm"
)

var ErrInvalidRole = errors.New("unknown role")

// UserService backs both the admin user-management endpoints and /users/me.
type UserService interface {
	Create(ctx context.Context, in dto.CreateUserDTO) (*dto.UserResponse, error)
	Update(ctx context.Context, username string, patch dto.UpdateUserDTO) (*dto.UserResponse, error)
	Delete(ctx context.Context, username string) error
	GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error)
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error)

	GetMe(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateMe(ctx context.Context, userID string, patch dto.UpdateUserDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, in dto.CreateUserDTO) (*dto.UserResponse, error) {
	if err := validate.Username(in.Username); err != nil {
		return nil, err
	}
	if err := validate.Email(in.Email); err != nil {
		return nil, err
	}

	role := models.RoleUser
	if in.Role != "" {
		role = models.Role(in.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			// Username and email each carry a unique index; look the
			// username up to tell which one collided.
			if _, lookupErr := s.userRepo.FindByUsername(ctx, in.Username); lookupErr == nil {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return dto.UserFromModel(user), nil
}

func (s *userService) Update(ctx context.Context, username string, patch dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.applyPatch(ctx, user, patch, true)
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.UserFromModel(user), nil
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated[dto.UserResponse], error) {
	users, total, err := s.userRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.UserFromModel(&users[i]))
	}

	return dto.NewPaginated(responses, int(total), page, pageSize), nil
}

func (s *userService) GetMe(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.UserFromModel(user), nil
}

// UpdateMe lets a user edit their own profile. The role field is ignored:
// nobody promotes themselves.
func (s *userService) UpdateMe(ctx context.Context, userID string, patch dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.applyPatch(ctx, user, patch, false)
}

func (s *userService) applyPatch(ctx context.Context, user *models.User, patch dto.UpdateUserDTO, allowRole bool) (*dto.UserResponse, error) {
	if patch.Email != nil {
		if err := validate.Email(*patch.Email); err != nil {
			return nil, err
		}
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = *patch.Bio
	}
	if patch.Role != nil && allowRole {
		role := models.Role(*patch.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return dto.UserFromModel(user), nil
}

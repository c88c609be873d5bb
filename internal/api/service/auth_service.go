package service

import (
	"context"
	"errors"
	"time"

	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/validate"
	"reviewhub/internal/auth"
	"reviewhub/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken           = errors.New("username already in use")
	ErrEmailTaken              = errors.New("email already in use")
	ErrInvalidConfirmationCode = errors.New("invalid confirmation code")
	ErrInvalidToken            = errors.New("invalid token")
)

// Claims is the decoded access token payload.
type Claims struct {
	UserID    string
	Username  string
	Role      models.Role
	Superuser bool
}

// CodeSender delivers a confirmation code out-of-band (email in production).
type CodeSender interface {
	SendCode(ctx context.Context, email, code string) error
}

type AuthService interface {
	SignUp(ctx context.Context, username, email string) error
	IssueToken(ctx context.Context, username, confirmationCode string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	userRepo       repository.UserRepository
	codeSender     CodeSender
	jwtSecret      string
	accessTokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, codeSender CodeSender, cfg *config.Config) AuthService {
	return &authService{
		userRepo:       userRepo,
		codeSender:     codeSender,
		jwtSecret:      cfg.JWTSecret,
		accessTokenTTL: cfg.AccessTokenTTL,
	}
}

// SignUp runs the first half of the passwordless flow. A request repeating an
// existing (username, email) pair rotates that account's confirmation code;
// a username or email that is taken by a different account is a conflict.
// Codes stay valid until the next rotation; a successful token exchange does
// not consume them.
func (s *authService) SignUp(ctx context.Context, username, email string) error {
	if err := validate.Username(username); err != nil {
		return err
	}
	if err := validate.Email(email); err != nil {
		return err
	}

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if user != nil {
		if user.Email != email {
			return ErrUsernameTaken
		}
		return s.rotateCode(ctx, user)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user = &models.User{
		Username: username,
		Email:    email,
		Role:     models.RoleUser,
	}
	code := uuid.New().String()
	hash, err := auth.HashCode(code)
	if err != nil {
		return err
	}
	user.ConfirmationCodeHash = hash

	if err := s.userRepo.Create(ctx, user); err != nil {
		// the unique index wins over our pre-checks under concurrency
		if repository.IsUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return err
	}

	return s.codeSender.SendCode(ctx, email, code)
}

// rotateCode issues a fresh confirmation code for an existing account,
// invalidating the previous one.
func (s *authService) rotateCode(ctx context.Context, user *models.User) error {
	code := uuid.New().String()
	hash, err := auth.HashCode(code)
	if err != nil {
		return err
	}
	user.ConfirmationCodeHash = hash

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	return s.codeSender.SendCode(ctx, user.Email, code)
}

// IssueToken exchanges username + confirmation code for an access token.
func (s *authService) IssueToken(ctx context.Context, username, confirmationCode string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// dummy compare to keep timing uniform for unknown users
			auth.VerifyCode(auth.DummyCompareHash, confirmationCode)
			return "", ErrUserNotFound
		}
		return "", err
	}

	if user.ConfirmationCodeHash == "" {
		auth.VerifyCode(auth.DummyCompareHash, confirmationCode)
		return "", ErrInvalidConfirmationCode
	}
	if err := auth.VerifyCode(user.ConfirmationCodeHash, confirmationCode); err != nil {
		return "", ErrInvalidConfirmationCode
	}

	return s.generateAccessToken(user)
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.ID,
		"username":  user.Username,
		"role":      string(user.Role),
		"superuser": user.Superuser,
		"exp":       time.Now().Add(s.accessTokenTTL).Unix(),
		"iat":       time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	if claims.UserID, ok = mapClaims["user_id"].(string); !ok {
		return nil, ErrInvalidToken
	}
	if claims.Username, ok = mapClaims["username"].(string); !ok {
		return nil, ErrInvalidToken
	}
	role, ok := mapClaims["role"].(string)
	if !ok || !models.Role(role).Valid() {
		return nil, ErrInvalidToken
	}
	claims.Role = models.Role(role)
	claims.Superuser, _ = mapClaims["superuser"].(bool)

	return claims, nil
}

package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/classroom-portal/internal/dto"
	"github.com/noah-isme/classroom-portal/internal/models"
	"github.com/noah-isme/classroom-portal/internal/repository"
	appErrors "github.com/noah-isme/classroom-portal/pkg/errors"
)

// AuthService checks credentials and registers accounts against the users collection.
type AuthService struct {
	users     repository.Repository[models.User]
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users repository.Repository[models.User], validate *validator.Validate, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AuthService{users: users, validator: validate, logger: logger, now: time.Now}
}

// Authenticate returns the first user whose email and password both match
// exactly. Passwords are compared in plaintext.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	for _, u := range loadAll(ctx, s.users, s.logger) {
		if u.Email == email && u.Password == password {
			user := u
			return &user, nil
		}
	}
	s.logger.Info("login rejected", zap.String("email", email))
	return nil, appErrors.ErrInvalidCredentials
}

// Register appends a new account unless the email is already taken.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation, "invalid signup payload")
	}

	users := loadAll(ctx, s.users, s.logger)
	for _, u := range users {
		if u.Email == req.Email {
			return nil, appErrors.ErrEmailTaken
		}
	}

	user := models.User{
		UserID:   s.users.NextID(users),
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.UserRole(req.Role),
		JoinDate: timestamp(s.now),
	}
	users = append(users, user)
	persist(ctx, s.users, users, s.logger, "register")

	s.logger.Info("account registered", zap.Int("user_id", user.UserID), zap.String("role", string(user.Role)))
	return &user, nil
}

package services

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/utils"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

const (
	msgEmailTaken         = "email already exists"
	msgInvalidCredentials = "invalid email or password"
)

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.Validation("password must be at least 6 characters")
	}
	return nil
}

// Create registers a user. The requested role is honoured only when
// allowRole is set (the caller is an admin); everybody else signs up as a
// customer.
func (s *UserService) Create(ctx context.Context, input models.SignupData, allowRole bool) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || name == "" || input.Password == "" {
		return nil, apperrors.Validation("email, name and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.Validation("invalid email address")
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	role := models.RoleCustomer
	if allowRole && input.Role != "" {
		if !input.Role.Valid() {
			return nil, apperrors.Validation("invalid user_type")
		}
		role = input.Role
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperrors.Validation(msgEmailTaken)
	} else if !apperrors.Is(err, apperrors.KindNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := &models.User{
		Email:    email,
		Name:     name,
		Password: hashed,
		Role:     role,
		Address:  strings.TrimSpace(input.Address),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.Is(err, apperrors.KindConflict) {
			return nil, apperrors.Validation(msgEmailTaken)
		}
		return nil, err
	}

	slog.Info("user created", "email", user.Email, "user_type", user.Role)
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, input models.LoginData) (*models.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil, apperrors.Unauthorized(msgInvalidCredentials)
		}
		return nil, err
	}
	if err := utils.ComparePasswords(user.Password, input.Password); err != nil {
		return nil, apperrors.Unauthorized(msgInvalidCredentials)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, NormalizeEmail(email))
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// Update applies a partial profile edit on behalf of actor. Users may edit
// themselves; only admins may edit others or change a role.
func (s *UserService) Update(ctx context.Context, actor models.Session, id uint, input models.UserUpdate) (*models.User, error) {
	if !actor.CanAccessUser(id) {
		return nil, apperrors.Forbidden("you may only edit your own account")
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.Validation("name must not be empty")
		}
		user.Name = name
	}
	if input.Password != nil && *input.Password != "" {
		if err := validatePassword(*input.Password); err != nil {
			return nil, err
		}
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, apperrors.Internal("failed to hash password", err)
		}
		user.Password = hashed
	}
	if input.Role != nil && *input.Role != user.Role {
		if !actor.IsAdmin() {
			return nil, apperrors.Forbidden("only admins may change user_type")
		}
		if !input.Role.Valid() {
			return nil, apperrors.Validation("invalid user_type")
		}
		user.Role = *input.Role
	}
	if input.Address != nil {
		user.Address = strings.TrimSpace(*input.Address)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}

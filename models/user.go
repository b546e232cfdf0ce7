package models

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/TripCast/tripcast-backend/errors"
	"github.com/TripCast/tripcast-backend/logger"
	"github.com/TripCast/tripcast-backend/types"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserStore is the persistence surface UserModel depends on.
type UserStore interface {
	CreateUser(ctx context.Context, user *types.User) error
	GetUserByID(ctx context.Context, id string) (*types.User, error)
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
}

type UserModel struct {
	store UserStore
}

func NewUserModel(store UserStore) *UserModel {
	return &UserModel{store: store}
}

// Register creates a new account with a bcrypt-hashed password.
func (um *UserModel) Register(ctx context.Context, req *types.RegisterUserRequest) (*types.UserView, error) {
	log := logger.GetLogger()

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.ValidationFailed("Invalid email", "a valid email address is required")
	}
	if len(req.Password) < 6 {
		return nil, apperrors.ValidationFailed("Invalid password", "password must be at least 6 characters")
	}
	if req.Name == "" {
		return nil, apperrors.ValidationFailed("Name is required", "name must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.InternalServerError("failed to hash password")
	}

	user := &types.User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     req.Name,
		Password: string(hash),
	}
	if err := um.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	log.Infow("User registered", "userId", user.ID, "email", logger.MaskEmail(user.Email))
	return types.ProjectUser(user), nil
}

// Login verifies the credentials and returns the account without its password
// hash. A missing account and a wrong password are indistinguishable to the
// caller.
func (um *UserModel) Login(ctx context.Context, req *types.LoginRequest) (*types.UserView, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := um.store.GetUserByEmail(ctx, email)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.NotFoundError {
			return nil, apperrors.AuthenticationFailed("Invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperrors.AuthenticationFailed("Invalid email or password")
	}

	return types.ProjectUser(user), nil
}

func (um *UserModel) GetUser(ctx context.Context, id string) (*types.UserView, error) {
	user, err := um.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return types.ProjectUser(user), nil
}

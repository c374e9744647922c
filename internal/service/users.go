package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/kasperbn/poster_shop/internal/hash"
	"github.com/kasperbn/poster_shop/internal/models"
	"github.com/kasperbn/poster_shop/internal/repo"
	"github.com/kasperbn/poster_shop/internal/tokens"
	"github.com/kasperbn/poster_shop/internal/transport"
)

type UserService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

type AuthResult struct {
	User  *models.User
	Token string
}

func (s *UserService) Register(ctx context.Context, req transport.RegisterRequest) (*AuthResult, error) {
	if req.Firstname == "" || req.Lastname == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("firstname, lastname, email and password are required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Firstname:    req.Firstname,
		Lastname:     req.Lastname,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
		IsActive:     true,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return nil, fmt.Errorf("email already in use: %w", ErrConflict)
		}
		return nil, err
	}

	token, err := tokens.SignAccessToken(user.ID, user.Email, user.Role, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: &user, Token: token}, nil
}

func (s *UserService) Login(ctx context.Context, req transport.LoginRequest) (*AuthResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.SignAccessToken(user.ID, user.Email, user.Role, s.JWTSecret)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.GetUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.Repo.GetUser(ctx, id)
}

func (s *UserService) PatchUser(ctx context.Context, req transport.PatchUserRequest, id uint) (*models.User, error) {
	return s.Repo.PatchUser(ctx, req, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.Repo.DeleteUser(ctx, id)
}

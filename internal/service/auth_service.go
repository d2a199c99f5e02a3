package service

import (
	"context"
	"errors"
	"fmt"

	"contingent-booking-api-server/internal/auth"
	"contingent-booking-api-server/internal/models"
	"contingent-booking-api-server/internal/repository"
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type TokenIssuer interface {
	Generate(userID, email, role string) (string, error)
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
}

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login checks the credentials of an active admin account and issues a token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if user.Status != models.UserStatusActive || !auth.CheckPasswordHash(in.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &LoginResult{Token: token, User: user}, nil
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/privnurse/privnurse/internal/model"
	appErr "github.com/privnurse/privnurse/internal/pkg/errors"
	"github.com/privnurse/privnurse/internal/pkg/jwt"
	"github.com/privnurse/privnurse/internal/pkg/password"
	"github.com/privnurse/privnurse/internal/repo"
)

type LoginResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

type CreateUserRequest struct {
	Username      string  `json:"username" binding:"required"`
	Password      string  `json:"password" binding:"required,min=8"`
	Role          string  `json:"role"`
	Email         *string `json:"email"`
	FullName      *string `json:"full_name"`
	LicenseNumber *string `json:"license_number"`
	Department    *string `json:"department"`
}

type AuthService struct {
	users  *repo.UserRepo
	audits *AuditService
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users *repo.UserRepo, audits *AuditService, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, audits: audits, secret: []byte(secret), ttl: ttl}
}

// Login checks credentials and issues a token. Unknown usernames and wrong
// passwords return the same unauthorized error.
func (s *AuthService) Login(ctx context.Context, username, plain, ip string) (*LoginResult, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if appErr.IsNotFound(err) {
			return nil, fmt.Errorf("%w: bad credentials", appErr.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account disabled", appErr.ErrUnauthorized)
	}
	if err := password.Compare(user.PasswordHash, plain); err != nil {
		return nil, fmt.Errorf("%w: bad credentials", appErr.ErrUnauthorized)
	}
	token, err := jwt.GenerateToken(user.ID, user.Username, user.Role, s.secret, s.ttl)
	if err != nil {
		return nil, err
	}
	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, err
	}
	s.audits.Record(ctx, user.ID, "login", "users", user.ID, nil, ip)
	return &LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// CreateUser registers a new account; admin only, enforced by the caller.
func (s *AuthService) CreateUser(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return nil, fmt.Errorf("%w: username is required", appErr.ErrInvalid)
	}
	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if role != model.RoleAdmin && role != model.RoleUser {
		return nil, fmt.Errorf("%w: unknown role %q", appErr.ErrInvalid, role)
	}
	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("%w: username taken", appErr.ErrDuplicate)
	} else if !appErr.IsNotFound(err) {
		return nil, err
	}
	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:      req.Username,
		PasswordHash:  hash,
		Role:          role,
		Email:         req.Email,
		FullName:      req.FullName,
		LicenseNumber: req.LicenseNumber,
		Department:    req.Department,
		IsActive:      true,
	}
	id, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

func (s *AuthService) ResetPassword(ctx context.Context, userID int64, plain string) error {
	if len(plain) < 8 {
		return fmt.Errorf("%w: password too short", appErr.ErrInvalid)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return err
	}
	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

// Package session handles sign-in for already-registered accounts: password
// login by phone or email, Google ID token login, and profile lookups.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/infrastructure/google"
	"github.com/codeedexprojects/poky-backend/internal/pkg/id"
	"golang.org/x/crypto/bcrypt"
)

// LoginResult is returned on any successful sign-in.
type LoginResult struct {
	User  *domain.User
	Token string
}

type Service interface {
	// Login authenticates with phone or email plus password. Exactly one of
	// phone and email must be set.
	Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error)
	// GoogleLogin verifies a Google ID token, linking it to an existing
	// account by email or creating a new one.
	GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error)
	// Profile returns the account for an authenticated user ID.
	Profile(ctx context.Context, userID string) (*domain.User, error)
	// Coupons lists the promotional codes minted for the user.
	Coupons(ctx context.Context, userID string) ([]domain.Coupon, error)
	// ChangePassword replaces the password after checking the current one.
	ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type couponStore interface {
	GetByUser(ctx context.Context, userID string) ([]domain.Coupon, error)
}

type tokenVerifier interface {
	Verify(ctx context.Context, token string) (*google.Payload, error)
}

type tokenSigner interface {
	Sign(userID, role string) (string, error)
}

type service struct {
	users   userStore
	coupons couponStore
	google  tokenVerifier
	tokens  tokenSigner
}

type ServiceDeps struct {
	UserRepo   userStore
	CouponRepo couponStore
	Google     tokenVerifier
	Tokens     tokenSigner
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:   deps.UserRepo,
		coupons: deps.CouponRepo,
		google:  deps.Google,
		tokens:  deps.Tokens,
	}
}

func (s *service) Login(ctx context.Context, req domain.LoginRequest) (*LoginResult, error) {
	var (
		u   *domain.User
		err error
	)
	switch {
	case req.Phone != "":
		u, err = s.users.GetByPhone(ctx, req.Phone)
	case req.Email != "":
		u, err = s.users.GetByEmail(ctx, req.Email)
	default:
		return nil, fmt.Errorf("phone or email is required: %w", domain.ErrBadRequest)
	}
	if err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if u.Enable == 0 || u.DeletedAt != nil {
		return nil, fmt.Errorf("account is disabled: %w", domain.ErrForbidden)
	}
	if u.PasswordHash == "" {
		// Google-only account, no password to check against.
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	}
	if s.tokens == nil {
		return nil, fmt.Errorf("token signing is not configured: %w", domain.ErrDependency)
	}

	token, err := s.tokens.Sign(u.UserID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Token: token}, nil
}

func (s *service) GoogleLogin(ctx context.Context, idToken string) (*LoginResult, error) {
	if s.google == nil {
		return nil, fmt.Errorf("google login is not configured: %w", domain.ErrDependency)
	}
	payload, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, err
	}
	if !payload.EmailVerified {
		return nil, fmt.Errorf("google email is not verified: %w", domain.ErrUnauthorized)
	}

	u, err := s.users.GetByEmail(ctx, payload.Email)
	switch {
	case err == nil:
		if u.Enable == 0 || u.DeletedAt != nil {
			return nil, fmt.Errorf("account is disabled: %w", domain.ErrForbidden)
		}
		if u.GoogleSub == "" {
			if err := s.users.Update(ctx, u.UserID, map[string]interface{}{"google_sub": payload.Sub}); err != nil {
				return nil, err
			}
			u.GoogleSub = payload.Sub
		}
	default:
		now := time.Now().UTC()
		u = &domain.User{
			UserID:       id.New(),
			Name:         payload.Name,
			Email:        payload.Email,
			Role:         domain.RoleUser,
			AuthProvider: "google",
			GoogleSub:    payload.Sub,
			Enable:       1,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.users.Put(ctx, u); err != nil {
			return nil, err
		}
	}

	if s.tokens == nil {
		return nil, fmt.Errorf("token signing is not configured: %w", domain.ErrDependency)
	}
	token, err := s.tokens.Sign(u.UserID, u.Role)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Token: token}, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return u, nil
}

func (s *service) Coupons(ctx context.Context, userID string) ([]domain.Coupon, error) {
	return s.coupons.GetByUser(ctx, userID)
}

func (s *service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)) != nil {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, userID, map[string]interface{}{"password_hash": string(hash)})
}

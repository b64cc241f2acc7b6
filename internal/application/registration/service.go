package registration

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/pkg/id"
	"github.com/codeedexprojects/poky-backend/internal/pkg/otp"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// VerifyResult is returned on successful OTP verification.
type VerifyResult struct {
	User       *domain.User
	Token      string
	CouponCode string // empty unless the registration was a walk-in
}

type Service interface {
	// Start stages a registration keyed by email and emails a 6-digit code.
	// Any prior pending registration for the same email is replaced.
	Start(ctx context.Context, req domain.RegisterRequest) error
	// Verify consumes the pending registration and creates the account.
	Verify(ctx context.Context, email, code string) (*VerifyResult, error)
	// Resend regenerates the code for an existing pending registration.
	Resend(ctx context.Context, email string) error

	StartPasswordReset(ctx context.Context, email string) error
	VerifyPasswordReset(ctx context.Context, email, code string) (tempToken string, err error)
	CompletePasswordReset(ctx context.Context, tempToken, newPassword string) error
}

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	Put(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

type sessionStore interface {
	PutPending(ctx context.Context, p *domain.PendingRegistration, ttl time.Duration) error
	GetPending(ctx context.Context, email string) (*domain.PendingRegistration, error)
	DeletePending(ctx context.Context, email string) (bool, error)
	PutReset(ctx context.Context, r *domain.PasswordResetSession, ttl time.Duration) error
	GetReset(ctx context.Context, email string) (*domain.PasswordResetSession, error)
	DeleteReset(ctx context.Context, email string) (bool, error)
}

type couponStore interface {
	Put(ctx context.Context, c *domain.Coupon) error
}

type notifier interface {
	SendOTPEmail(to, code, displayName string) error
}

type tokenProvider interface {
	Sign(userID, role string) (string, error)
	SignReset(email string) (string, error)
	VerifyReset(token string) (string, error)
}

type service struct {
	users      userStore
	sessions   sessionStore
	coupons    couponStore
	mailer     notifier
	tokens     tokenProvider
	sessionTTL time.Duration
}

type ServiceDeps struct {
	UserRepo     userStore
	SessionStore sessionStore
	CouponRepo   couponStore
	Mailer       notifier
	Tokens       tokenProvider
	SessionTTL   time.Duration
}

func NewService(deps ServiceDeps) Service {
	return &service{
		users:      deps.UserRepo,
		sessions:   deps.SessionStore,
		coupons:    deps.CouponRepo,
		mailer:     deps.Mailer,
		tokens:     deps.Tokens,
		sessionTTL: deps.SessionTTL,
	}
}

func (s *service) Start(ctx context.Context, req domain.RegisterRequest) error {
	if _, err := s.users.GetByPhone(ctx, req.Phone); err == nil {
		return fmt.Errorf("phone number already exists: %w", domain.ErrConflict)
	}
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return fmt.Errorf("email already exists: %w", domain.ErrConflict)
	}
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("invalid email format: %w", domain.ErrBadRequest)
	}

	code, err := otp.New()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	pending := &domain.PendingRegistration{
		Name:         req.Name,
		Phone:        req.Phone,
		Email:        req.Email,
		PasswordHash: string(hash),
		Code:         code,
		WalkIn:       req.IsWalkIn,
	}
	if err := s.sessions.PutPending(ctx, pending, s.sessionTTL); err != nil {
		return err
	}

	// The staged session is intentionally not rolled back on send failure;
	// the caller can retry via Resend within the TTL.
	if err := s.mailer.SendOTPEmail(req.Email, code, req.Name); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", domain.ErrDependency)
	}
	return nil
}

func (s *service) Verify(ctx context.Context, email, code string) (*VerifyResult, error) {
	pending, err := s.sessions.GetPending(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("OTP invalid or expired: %w", domain.ErrUnauthorized)
	}
	if pending.Code != code {
		return nil, fmt.Errorf("invalid OTP: %w", domain.ErrUnauthorized)
	}

	// Consume before creating the account: of two racing verifications only
	// the one that actually removed the entry proceeds.
	removed, err := s.sessions.DeletePending(ctx, email)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, fmt.Errorf("OTP invalid or expired: %w", domain.ErrUnauthorized)
	}

	now := time.Now().UTC()
	u := &domain.User{
		UserID:       id.New(),
		Name:         pending.Name,
		Email:        pending.Email,
		Phone:        pending.Phone,
		PasswordHash: pending.PasswordHash,
		Role:         domain.RoleUser,
		AuthProvider: "local",
		Enable:       1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Put(ctx, u); err != nil {
		return nil, err
	}

	couponCode := ""
	if pending.WalkIn {
		couponCode, err = otp.NewCouponCode()
		if err != nil {
			return nil, err
		}
		c := &domain.Coupon{
			CouponID:  id.New(),
			Code:      couponCode,
			UserID:    u.UserID,
			CreatedAt: now,
		}
		if err := s.coupons.Put(ctx, c); err != nil {
			return nil, err
		}
	}

	token := ""
	if s.tokens != nil {
		token, err = s.tokens.Sign(u.UserID, u.Role)
		if err != nil {
			return nil, err
		}
	}
	return &VerifyResult{User: u, Token: token, CouponCode: couponCode}, nil
}

func (s *service) Resend(ctx context.Context, email string) error {
	pending, err := s.sessions.GetPending(ctx, email)
	if err != nil {
		return fmt.Errorf("no pending registration found for this email: %w", domain.ErrNotFound)
	}

	code, err := otp.New()
	if err != nil {
		return err
	}
	// Overwrite in place: staged fields are preserved, the previous code is
	// invalid immediately and the TTL window restarts.
	pending.Code = code
	if err := s.sessions.PutPending(ctx, pending, s.sessionTTL); err != nil {
		return err
	}

	if err := s.mailer.SendOTPEmail(email, code, pending.Name); err != nil {
		return fmt.Errorf("failed to resend OTP email: %w", domain.ErrDependency)
	}
	return nil
}

func (s *service) StartPasswordReset(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user with this email does not exist: %w", domain.ErrNotFound)
	}

	code, err := otp.New()
	if err != nil {
		return err
	}
	if err := s.sessions.PutReset(ctx, &domain.PasswordResetSession{Email: email, Code: code}, s.sessionTTL); err != nil {
		return err
	}

	if err := s.mailer.SendOTPEmail(email, code, u.Name); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", domain.ErrDependency)
	}
	return nil
}

func (s *service) VerifyPasswordReset(ctx context.Context, email, code string) (string, error) {
	reset, err := s.sessions.GetReset(ctx, email)
	if err != nil {
		return "", fmt.Errorf("OTP invalid or expired: %w", domain.ErrUnauthorized)
	}
	if reset.Code != code {
		return "", fmt.Errorf("invalid OTP: %w", domain.ErrUnauthorized)
	}
	removed, err := s.sessions.DeleteReset(ctx, email)
	if err != nil {
		return "", err
	}
	if !removed {
		return "", fmt.Errorf("OTP invalid or expired: %w", domain.ErrUnauthorized)
	}
	if s.tokens == nil {
		return "", fmt.Errorf("token signing is not configured: %w", domain.ErrDependency)
	}
	return s.tokens.SignReset(email)
}

func (s *service) CompletePasswordReset(ctx context.Context, tempToken, newPassword string) error {
	if s.tokens == nil {
		return fmt.Errorf("token signing is not configured: %w", domain.ErrDependency)
	}
	email, err := s.tokens.VerifyReset(tempToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("token has expired: %w", domain.ErrUnauthorized)
		}
		return fmt.Errorf("invalid token: %w", domain.ErrBadRequest)
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, u.UserID, map[string]interface{}{"password_hash": string(hash)})
}

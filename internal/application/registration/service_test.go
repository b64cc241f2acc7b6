package registration

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/infrastructure/memstore"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- mocks ---

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) GetByPhone(ctx context.Context, phone string) (*domain.User, error) {
	args := m.Called(ctx, phone)
	if u, _ := args.Get(0).(*domain.User); u != nil {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserStore) Put(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockUserStore) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	return m.Called(ctx, userID, updates).Error(0)
}

type mockCouponStore struct{ mock.Mock }

func (m *mockCouponStore) Put(ctx context.Context, c *domain.Coupon) error {
	return m.Called(ctx, c).Error(0)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendOTPEmail(to, code, displayName string) error {
	return m.Called(to, code, displayName).Error(0)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) Sign(userID, role string) (string, error) {
	args := m.Called(userID, role)
	return args.String(0), args.Error(1)
}
func (m *mockTokens) SignReset(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}
func (m *mockTokens) VerifyReset(token string) (string, error) {
	args := m.Called(token)
	return args.String(0), args.Error(1)
}

// --- builder ---

// newService wires the real in-process session store so that the OTP
// lifecycle (overwrite, consume-once, expiry) is exercised end to end.
func newService(us *mockUserStore, cs *mockCouponStore, ml *mockMailer, tk *mockTokens, ttl time.Duration) (Service, *memstore.RegistrationStore) {
	store := memstore.NewRegistrationStore()
	svc := NewService(ServiceDeps{
		UserRepo:     us,
		SessionStore: store,
		CouponRepo:   cs,
		Mailer:       ml,
		Tokens:       tk,
		SessionTTL:   ttl,
	})
	return svc, store
}

func noAccounts(us *mockUserStore) {
	us.On("GetByPhone", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	us.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
}

// sentCode captures the OTP passed to the mailer.
func sentCode(ml *mockMailer, code *string) {
	ml.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { *code = args.String(1) }).
		Return(nil)
}

func registerReq(email string) domain.RegisterRequest {
	return domain.RegisterRequest{
		Name:     "Asha",
		Phone:    "9995550001",
		Email:    email,
		Password: "supersecret1",
	}
}

// --- Start ---

func TestStart_DuplicatePhone_Conflict(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	us.On("GetByPhone", mock.Anything, "9995550001").Return(&domain.User{UserID: "u1"}, nil)

	svc, _ := newService(us, nil, ml, nil, time.Minute)
	err := svc.Start(context.Background(), registerReq("a@x.com"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	// Conflicts must be rejected before any notification is sent.
	ml.AssertNotCalled(t, "SendOTPEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestStart_DuplicateEmail_Conflict(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	us.On("GetByPhone", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1"}, nil)

	svc, _ := newService(us, nil, ml, nil, time.Minute)
	err := svc.Start(context.Background(), registerReq("a@x.com"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	ml.AssertNotCalled(t, "SendOTPEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestStart_InvalidEmailFormat(t *testing.T) {
	us := &mockUserStore{}
	noAccounts(us)

	svc, store := newService(us, nil, &mockMailer{}, nil, time.Minute)
	err := svc.Start(context.Background(), registerReq("not-an-email"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	_, err = store.GetPending(context.Background(), "not-an-email")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestStart_StagesHashedPasswordAndSendsCode(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	noAccounts(us)
	var code string
	sentCode(ml, &code)

	svc, store := newService(us, nil, ml, nil, time.Minute)
	err := svc.Start(context.Background(), registerReq("a@x.com"))

	require.NoError(t, err)
	require.Len(t, code, 6)

	pending, err := store.GetPending(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, code, pending.Code)
	assert.NotEqual(t, "supersecret1", pending.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(pending.PasswordHash), []byte("supersecret1")))
	ml.AssertExpectations(t)
}

func TestStart_NotifierFailure_SessionKept(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	noAccounts(us)
	ml.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	svc, store := newService(us, nil, ml, nil, time.Minute)
	err := svc.Start(context.Background(), registerReq("a@x.com"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependency))
	// The staged session survives a failed notification.
	_, err = store.GetPending(context.Background(), "a@x.com")
	assert.NoError(t, err)
}

func TestStart_Restage_OverwritesPreviousSession(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	tk := &mockTokens{}
	noAccounts(us)
	var code string
	sentCode(ml, &code)

	svc, _ := newService(us, nil, ml, tk, time.Minute)
	require.NoError(t, svc.Start(context.Background(), registerReq("a@x.com")))
	firstCode := code
	require.NoError(t, svc.Start(context.Background(), registerReq("a@x.com")))
	secondCode := code

	// Only the latest staged code is verifiable.
	if firstCode != secondCode {
		_, err := svc.Verify(context.Background(), "a@x.com", firstCode)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	}

	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	tk.On("Sign", mock.Anything, domain.RoleUser).Return("bearer-token", nil)
	_, err := svc.Verify(context.Background(), "a@x.com", secondCode)
	assert.NoError(t, err)
}

// --- Verify ---

func TestVerify_NoSession_Unauthorized(t *testing.T) {
	svc, _ := newService(&mockUserStore{}, nil, &mockMailer{}, nil, time.Minute)
	_, err := svc.Verify(context.Background(), "a@x.com", "123456")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestVerify_WrongCode_KeepsSession(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	tk := &mockTokens{}
	noAccounts(us)
	var code string
	sentCode(ml, &code)

	svc, store := newService(us, nil, ml, tk, time.Minute)
	require.NoError(t, svc.Start(context.Background(), registerReq("a@x.com")))

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	_, err := svc.Verify(context.Background(), "a@x.com", wrong)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	// A failed attempt must not consume the session: the correct code still works.
	_, err = store.GetPending(context.Background(), "a@x.com")
	require.NoError(t, err)
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	tk.On("Sign", mock.Anything, domain.RoleUser).Return("bearer-token", nil)
	result, err := svc.Verify(context.Background(), "a@x.com", code)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", result.Token)
}

func TestVerify_HappyPath_CreatesAccountOnce(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	tk := &mockTokens{}
	noAccounts(us)
	var code string
	sentCode(ml, &code)
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil).Once()
	tk.On("Sign", mock.Anything, domain.RoleUser).Return("bearer-token", nil)

	svc, _ := newService(us, nil, ml, tk, time.Minute)
	require.NoError(t, svc.Start(context.Background(), registerReq("a@x.com")))

	result, err := svc.Verify(context.Background(), "a@x.com", code)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", result.Token)
	assert.Equal(t, "a@x.com", result.User.Email)
	assert.Equal(t, domain.RoleUser, result.User.Role)
	assert.Empty(t, result.CouponCode)

	// Replay with the same code fails: the session was consumed.
	_, err = svc.Verify(context.Background(), "a@x.com", code)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	us.AssertExpectations(t)
}

func TestVerify_WalkIn_MintsExactlyOneCoupon(t *testing.T) {
	us := &mockUserStore{}
	cs := &mockCouponStore{}
	ml := &mockMailer{}
	tk := &mockTokens{}
	noAccounts(us)
	var code string
	sentCode(ml, &code)
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	var minted *domain.Coupon
	cs.On("Put", mock.Anything, mock.AnythingOfType("*domain.Coupon")).
		Run(func(args mock.Arguments) { minted = args.Get(1).(*domain.Coupon) }).
		Return(nil).Once()
	tk.On("Sign", mock.Anything, domain.RoleUser).Return("bearer-token", nil)

	svc, _ := newService(us, cs, ml, tk, time.Minute)
	req := registerReq("a@x.com")
	req.IsWalkIn = true
	require.NoError(t, svc.Start(context.Background(), req))

	result, err := svc.Verify(context.Background(), "a@x.com", code)
	require.NoError(t, err)
	require.NotNil(t, minted)
	assert.Equal(t, result.CouponCode, minted.Code)
	assert.Equal(t, result.User.UserID, minted.UserID)
	assert.Regexp(t, `^WALK-[A-Z0-9]{8}$`, minted.Code)
	cs.AssertExpectations(t)
}

func TestVerify_NonWalkIn_NoCoupon(t *testing.T) {
	us := &mockUserStore{}
	cs := &mockCouponStore{}
	ml := &mockMailer{}
	tk := &mockTokens{}
	noAccounts(us)
	var code string
	sentCode(ml, &code)
	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	tk.On("Sign", mock.Anything, domain.RoleUser).Return("bearer-token", nil)

	svc, _ := newService(us, cs, ml, tk, time.Minute)
	require.NoError(t, svc.Start(context.Background(), registerReq("a@x.com")))
	_, err := svc.Verify(context.Background(), "a@x.com", code)
	require.NoError(t, err)
	cs.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestVerify_ExpiredSession_Unverifiable(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	noAccounts(us)
	var code string
	sentCode(ml, &code)

	svc, _ := newService(us, nil, ml, nil, 10*time.Millisecond)
	require.NoError(t, svc.Start(context.Background(), registerReq("a@x.com")))
	time.Sleep(20 * time.Millisecond)

	_, err := svc.Verify(context.Background(), "a@x.com", code)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

// --- Resend ---

func TestResend_NoSession_NotFound(t *testing.T) {
	svc, _ := newService(&mockUserStore{}, nil, &mockMailer{}, nil, time.Minute)
	err := svc.Resend(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestResend_InvalidatesOldCode(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	tk := &mockTokens{}
	noAccounts(us)
	var code string
	sentCode(ml, &code)

	svc, store := newService(us, nil, ml, tk, time.Minute)
	require.NoError(t, svc.Start(context.Background(), registerReq("a@x.com")))
	oldCode := code

	require.NoError(t, svc.Resend(context.Background(), "a@x.com"))
	newCode := code

	// Staged fields carry over; only the code changed.
	pending, err := store.GetPending(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Asha", pending.Name)
	assert.Equal(t, newCode, pending.Code)

	if oldCode != newCode {
		_, err = svc.Verify(context.Background(), "a@x.com", oldCode)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	}

	us.On("Put", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)
	tk.On("Sign", mock.Anything, domain.RoleUser).Return("bearer-token", nil)
	_, err = svc.Verify(context.Background(), "a@x.com", newCode)
	assert.NoError(t, err)
}

func TestResend_MailFailure_Dependency(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	noAccounts(us)
	ml.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	ml.On("SendOTPEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()

	svc, _ := newService(us, nil, ml, nil, time.Minute)
	require.NoError(t, svc.Start(context.Background(), registerReq("a@x.com")))

	err := svc.Resend(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDependency))
}

// --- password reset ---

func TestStartPasswordReset_UnknownAccount(t *testing.T) {
	us := &mockUserStore{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound)

	svc, _ := newService(us, nil, &mockMailer{}, nil, time.Minute)
	err := svc.StartPasswordReset(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPasswordReset_FullFlow(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	tk := &mockTokens{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1", Email: "a@x.com", Name: "Asha"}, nil)
	var code string
	sentCode(ml, &code)
	tk.On("SignReset", "a@x.com").Return("temp-token", nil)

	svc, _ := newService(us, nil, ml, tk, time.Minute)
	require.NoError(t, svc.StartPasswordReset(context.Background(), "a@x.com"))

	tempToken, err := svc.VerifyPasswordReset(context.Background(), "a@x.com", code)
	require.NoError(t, err)
	assert.Equal(t, "temp-token", tempToken)

	// The reset session is single-use.
	_, err = svc.VerifyPasswordReset(context.Background(), "a@x.com", code)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))

	tk.On("VerifyReset", "temp-token").Return("a@x.com", nil)
	us.On("Update", mock.Anything, "u1", mock.MatchedBy(func(m map[string]interface{}) bool {
		hash, ok := m["password_hash"].(string)
		return ok && bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpassword1")) == nil
	})).Return(nil)
	require.NoError(t, svc.CompletePasswordReset(context.Background(), "temp-token", "newpassword1"))
	us.AssertExpectations(t)
}

func TestVerifyPasswordReset_WrongCode(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1", Name: "Asha"}, nil)
	var code string
	sentCode(ml, &code)

	svc, _ := newService(us, nil, ml, nil, time.Minute)
	require.NoError(t, svc.StartPasswordReset(context.Background(), "a@x.com"))

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	_, err := svc.VerifyPasswordReset(context.Background(), "a@x.com", wrong)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestPasswordResetAndRegistration_Coexist(t *testing.T) {
	us := &mockUserStore{}
	ml := &mockMailer{}
	// Registration requires the account to be absent, reset requires it to
	// exist; stage the registration first, then "create" the account for the
	// reset lookup.
	us.On("GetByPhone", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound).Once()
	us.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, domain.ErrNotFound).Once()
	var code string
	sentCode(ml, &code)

	svc, store := newService(us, nil, ml, nil, time.Minute)
	require.NoError(t, svc.Start(context.Background(), registerReq("a@x.com")))
	regCode := code

	us.On("GetByEmail", mock.Anything, "a@x.com").Return(&domain.User{UserID: "u1", Name: "Asha"}, nil)
	require.NoError(t, svc.StartPasswordReset(context.Background(), "a@x.com"))

	// Both sessions are live and independent.
	pending, err := store.GetPending(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, regCode, pending.Code)
	_, err = store.GetReset(context.Background(), "a@x.com")
	require.NoError(t, err)
}

func TestCompletePasswordReset_ExpiredToken(t *testing.T) {
	tk := &mockTokens{}
	tk.On("VerifyReset", "stale").Return("", fmt.Errorf("parse: %w", jwt.ErrTokenExpired))

	svc, _ := newService(&mockUserStore{}, nil, &mockMailer{}, tk, time.Minute)
	err := svc.CompletePasswordReset(context.Background(), "stale", "newpassword1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestCompletePasswordReset_MalformedToken(t *testing.T) {
	tk := &mockTokens{}
	tk.On("VerifyReset", "garbage").Return("", errors.New("token is malformed"))

	svc, _ := newService(&mockUserStore{}, nil, &mockMailer{}, tk, time.Minute)
	err := svc.CompletePasswordReset(context.Background(), "garbage", "newpassword1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

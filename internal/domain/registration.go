package domain

// PendingRegistration is staged signup data awaiting OTP confirmation.
// Keyed by email in the session store; at most one entry per email — a new
// registration for the same email overwrites the previous one. The stored
// code changes in place on resend and the whole entry is removed on
// successful verification or by TTL expiry.
type PendingRegistration struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Code         string `json:"code"`
	WalkIn       bool   `json:"walk_in"` // mint a promotional coupon on verification
}

// PasswordResetSession is a short-lived OTP challenge for a password reset.
// Stored under a key space disjoint from pending registrations, so an
// active registration and an active reset for the same email coexist.
type PasswordResetSession struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	IsWalkIn bool   `json:"isWalkIn"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type ResetPasswordRequest struct {
	TempToken   string `json:"tempToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

package otp

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// New generates a 6-digit numeric one-time code.
func New() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(999999))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

const couponAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewCouponCode generates a walk-in coupon code of the form WALK-XXXXXXXX.
func NewCouponCode() (string, error) {
	b := make([]byte, 8)
	for i := range b {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(couponAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate coupon code: %w", err)
		}
		b[i] = couponAlphabet[idx.Int64()]
	}
	return "WALK-" + string(b), nil
}

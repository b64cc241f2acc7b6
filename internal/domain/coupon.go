package domain

import "time"

// Coupon is a promotional code minted for walk-in signups, bound to exactly
// one user at verification time.
type Coupon struct {
	CouponID  string    `json:"id" dynamodbav:"coupon_id"`
	Code      string    `json:"code" dynamodbav:"code"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

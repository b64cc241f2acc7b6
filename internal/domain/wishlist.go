package domain

import "time"

// WishlistItem is one saved product for one user.
// PK: user_id, SK: product_id.
type WishlistItem struct {
	UserID    string    `json:"userId" dynamodbav:"user_id"`
	ProductID string    `json:"productId" dynamodbav:"product_id"`
	AddedAt   time.Time `json:"added" dynamodbav:"added_at"`
}

type WishlistRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

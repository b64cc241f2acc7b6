package domain

import "time"

type Review struct {
	ReviewID  string    `json:"id" dynamodbav:"review_id"`
	ProductID string    `json:"productId" dynamodbav:"product_id"`
	UserID    string    `json:"userId" dynamodbav:"user_id"`
	UserName  string    `json:"userName" dynamodbav:"user_name"`
	Rating    int       `json:"rating" dynamodbav:"rating"`
	Message   string    `json:"message" dynamodbav:"message"`
	ImageURL  string    `json:"image,omitempty" dynamodbav:"image_url"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}

type AddReviewRequest struct {
	ProductID   string `json:"productId" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Message     string `json:"message"`
	ImageBase64 string `json:"image"`
}

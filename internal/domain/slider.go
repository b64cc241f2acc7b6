package domain

import "time"

// Slider is a promotional banner shown on the storefront.
type Slider struct {
	SliderID   string    `json:"id" dynamodbav:"slider_id"`
	Title      string    `json:"title" dynamodbav:"title"`
	CategoryID string    `json:"category" dynamodbav:"category_id"`
	Label      string    `json:"label" dynamodbav:"label"`
	Link       string    `json:"link,omitempty" dynamodbav:"link"`
	ImageURL   string    `json:"imageUrl" dynamodbav:"image_url"`
	ImageKey   string    `json:"-" dynamodbav:"image_key"`
	IsActive   bool      `json:"isActive" dynamodbav:"is_active"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt  time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateSliderRequest struct {
	Title       string `json:"title" validate:"required"`
	CategoryID  string `json:"category"`
	Label       string `json:"label"`
	ImageBase64 string `json:"image" validate:"required"`
}

type UpdateSliderRequest struct {
	Title       *string `json:"title"`
	CategoryID  *string `json:"category"`
	Label       *string `json:"label"`
	Link        *string `json:"link"`
	IsActive    *bool   `json:"isActive"`
	ImageBase64 *string `json:"image"`
}

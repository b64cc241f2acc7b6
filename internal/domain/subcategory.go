package domain

import "time"

type SubCategory struct {
	SubCategoryID string    `json:"id" dynamodbav:"subcategory_id"`
	CategoryID    string    `json:"categoryId" dynamodbav:"category_id"`
	Name          string    `json:"name" dynamodbav:"name"`
	Description   string    `json:"description" dynamodbav:"description"`
	ImageURL      string    `json:"imageUrl" dynamodbav:"image_url"`
	ImageKey      string    `json:"-" dynamodbav:"image_key"`
	IsActive      bool      `json:"isActive" dynamodbav:"is_active"`
	CreatedAt     time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt     time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateSubCategoryRequest struct {
	CategoryID  string `json:"categoryId" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
	ImageBase64 string `json:"image" validate:"required"`
}

type UpdateSubCategoryRequest struct {
	CategoryID  *string `json:"categoryId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
	ImageBase64 *string `json:"image"`
}

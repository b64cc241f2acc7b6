package domain

import "time"

// Order statuses relevant to the review gate.
const OrderStatusDelivered = "Delivered"

type OrderItem struct {
	ProductID string `json:"productId" dynamodbav:"product_id"`
	Color     string `json:"color,omitempty" dynamodbav:"color"`
	Size      string `json:"size,omitempty" dynamodbav:"size"`
	Quantity  int    `json:"quantity" dynamodbav:"quantity"`
}

type Order struct {
	OrderID   string      `json:"id" dynamodbav:"order_id"`
	UserID    string      `json:"userId" dynamodbav:"user_id"`
	Status    string      `json:"status" dynamodbav:"status"`
	Items     []OrderItem `json:"products" dynamodbav:"items"`
	CreatedAt time.Time   `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time   `json:"updated" dynamodbav:"updated_at"`
}

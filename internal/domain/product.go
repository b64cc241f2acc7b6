package domain

import "time"

// ColorVariant holds the per-size stock for one color of a product.
type ColorVariant struct {
	Color string      `json:"color" dynamodbav:"color"`
	Sizes []SizeStock `json:"sizes" dynamodbav:"sizes"`
}

type SizeStock struct {
	Size  string `json:"size" dynamodbav:"size"`
	Stock int    `json:"stock" dynamodbav:"stock"`
}

// Features holds free-form product attributes used by similar-product matching.
type Features struct {
	Material string `json:"material,omitempty" dynamodbav:"material"`
	Fit      string `json:"fit,omitempty" dynamodbav:"fit"`
	Pattern  string `json:"pattern,omitempty" dynamodbav:"pattern"`
}

type Product struct {
	ProductID         string         `json:"id" dynamodbav:"product_id"`
	ProductCode       string         `json:"product_code" dynamodbav:"product_code"`
	Title             string         `json:"title" dynamodbav:"title"`
	Description       string         `json:"description" dynamodbav:"description"`
	CategoryIDs       []string       `json:"category" dynamodbav:"category_ids"`
	SubCategoryIDs    []string       `json:"subcategory" dynamodbav:"subcategory_ids"`
	Price             float64        `json:"price" dynamodbav:"price"`
	OfferPrice        float64        `json:"offerPrice,omitempty" dynamodbav:"offer_price"`
	ManufacturerBrand string         `json:"manufacturerBrand,omitempty" dynamodbav:"manufacturer_brand"`
	Features          Features       `json:"features" dynamodbav:"features"`
	Colors            []ColorVariant `json:"colors" dynamodbav:"colors"`
	TotalStock        int            `json:"totalStock" dynamodbav:"total_stock"`
	ImageURLs         []string       `json:"images" dynamodbav:"image_urls"`
	ImageKeys         []string       `json:"-" dynamodbav:"image_keys"`
	CreatedAt         time.Time      `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time      `json:"updated" dynamodbav:"updated_at"`
}

// ProductListing is a product enriched with the caller's wishlist state and
// review aggregates, matching the user-facing listing endpoints.
type ProductListing struct {
	Product
	InWishlist    bool     `json:"isInWishlist"`
	AverageRating float64  `json:"averageRating"`
	ReviewCount   int      `json:"reviewCount"`
	Reviews       []Review `json:"reviews,omitempty"`
}

type CreateProductRequest struct {
	ProductCode       string         `json:"product_code" validate:"required"`
	Title             string         `json:"title" validate:"required"`
	Description       string         `json:"description"`
	CategoryIDs       []string       `json:"category" validate:"required,min=1"`
	SubCategoryIDs    []string       `json:"subcategory" validate:"required,min=1"`
	Price             float64        `json:"price" validate:"required,gt=0"`
	OfferPrice        float64        `json:"offerPrice"`
	ManufacturerBrand string         `json:"manufacturerBrand"`
	Features          Features       `json:"features"`
	Colors            []ColorVariant `json:"colors"`
	ImagesBase64      []string       `json:"images"`
}

type UpdateProductRequest struct {
	Title             *string         `json:"title"`
	Description       *string         `json:"description"`
	CategoryIDs       *[]string       `json:"category"`
	SubCategoryIDs    *[]string       `json:"subcategory"`
	Price             *float64        `json:"price"`
	OfferPrice        *float64        `json:"offerPrice"`
	ManufacturerBrand *string         `json:"manufacturerBrand"`
	Features          *Features       `json:"features"`
	Colors            *[]ColorVariant `json:"colors"`
}

// Package review implements product reviews. Posting is gated on a delivered
// order that contains the product.
package review

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/pkg/id"
)

// ProductReviews is the listing payload for one product.
type ProductReviews struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
	Count         int             `json:"count"`
}

type Service interface {
	// Add posts a review for a product the user has received.
	Add(ctx context.Context, userID string, req domain.AddReviewRequest) (*domain.Review, error)
	// ListByProduct returns reviews newest-first with the rating average.
	ListByProduct(ctx context.Context, productID string) (*ProductReviews, error)
}

type reviewStore interface {
	Put(ctx context.Context, rev *domain.Review) error
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
}

type productStore interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

type orderStore interface {
	HasDeliveredProduct(ctx context.Context, userID, productID string) (bool, error)
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
}

type service struct {
	reviews  reviewStore
	products productStore
	users    userStore
	orders   orderStore
	images   imageStore
}

type ServiceDeps struct {
	ReviewRepo  reviewStore
	ProductRepo productStore
	UserRepo    userStore
	OrderRepo   orderStore
	Images      imageStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		reviews:  deps.ReviewRepo,
		products: deps.ProductRepo,
		users:    deps.UserRepo,
		orders:   deps.OrderRepo,
		images:   deps.Images,
	}
}

func (s *service) Add(ctx context.Context, userID string, req domain.AddReviewRequest) (*domain.Review, error) {
	if _, err := s.products.Get(ctx, req.ProductID); err != nil {
		return nil, fmt.Errorf("product not found: %w", domain.ErrNotFound)
	}

	delivered, err := s.orders.HasDeliveredProduct(ctx, userID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !delivered {
		return nil, fmt.Errorf("you can only review products from delivered orders: %w", domain.ErrForbidden)
	}

	u, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}

	rev := &domain.Review{
		ReviewID:  id.New(),
		ProductID: req.ProductID,
		UserID:    userID,
		UserName:  u.Name,
		Rating:    req.Rating,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	if req.ImageBase64 != "" {
		key := fmt.Sprintf("reviews/%s/%s", req.ProductID, rev.ReviewID)
		url, err := s.images.UploadBase64(ctx, key, req.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("upload review image: %w", err)
		}
		rev.ImageURL = url
	}

	if err := s.reviews.Put(ctx, rev); err != nil {
		return nil, err
	}
	return rev, nil
}

func (s *service) ListByProduct(ctx context.Context, productID string) (*ProductReviews, error) {
	reviews, err := s.reviews.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &ProductReviews{Reviews: reviews, Count: len(reviews)}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		out.AverageRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}
	return out, nil
}

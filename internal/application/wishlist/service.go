// Package wishlist implements per-user saved products.
package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
)

type Service interface {
	Add(ctx context.Context, userID, productID string) error
	Remove(ctx context.Context, userID, productID string) error
	// List resolves the user's saved items to full products, skipping any
	// that have since been deleted.
	List(ctx context.Context, userID string) ([]domain.Product, error)
}

type wishlistStore interface {
	Put(ctx context.Context, item *domain.WishlistItem) error
	Delete(ctx context.Context, userID, productID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.WishlistItem, error)
}

type productStore interface {
	Get(ctx context.Context, productID string) (*domain.Product, error)
}

type service struct {
	wishlists wishlistStore
	products  productStore
}

type ServiceDeps struct {
	WishlistRepo wishlistStore
	ProductRepo  productStore
}

func NewService(deps ServiceDeps) Service {
	return &service{wishlists: deps.WishlistRepo, products: deps.ProductRepo}
}

func (s *service) Add(ctx context.Context, userID, productID string) error {
	if _, err := s.products.Get(ctx, productID); err != nil {
		return fmt.Errorf("product not found: %w", domain.ErrNotFound)
	}
	// Adding an already-saved product overwrites the item, which is a no-op
	// apart from the timestamp.
	return s.wishlists.Put(ctx, &domain.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		AddedAt:   time.Now().UTC(),
	})
}

func (s *service) Remove(ctx context.Context, userID, productID string) error {
	return s.wishlists.Delete(ctx, userID, productID)
}

func (s *service) List(ctx context.Context, userID string) ([]domain.Product, error) {
	items, err := s.wishlists.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		p, err := s.products.Get(ctx, item.ProductID)
		if err != nil {
			// The product may have been deleted since it was saved.
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}

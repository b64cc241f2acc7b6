// Package category implements admin CRUD for top-level catalog categories.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateCategoryRequest) (*domain.Category, error)
	Update(ctx context.Context, categoryID string, req domain.UpdateCategoryRequest) (*domain.Category, error)
	Delete(ctx context.Context, categoryID string) error
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

type categoryStore interface {
	Put(ctx context.Context, c *domain.Category) error
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
	Scan(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, categoryID string, updates map[string]interface{}) error
	Delete(ctx context.Context, categoryID string) error
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	categories categoryStore
	images     imageStore
}

type ServiceDeps struct {
	CategoryRepo categoryStore
	Images       imageStore
}

func NewService(deps ServiceDeps) Service {
	return &service{categories: deps.CategoryRepo, images: deps.Images}
}

func (s *service) Create(ctx context.Context, req domain.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now().UTC()
	c := &domain.Category{
		CategoryID:  id.New(),
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	key := "categories/" + c.CategoryID
	url, err := s.images.UploadBase64(ctx, key, req.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("upload category image: %w", err)
	}
	c.ImageURL = url
	c.ImageKey = key

	if err := s.categories.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Update(ctx context.Context, categoryID string, req domain.UpdateCategoryRequest) (*domain.Category, error) {
	c, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		c.Name = *req.Name
		updates["name"] = c.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
		updates["description"] = c.Description
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
		updates["is_active"] = c.IsActive
	}
	if req.ImageBase64 != nil {
		url, err := s.images.UploadBase64(ctx, c.ImageKey, *req.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("upload category image: %w", err)
		}
		c.ImageURL = url
		updates["image_url"] = url
	}
	if len(updates) == 0 {
		return c, nil
	}

	c.UpdatedAt = time.Now().UTC()
	if err := s.categories.Update(ctx, categoryID, updates); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Delete(ctx context.Context, categoryID string) error {
	c, err := s.categories.Get(ctx, categoryID)
	if err != nil {
		return err
	}
	if c.ImageKey != "" {
		if err := s.images.Delete(ctx, c.ImageKey); err != nil {
			return fmt.Errorf("delete category image: %w", err)
		}
	}
	return s.categories.Delete(ctx, categoryID)
}

func (s *service) Get(ctx context.Context, categoryID string) (*domain.Category, error) {
	return s.categories.Get(ctx, categoryID)
}

func (s *service) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories.Scan(ctx)
}

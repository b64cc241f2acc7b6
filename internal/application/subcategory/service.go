// Package subcategory implements admin CRUD for subcategories, each bound to
// a parent category.
package subcategory

import (
	"context"
	"fmt"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateSubCategoryRequest) (*domain.SubCategory, error)
	Update(ctx context.Context, subCategoryID string, req domain.UpdateSubCategoryRequest) (*domain.SubCategory, error)
	Delete(ctx context.Context, subCategoryID string) error
	Get(ctx context.Context, subCategoryID string) (*domain.SubCategory, error)
	List(ctx context.Context) ([]domain.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error)
}

type subCategoryStore interface {
	Put(ctx context.Context, sc *domain.SubCategory) error
	Get(ctx context.Context, subCategoryID string) (*domain.SubCategory, error)
	Scan(ctx context.Context) ([]domain.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error)
	Update(ctx context.Context, subCategoryID string, updates map[string]interface{}) error
	Delete(ctx context.Context, subCategoryID string) error
}

type categoryStore interface {
	Get(ctx context.Context, categoryID string) (*domain.Category, error)
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	subcategories subCategoryStore
	categories    categoryStore
	images        imageStore
}

type ServiceDeps struct {
	SubCategoryRepo subCategoryStore
	CategoryRepo    categoryStore
	Images          imageStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		subcategories: deps.SubCategoryRepo,
		categories:    deps.CategoryRepo,
		images:        deps.Images,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateSubCategoryRequest) (*domain.SubCategory, error) {
	if _, err := s.categories.Get(ctx, req.CategoryID); err != nil {
		return nil, fmt.Errorf("parent category not found: %w", domain.ErrNotFound)
	}

	now := time.Now().UTC()
	sc := &domain.SubCategory{
		SubCategoryID: id.New(),
		CategoryID:    req.CategoryID,
		Name:          req.Name,
		Description:   req.Description,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.IsActive != nil {
		sc.IsActive = *req.IsActive
	}

	key := "subcategories/" + sc.SubCategoryID
	url, err := s.images.UploadBase64(ctx, key, req.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("upload subcategory image: %w", err)
	}
	sc.ImageURL = url
	sc.ImageKey = key

	if err := s.subcategories.Put(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *service) Update(ctx context.Context, subCategoryID string, req domain.UpdateSubCategoryRequest) (*domain.SubCategory, error) {
	sc, err := s.subcategories.Get(ctx, subCategoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.CategoryID != nil {
		if _, err := s.categories.Get(ctx, *req.CategoryID); err != nil {
			return nil, fmt.Errorf("parent category not found: %w", domain.ErrNotFound)
		}
		sc.CategoryID = *req.CategoryID
		updates["category_id"] = sc.CategoryID
	}
	if req.Name != nil {
		sc.Name = *req.Name
		updates["name"] = sc.Name
	}
	if req.Description != nil {
		sc.Description = *req.Description
		updates["description"] = sc.Description
	}
	if req.IsActive != nil {
		sc.IsActive = *req.IsActive
		updates["is_active"] = sc.IsActive
	}
	if req.ImageBase64 != nil {
		url, err := s.images.UploadBase64(ctx, sc.ImageKey, *req.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("upload subcategory image: %w", err)
		}
		sc.ImageURL = url
		updates["image_url"] = url
	}
	if len(updates) == 0 {
		return sc, nil
	}

	sc.UpdatedAt = time.Now().UTC()
	if err := s.subcategories.Update(ctx, subCategoryID, updates); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *service) Delete(ctx context.Context, subCategoryID string) error {
	sc, err := s.subcategories.Get(ctx, subCategoryID)
	if err != nil {
		return err
	}
	if sc.ImageKey != "" {
		if err := s.images.Delete(ctx, sc.ImageKey); err != nil {
			return fmt.Errorf("delete subcategory image: %w", err)
		}
	}
	return s.subcategories.Delete(ctx, subCategoryID)
}

func (s *service) Get(ctx context.Context, subCategoryID string) (*domain.SubCategory, error) {
	return s.subcategories.Get(ctx, subCategoryID)
}

func (s *service) List(ctx context.Context) ([]domain.SubCategory, error) {
	return s.subcategories.Scan(ctx)
}

func (s *service) ListByCategory(ctx context.Context, categoryID string) ([]domain.SubCategory, error) {
	return s.subcategories.ListByCategory(ctx, categoryID)
}

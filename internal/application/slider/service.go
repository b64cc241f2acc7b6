// Package slider implements admin CRUD for storefront promotional banners.
package slider

import (
	"context"
	"fmt"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateSliderRequest) (*domain.Slider, error)
	Update(ctx context.Context, sliderID string, req domain.UpdateSliderRequest) (*domain.Slider, error)
	Delete(ctx context.Context, sliderID string) error
	// List returns sliders; activeOnly limits to banners currently shown.
	List(ctx context.Context, activeOnly bool) ([]domain.Slider, error)
}

type sliderStore interface {
	Put(ctx context.Context, sl *domain.Slider) error
	Get(ctx context.Context, sliderID string) (*domain.Slider, error)
	Scan(ctx context.Context) ([]domain.Slider, error)
	Update(ctx context.Context, sliderID string, updates map[string]interface{}) error
	Delete(ctx context.Context, sliderID string) error
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	sliders sliderStore
	images  imageStore
}

type ServiceDeps struct {
	SliderRepo sliderStore
	Images     imageStore
}

func NewService(deps ServiceDeps) Service {
	return &service{sliders: deps.SliderRepo, images: deps.Images}
}

func (s *service) Create(ctx context.Context, req domain.CreateSliderRequest) (*domain.Slider, error) {
	now := time.Now().UTC()
	sl := &domain.Slider{
		SliderID:   id.New(),
		Title:      req.Title,
		CategoryID: req.CategoryID,
		Label:      req.Label,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	key := "sliders/" + sl.SliderID
	url, err := s.images.UploadBase64(ctx, key, req.ImageBase64)
	if err != nil {
		return nil, fmt.Errorf("upload slider image: %w", err)
	}
	sl.ImageURL = url
	sl.ImageKey = key

	if err := s.sliders.Put(ctx, sl); err != nil {
		return nil, err
	}
	return sl, nil
}

func (s *service) Update(ctx context.Context, sliderID string, req domain.UpdateSliderRequest) (*domain.Slider, error) {
	sl, err := s.sliders.Get(ctx, sliderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		sl.Title = *req.Title
		updates["title"] = sl.Title
	}
	if req.CategoryID != nil {
		sl.CategoryID = *req.CategoryID
		updates["category_id"] = sl.CategoryID
	}
	if req.Label != nil {
		sl.Label = *req.Label
		updates["label"] = sl.Label
	}
	if req.Link != nil {
		sl.Link = *req.Link
		updates["link"] = sl.Link
	}
	if req.IsActive != nil {
		sl.IsActive = *req.IsActive
		updates["is_active"] = sl.IsActive
	}
	if req.ImageBase64 != nil {
		url, err := s.images.UploadBase64(ctx, sl.ImageKey, *req.ImageBase64)
		if err != nil {
			return nil, fmt.Errorf("upload slider image: %w", err)
		}
		sl.ImageURL = url
		updates["image_url"] = url
	}
	if len(updates) == 0 {
		return sl, nil
	}

	sl.UpdatedAt = time.Now().UTC()
	if err := s.sliders.Update(ctx, sliderID, updates); err != nil {
		return nil, err
	}
	return sl, nil
}

func (s *service) Delete(ctx context.Context, sliderID string) error {
	sl, err := s.sliders.Get(ctx, sliderID)
	if err != nil {
		return err
	}
	if sl.ImageKey != "" {
		if err := s.images.Delete(ctx, sl.ImageKey); err != nil {
			return fmt.Errorf("delete slider image: %w", err)
		}
	}
	return s.sliders.Delete(ctx, sliderID)
}

func (s *service) List(ctx context.Context, activeOnly bool) ([]domain.Slider, error) {
	sliders, err := s.sliders.Scan(ctx)
	if err != nil {
		return nil, err
	}
	if !activeOnly {
		return sliders, nil
	}
	active := sliders[:0]
	for _, sl := range sliders {
		if sl.IsActive {
			active = append(active, sl)
		}
	}
	return active, nil
}

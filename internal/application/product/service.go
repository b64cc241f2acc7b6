// Package product implements the catalog: admin CRUD keyed by a unique
// product code, and the user-facing listings enriched with wishlist state
// and review aggregates.
package product

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/codeedexprojects/poky-backend/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error)
	Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error)
	Delete(ctx context.Context, productID string) error
	Get(ctx context.Context, productID, viewerID string) (*domain.ProductListing, error)

	// List returns all products. When viewerID is non-empty each listing
	// carries that user's wishlist flag.
	List(ctx context.Context, viewerID string) ([]domain.ProductListing, error)
	ListByCategory(ctx context.Context, categoryID, viewerID string) ([]domain.ProductListing, error)
	ListBySubCategory(ctx context.Context, categoryID, subCategoryID, viewerID string) ([]domain.ProductListing, error)
	Search(ctx context.Context, query, viewerID string) ([]domain.ProductListing, error)
	// Similar returns products sharing category and subcategory with the
	// reference product plus at least one of color, material, or brand.
	Similar(ctx context.Context, productID, viewerID string) ([]domain.ProductListing, error)
}

type productStore interface {
	Put(ctx context.Context, p *domain.Product) error
	Get(ctx context.Context, productID string) (*domain.Product, error)
	GetByCode(ctx context.Context, productCode string) (*domain.Product, error)
	Scan(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, productID string, updates map[string]interface{}) error
	Delete(ctx context.Context, productID string) error
}

type reviewStore interface {
	ListByProduct(ctx context.Context, productID string) ([]domain.Review, error)
}

type wishlistStore interface {
	ListByUser(ctx context.Context, userID string) ([]domain.WishlistItem, error)
}

type imageStore interface {
	UploadBase64(ctx context.Context, key, b64Data string) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	products  productStore
	reviews   reviewStore
	wishlists wishlistStore
	images    imageStore
}

type ServiceDeps struct {
	ProductRepo  productStore
	ReviewRepo   reviewStore
	WishlistRepo wishlistStore
	Images       imageStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		products:  deps.ProductRepo,
		reviews:   deps.ReviewRepo,
		wishlists: deps.WishlistRepo,
		images:    deps.Images,
	}
}

// totalStock sums stock across every color and size.
func totalStock(colors []domain.ColorVariant) int {
	total := 0
	for _, c := range colors {
		for _, s := range c.Sizes {
			total += s.Stock
		}
	}
	return total
}

func (s *service) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	if _, err := s.products.GetByCode(ctx, req.ProductCode); err == nil {
		return nil, fmt.Errorf("product code %q already exists: %w", req.ProductCode, domain.ErrConflict)
	}

	now := time.Now().UTC()
	p := &domain.Product{
		ProductID:         id.New(),
		ProductCode:       req.ProductCode,
		Title:             req.Title,
		Description:       req.Description,
		CategoryIDs:       req.CategoryIDs,
		SubCategoryIDs:    req.SubCategoryIDs,
		Price:             req.Price,
		OfferPrice:        req.OfferPrice,
		ManufacturerBrand: req.ManufacturerBrand,
		Features:          req.Features,
		Colors:            req.Colors,
		TotalStock:        totalStock(req.Colors),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	for i, b64 := range req.ImagesBase64 {
		key := fmt.Sprintf("products/%s/%d", p.ProductID, i)
		url, err := s.images.UploadBase64(ctx, key, b64)
		if err != nil {
			return nil, fmt.Errorf("upload product image: %w", err)
		}
		p.ImageURLs = append(p.ImageURLs, url)
		p.ImageKeys = append(p.ImageKeys, key)
	}

	if err := s.products.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Update(ctx context.Context, productID string, req domain.UpdateProductRequest) (*domain.Product, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		p.Title = *req.Title
		updates["title"] = p.Title
	}
	if req.Description != nil {
		p.Description = *req.Description
		updates["description"] = p.Description
	}
	if req.CategoryIDs != nil {
		p.CategoryIDs = *req.CategoryIDs
		updates["category_ids"] = p.CategoryIDs
	}
	if req.SubCategoryIDs != nil {
		p.SubCategoryIDs = *req.SubCategoryIDs
		updates["subcategory_ids"] = p.SubCategoryIDs
	}
	if req.Price != nil {
		p.Price = *req.Price
		updates["price"] = p.Price
	}
	if req.OfferPrice != nil {
		p.OfferPrice = *req.OfferPrice
		updates["offer_price"] = p.OfferPrice
	}
	if req.ManufacturerBrand != nil {
		p.ManufacturerBrand = *req.ManufacturerBrand
		updates["manufacturer_brand"] = p.ManufacturerBrand
	}
	if req.Features != nil {
		p.Features = *req.Features
		updates["features"] = p.Features
	}
	if req.Colors != nil {
		p.Colors = *req.Colors
		p.TotalStock = totalStock(p.Colors)
		updates["colors"] = p.Colors
		updates["total_stock"] = p.TotalStock
	}
	if len(updates) == 0 {
		return p, nil
	}

	p.UpdatedAt = time.Now().UTC()
	if err := s.products.Update(ctx, productID, updates); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, productID string) error {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return err
	}
	for _, key := range p.ImageKeys {
		if err := s.images.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete product image: %w", err)
		}
	}
	return s.products.Delete(ctx, productID)
}

func (s *service) Get(ctx context.Context, productID, viewerID string) (*domain.ProductListing, error) {
	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	saved, err := s.wishlistSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	listing, err := s.enrich(ctx, *p, saved, true)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

func (s *service) List(ctx context.Context, viewerID string) ([]domain.ProductListing, error) {
	products, err := s.products.Scan(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrichAll(ctx, products, viewerID)
}

func (s *service) ListByCategory(ctx context.Context, categoryID, viewerID string) ([]domain.ProductListing, error) {
	products, err := s.products.Scan(ctx)
	if err != nil {
		return nil, err
	}
	filtered := products[:0]
	for _, p := range products {
		if slices.Contains(p.CategoryIDs, categoryID) {
			filtered = append(filtered, p)
		}
	}
	return s.enrichAll(ctx, filtered, viewerID)
}

func (s *service) ListBySubCategory(ctx context.Context, categoryID, subCategoryID, viewerID string) ([]domain.ProductListing, error) {
	products, err := s.products.Scan(ctx)
	if err != nil {
		return nil, err
	}
	filtered := products[:0]
	for _, p := range products {
		if slices.Contains(p.CategoryIDs, categoryID) && slices.Contains(p.SubCategoryIDs, subCategoryID) {
			filtered = append(filtered, p)
		}
	}
	return s.enrichAll(ctx, filtered, viewerID)
}

func (s *service) Search(ctx context.Context, query, viewerID string) ([]domain.ProductListing, error) {
	products, err := s.products.Scan(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))
	filtered := products[:0]
	for _, p := range products {
		if q == "" || strings.Contains(strings.ToLower(p.Title), q) {
			filtered = append(filtered, p)
		}
	}
	return s.enrichAll(ctx, filtered, viewerID)
}

func (s *service) Similar(ctx context.Context, productID, viewerID string) ([]domain.ProductListing, error) {
	ref, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	products, err := s.products.Scan(ctx)
	if err != nil {
		return nil, err
	}

	filtered := products[:0]
	for _, p := range products {
		if p.ProductID == ref.ProductID {
			continue
		}
		if !sharesAny(p.CategoryIDs, ref.CategoryIDs) || !sharesAny(p.SubCategoryIDs, ref.SubCategoryIDs) {
			continue
		}
		if sharesColor(p.Colors, ref.Colors) || sameAttr(p.Features.Material, ref.Features.Material) || sameAttr(p.ManufacturerBrand, ref.ManufacturerBrand) {
			filtered = append(filtered, p)
		}
	}
	return s.enrichAll(ctx, filtered, viewerID)
}

func sharesAny(a, b []string) bool {
	for _, v := range a {
		if slices.Contains(b, v) {
			return true
		}
	}
	return false
}

func sharesColor(a, b []domain.ColorVariant) bool {
	for _, ca := range a {
		for _, cb := range b {
			if strings.EqualFold(ca.Color, cb.Color) {
				return true
			}
		}
	}
	return false
}

func sameAttr(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}

// wishlistSet returns the viewer's saved product IDs, empty for anonymous
// callers.
func (s *service) wishlistSet(ctx context.Context, viewerID string) (map[string]bool, error) {
	saved := map[string]bool{}
	if viewerID == "" {
		return saved, nil
	}
	items, err := s.wishlists.ListByUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		saved[item.ProductID] = true
	}
	return saved, nil
}

func (s *service) enrichAll(ctx context.Context, products []domain.Product, viewerID string) ([]domain.ProductListing, error) {
	saved, err := s.wishlistSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	listings := make([]domain.ProductListing, 0, len(products))
	for _, p := range products {
		listing, err := s.enrich(ctx, p, saved, false)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	return listings, nil
}

// enrich attaches wishlist state and review aggregates; includeReviews also
// embeds the full review list, used for the single-product endpoint.
func (s *service) enrich(ctx context.Context, p domain.Product, saved map[string]bool, includeReviews bool) (domain.ProductListing, error) {
	reviews, err := s.reviews.ListByProduct(ctx, p.ProductID)
	if err != nil {
		return domain.ProductListing{}, err
	}
	listing := domain.ProductListing{
		Product:     p,
		InWishlist:  saved[p.ProductID],
		ReviewCount: len(reviews),
	}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		listing.AverageRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}
	if includeReviews {
		listing.Reviews = reviews
	}
	return listing, nil
}

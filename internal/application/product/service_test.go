package product

import (
	"context"
	"errors"
	"testing"

	"github.com/codeedexprojects/poky-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProductStore struct{ mock.Mock }

func (m *mockProductStore) Put(ctx context.Context, p *domain.Product) error {
	return m.Called(ctx, p).Error(0)
}
func (m *mockProductStore) Get(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) GetByCode(ctx context.Context, productCode string) (*domain.Product, error) {
	args := m.Called(ctx, productCode)
	if p, _ := args.Get(0).(*domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) Scan(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	if p, _ := args.Get(0).([]domain.Product); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockProductStore) Update(ctx context.Context, productID string, updates map[string]interface{}) error {
	return m.Called(ctx, productID, updates).Error(0)
}
func (m *mockProductStore) Delete(ctx context.Context, productID string) error {
	return m.Called(ctx, productID).Error(0)
}

type mockReviewStore struct{ mock.Mock }

func (m *mockReviewStore) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	if r, _ := args.Get(0).([]domain.Review); r != nil {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockWishlistStore struct{ mock.Mock }

func (m *mockWishlistStore) ListByUser(ctx context.Context, userID string) ([]domain.WishlistItem, error) {
	args := m.Called(ctx, userID)
	if w, _ := args.Get(0).([]domain.WishlistItem); w != nil {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) UploadBase64(ctx context.Context, key, b64Data string) (string, error) {
	args := m.Called(ctx, key, b64Data)
	return args.String(0), args.Error(1)
}
func (m *mockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func noReviews(rs *mockReviewStore) {
	rs.On("ListByProduct", mock.Anything, mock.Anything).Return([]domain.Review{}, nil)
}

func shirt(pid string) domain.Product {
	return domain.Product{
		ProductID:         pid,
		Title:             "Linen Shirt",
		CategoryIDs:       []string{"cat-men"},
		SubCategoryIDs:    []string{"sub-shirts"},
		ManufacturerBrand: "Poky",
		Features:          domain.Features{Material: "linen"},
		Colors:            []domain.ColorVariant{{Color: "Blue", Sizes: []domain.SizeStock{{Size: "M", Stock: 3}}}},
	}
}

func TestCreate_DerivesTotalStock(t *testing.T) {
	ps := &mockProductStore{}
	ps.On("GetByCode", mock.Anything, "PK-001").Return(nil, domain.ErrNotFound)
	var created *domain.Product
	ps.On("Put", mock.Anything, mock.AnythingOfType("*domain.Product")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Product) }).
		Return(nil)

	svc := NewService(ServiceDeps{ProductRepo: ps})
	_, err := svc.Create(context.Background(), domain.CreateProductRequest{
		ProductCode:    "PK-001",
		Title:          "Linen Shirt",
		CategoryIDs:    []string{"cat-men"},
		SubCategoryIDs: []string{"sub-shirts"},
		Price:          999,
		Colors: []domain.ColorVariant{
			{Color: "Blue", Sizes: []domain.SizeStock{{Size: "M", Stock: 3}, {Size: "L", Stock: 2}}},
			{Color: "White", Sizes: []domain.SizeStock{{Size: "M", Stock: 5}}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 10, created.TotalStock)
	assert.NotEmpty(t, created.ProductID)
}

func TestCreate_DuplicateCode_Conflict(t *testing.T) {
	ps := &mockProductStore{}
	ps.On("GetByCode", mock.Anything, "PK-001").Return(&domain.Product{ProductID: "p1"}, nil)

	svc := NewService(ServiceDeps{ProductRepo: ps})
	_, err := svc.Create(context.Background(), domain.CreateProductRequest{ProductCode: "PK-001"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	ps.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCreate_UploadsImages(t *testing.T) {
	ps := &mockProductStore{}
	img := &mockImageStore{}
	ps.On("GetByCode", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
	ps.On("Put", mock.Anything, mock.Anything).Return(nil)
	img.On("UploadBase64", mock.Anything, mock.Anything, "b64-a").Return("https://cdn/x/0", nil)
	img.On("UploadBase64", mock.Anything, mock.Anything, "b64-b").Return("https://cdn/x/1", nil)

	svc := NewService(ServiceDeps{ProductRepo: ps, Images: img})
	p, err := svc.Create(context.Background(), domain.CreateProductRequest{
		ProductCode:  "PK-002",
		ImagesBase64: []string{"b64-a", "b64-b"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/x/0", "https://cdn/x/1"}, p.ImageURLs)
	assert.Len(t, p.ImageKeys, 2)
}

func TestUpdate_ColorsRecomputeStock(t *testing.T) {
	ps := &mockProductStore{}
	existing := shirt("p1")
	ps.On("Get", mock.Anything, "p1").Return(&existing, nil)
	newColors := []domain.ColorVariant{{Color: "Red", Sizes: []domain.SizeStock{{Size: "S", Stock: 7}}}}
	ps.On("Update", mock.Anything, "p1", mock.MatchedBy(func(m map[string]interface{}) bool {
		return m["total_stock"] == 7
	})).Return(nil)

	svc := NewService(ServiceDeps{ProductRepo: ps})
	p, err := svc.Update(context.Background(), "p1", domain.UpdateProductRequest{Colors: &newColors})
	require.NoError(t, err)
	assert.Equal(t, 7, p.TotalStock)
	ps.AssertExpectations(t)
}

func TestUpdate_NoFields_NoWrite(t *testing.T) {
	ps := &mockProductStore{}
	existing := shirt("p1")
	ps.On("Get", mock.Anything, "p1").Return(&existing, nil)

	svc := NewService(ServiceDeps{ProductRepo: ps})
	_, err := svc.Update(context.Background(), "p1", domain.UpdateProductRequest{})
	require.NoError(t, err)
	ps.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestDelete_RemovesImagesFirst(t *testing.T) {
	ps := &mockProductStore{}
	img := &mockImageStore{}
	existing := shirt("p1")
	existing.ImageKeys = []string{"products/p1/0"}
	ps.On("Get", mock.Anything, "p1").Return(&existing, nil)
	img.On("Delete", mock.Anything, "products/p1/0").Return(nil)
	ps.On("Delete", mock.Anything, "p1").Return(nil)

	svc := NewService(ServiceDeps{ProductRepo: ps, Images: img})
	require.NoError(t, svc.Delete(context.Background(), "p1"))
	img.AssertExpectations(t)
	ps.AssertExpectations(t)
}

func TestList_AnonymousViewer_NoWishlistLookup(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}
	ws := &mockWishlistStore{}
	ps.On("Scan", mock.Anything).Return([]domain.Product{shirt("p1")}, nil)
	noReviews(rs)

	svc := NewService(ServiceDeps{ProductRepo: ps, ReviewRepo: rs, WishlistRepo: ws})
	listings, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.False(t, listings[0].InWishlist)
	ws.AssertNotCalled(t, "ListByUser", mock.Anything, mock.Anything)
}

func TestList_WishlistFlagAndRatingAverage(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}
	ws := &mockWishlistStore{}
	ps.On("Scan", mock.Anything).Return([]domain.Product{shirt("p1"), shirt("p2")}, nil)
	ws.On("ListByUser", mock.Anything, "u1").Return([]domain.WishlistItem{{UserID: "u1", ProductID: "p2"}}, nil)
	rs.On("ListByProduct", mock.Anything, "p1").Return([]domain.Review{
		{Rating: 5}, {Rating: 4}, {Rating: 4},
	}, nil)
	rs.On("ListByProduct", mock.Anything, "p2").Return([]domain.Review{}, nil)

	svc := NewService(ServiceDeps{ProductRepo: ps, ReviewRepo: rs, WishlistRepo: ws})
	listings, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.False(t, listings[0].InWishlist)
	assert.InDelta(t, 4.3, listings[0].AverageRating, 0.001)
	assert.Equal(t, 3, listings[0].ReviewCount)
	// Bulk listings do not embed the review bodies.
	assert.Nil(t, listings[0].Reviews)

	assert.True(t, listings[1].InWishlist)
	assert.Zero(t, listings[1].AverageRating)
}

func TestGet_EmbedsReviews(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}
	existing := shirt("p1")
	ps.On("Get", mock.Anything, "p1").Return(&existing, nil)
	rs.On("ListByProduct", mock.Anything, "p1").Return([]domain.Review{{ReviewID: "r1", Rating: 4}}, nil)

	svc := NewService(ServiceDeps{ProductRepo: ps, ReviewRepo: rs})
	listing, err := svc.Get(context.Background(), "p1", "")
	require.NoError(t, err)
	require.Len(t, listing.Reviews, 1)
	assert.Equal(t, "r1", listing.Reviews[0].ReviewID)
	assert.InDelta(t, 4.0, listing.AverageRating, 0.001)
}

func TestSearch_CaseInsensitiveContains(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}
	other := shirt("p2")
	other.Title = "Denim Jacket"
	ps.On("Scan", mock.Anything).Return([]domain.Product{shirt("p1"), other}, nil)
	noReviews(rs)

	svc := NewService(ServiceDeps{ProductRepo: ps, ReviewRepo: rs})
	listings, err := svc.Search(context.Background(), "LINEN", "")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "p1", listings[0].ProductID)
}

func TestListByCategory_FiltersMembership(t *testing.T) {
	ps := &mockProductStore{}
	rs := &mockReviewStore{}
	other := shirt("p2")
	other.CategoryIDs = []string{"cat-women"}
	ps.On("Scan", mock.Anything).Return([]domain.Product{shirt("p1"), other}, nil)
	noReviews(rs)

	svc := NewService(ServiceDeps{ProductRepo: ps, ReviewRepo: rs})
	listings, err := svc.ListByCategory(context.Background(), "cat-men", "")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "p1", listings[0].ProductID)
}

func TestSimilar_MatchesSharedAttributes(t *testing.T) {
	ref := shirt("p1")

	sameColor := shirt("p2")
	sameColor.Features.Material = "cotton"
	sameColor.ManufacturerBrand = "Other"

	sameMaterial := shirt("p3")
	sameMaterial.Colors = []domain.ColorVariant{{Color: "Green"}}
	sameMaterial.ManufacturerBrand = "Other"

	noOverlap := shirt("p4")
	noOverlap.Colors = []domain.ColorVariant{{Color: "Green"}}
	noOverlap.Features.Material = "wool"
	noOverlap.ManufacturerBrand = "Other"

	wrongCategory := shirt("p5")
	wrongCategory.CategoryIDs = []string{"cat-women"}

	ps := &mockProductStore{}
	rs := &mockReviewStore{}
	ps.On("Get", mock.Anything, "p1").Return(&ref, nil)
	ps.On("Scan", mock.Anything).Return([]domain.Product{ref, sameColor, sameMaterial, noOverlap, wrongCategory}, nil)
	noReviews(rs)

	svc := NewService(ServiceDeps{ProductRepo: ps, ReviewRepo: rs})
	listings, err := svc.Similar(context.Background(), "p1", "")
	require.NoError(t, err)

	got := make([]string, 0, len(listings))
	for _, l := range listings {
		got = append(got, l.ProductID)
	}
	// The reference product itself is excluded; p4 shares category but no
	// attribute; p5 is in another category.
	assert.Equal(t, []string{"p2", "p3"}, got)
}

package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"shopkart/internal/domain/entity"
	domainerrors "shopkart/internal/domain/errors"
	"shopkart/internal/domain/service"
	"shopkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	service   usecase.CatalogUsecase
	factory   *fakeRepoFactory
	publisher *fakePublisher
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()

	factory := newFakeRepoFactory()
	publisher := &fakePublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	service := NewCatalogService(
		&fakeTxManager{factory: factory},
		fakeQRService{},
		publisher,
		logger,
	)

	return &catalogFixture{service: service, factory: factory, publisher: publisher}
}

func (f *catalogFixture) seedBrand(t *testing.T) *entity.Brand {
	t.Helper()

	brand, err := f.service.CreateBrand(context.Background(), &usecase.CreateBrandInput{Name: "Acme"})
	require.NoError(t, err)

	return brand
}

func (f *catalogFixture) seedProduct(t *testing.T, ownerID uuid.UUID) *entity.Product {
	t.Helper()

	brand := f.seedBrand(t)

	product, err := f.service.CreateProduct(context.Background(), &usecase.CreateProductInput{
		OwnerID:      ownerID,
		OwnerRole:    "seller",
		Title:        "Rocket Skates",
		BrandID:      brand.ID,
		Price:        4999,
		CountInStock: 10,
	})
	require.NoError(t, err)

	return product
}

func TestCreateBrand(t *testing.T) {
	fixture := newCatalogFixture(t)

	brand, err := fixture.service.CreateBrand(context.Background(), &usecase.CreateBrandInput{
		Name:        "Acme",
		Description: "Everything a coyote needs",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, brand.ID)
	assert.Equal(t, entity.BrandStatusActive, brand.Status, "status defaults to active")

	got, err := fixture.service.GetBrand(context.Background(), brand.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestCreateBrand_Invalid(t *testing.T) {
	fixture := newCatalogFixture(t)

	_, err := fixture.service.CreateBrand(context.Background(), &usecase.CreateBrandInput{Name: "  "})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))

	_, err = fixture.service.CreateBrand(context.Background(), &usecase.CreateBrandInput{
		Name:   "Acme",
		Status: "dormant",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidInput))
}

func TestGetBrand_NotFound(t *testing.T) {
	fixture := newCatalogFixture(t)

	_, err := fixture.service.GetBrand(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrBrandNotFound))
}

func TestCreateProduct(t *testing.T) {
	fixture := newCatalogFixture(t)
	ownerID := uuid.New()

	product := fixture.seedProduct(t, ownerID)

	assert.Equal(t, ownerID, product.OwnerID)
	assert.Zero(t, product.Rating)
	assert.Zero(t, product.NumReviews)

	events := fixture.publisher.published()
	require.Len(t, events, 1)
	assert.Equal(t, service.EventTypeProductCreated, events[0].Type)
	assert.Equal(t, product.ID.String(), events[0].ProductID)
}

func TestCreateProduct_RoleForbidden(t *testing.T) {
	fixture := newCatalogFixture(t)
	brand := fixture.seedBrand(t)

	_, err := fixture.service.CreateProduct(context.Background(), &usecase.CreateProductInput{
		OwnerID:   uuid.New(),
		OwnerRole: "user",
		Title:     "Rocket Skates",
		BrandID:   brand.ID,
	})
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestCreateProduct_UnknownBrand(t *testing.T) {
	fixture := newCatalogFixture(t)

	_, err := fixture.service.CreateProduct(context.Background(), &usecase.CreateProductInput{
		OwnerID:   uuid.New(),
		OwnerRole: "admin",
		Title:     "Rocket Skates",
		BrandID:   uuid.New(),
	})
	assert.True(t, errors.Is(err, domainerrors.ErrBrandNotFound))
}

func TestListProducts_Pagination(t *testing.T) {
	fixture := newCatalogFixture(t)
	brand := fixture.seedBrand(t)

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := fixture.service.CreateProduct(context.Background(), &usecase.CreateProductInput{
			OwnerID:   uuid.New(),
			OwnerRole: "seller",
			Title:     title,
			BrandID:   brand.ID,
		})
		require.NoError(t, err)
	}

	page, err := fixture.service.ListProducts(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "Two", page[0].Title)
	assert.Equal(t, "Three", page[1].Title)
}

func TestRateProduct_UpdatesAggregates(t *testing.T) {
	fixture := newCatalogFixture(t)
	product := fixture.seedProduct(t, uuid.New())

	for _, score := range []int{5, 3} {
		_, err := fixture.service.RateProduct(context.Background(), &usecase.RateProductInput{
			UserID:    uuid.New(),
			ProductID: product.ID,
			Score:     score,
			Comment:   "solid build quality",
		})
		require.NoError(t, err)
	}

	got, err := fixture.service.GetProduct(context.Background(), product.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got.Rating, 0.001)
	assert.EqualValues(t, 2, got.NumReviews)

	ratings, err := fixture.service.ListProductRatings(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Len(t, ratings, 2)
}

func TestRateProduct_ScoreOutOfRange(t *testing.T) {
	fixture := newCatalogFixture(t)
	product := fixture.seedProduct(t, uuid.New())

	_, err := fixture.service.RateProduct(context.Background(), &usecase.RateProductInput{
		UserID:    uuid.New(),
		ProductID: product.ID,
		Score:     6,
		Comment:   "off the scale",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidRating))
}

func TestRateProduct_BlankComment(t *testing.T) {
	fixture := newCatalogFixture(t)
	product := fixture.seedProduct(t, uuid.New())

	for _, comment := range []string{"", "   "} {
		_, err := fixture.service.RateProduct(context.Background(), &usecase.RateProductInput{
			UserID:    uuid.New(),
			ProductID: product.ID,
			Score:     4,
			Comment:   comment,
		})
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidRating))
	}

	ratings, err := fixture.service.ListProductRatings(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Empty(t, ratings)
}

func TestRateProduct_UnknownProduct(t *testing.T) {
	fixture := newCatalogFixture(t)

	_, err := fixture.service.RateProduct(context.Background(), &usecase.RateProductInput{
		UserID:    uuid.New(),
		ProductID: uuid.New(),
		Score:     4,
		Comment:   "decent",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestProductQRCode(t *testing.T) {
	fixture := newCatalogFixture(t)
	product := fixture.seedProduct(t, uuid.New())

	png, err := fixture.service.ProductQRCode(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("qr:"+product.ID.String()), png)

	_, err = fixture.service.ProductQRCode(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

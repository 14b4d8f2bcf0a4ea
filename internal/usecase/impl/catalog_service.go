package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "shopkart/internal/delivery/context"
	"shopkart/internal/domain/entity"
	domainerrors "shopkart/internal/domain/errors"
	"shopkart/internal/domain/repository"
	"shopkart/internal/domain/service"
	"shopkart/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	txManager repository.TransactionManager
	qrService service.QRCodeService
	publisher service.EventPublisher
	logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	txManager repository.TransactionManager,
	qrService service.QRCodeService,
	publisher service.EventPublisher,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		txManager: txManager,
		qrService: qrService,
		publisher: publisher,
		logger:    logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateBrand stores a new brand. Brand names are unique.
func (srv *catalogService) CreateBrand(ctx context.Context, input *usecase.CreateBrandInput) (*entity.Brand, error) {
	srv.log(ctx).Info("Creating brand", slog.String("name", input.Name))

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidInput, "brand name is required")
	}

	status := entity.BrandStatus(input.Status)
	if input.Status == "" {
		status = entity.BrandStatusActive
	}
	if !status.IsValid() {
		return nil, errors.Wrapf(domainerrors.ErrInvalidInput, "brand status %q is not allowed", input.Status)
	}

	brand := &entity.Brand{
		Name:        name,
		Description: input.Description,
		Image:       input.Image,
		Website:     input.Website,
		Phone:       input.Phone,
		Email:       input.Email,
		Address:     input.Address,
		Status:      status,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.BrandRepo().Create(ctx, brand); err != nil {
			return errors.Wrap(err, "failed to create brand")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create brand", slog.Any("error", err), slog.String("name", name))

		return nil, err
	}
	srv.log(ctx).Info("Successfully created brand", slog.Any("brand_id", brand.ID))

	return brand, nil
}

// ListBrands returns every brand.
func (srv *catalogService) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	var brands []*entity.Brand

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		brands, err = repoFactory.BrandRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list brands")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list brands", slog.Any("error", err))

		return nil, err
	}

	return brands, nil
}

// GetBrand returns one brand by id.
func (srv *catalogService) GetBrand(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	var brand *entity.Brand

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		brand, err = repoFactory.BrandRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrBrandNotFound) {
				return errors.Wrap(domainerrors.ErrBrandNotFound, "brand not found")
			}

			return errors.Wrap(err, "failed to find brand")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to get brand", slog.Any("error", err), slog.Any("brand_id", id))

		return nil, err
	}

	return brand, nil
}

// CreateProduct stores a new product for a seller or admin account.
func (srv *catalogService) CreateProduct(ctx context.Context, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.String("title", input.Title), slog.Any("owner_id", input.OwnerID))

	if !entity.Role(input.OwnerRole).CanListProducts() {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "account cannot list products")
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidInput, "product title is required")
	}
	if input.Price < 0 || input.Discount < 0 || input.CountInStock < 0 {
		return nil, errors.Wrap(domainerrors.ErrInvalidInput, "price, discount and stock must be non-negative")
	}

	images := make([]entity.ProductImage, 0, len(input.ImageURLs))
	for _, url := range input.ImageURLs {
		images = append(images, entity.ProductImage{URL: url})
	}

	product := &entity.Product{
		Title:        title,
		Description:  input.Description,
		BrandID:      input.BrandID,
		Images:       images,
		Price:        input.Price,
		Discount:     input.Discount,
		CountInStock: input.CountInStock,
		IsFeatured:   input.IsFeatured,
		OwnerID:      input.OwnerID,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.BrandRepo().FindByID(ctx, input.BrandID); err != nil {
			if errors.Is(err, repository.ErrBrandNotFound) {
				return errors.Wrap(domainerrors.ErrBrandNotFound, "brand not found")
			}

			return errors.Wrap(err, "failed to find brand")
		}

		if err := repoFactory.ProductRepo().Create(ctx, product); err != nil {
			return errors.Wrap(err, "failed to create product")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create product", slog.Any("error", err), slog.String("title", title))

		return nil, err
	}
	srv.log(ctx).Info("Successfully created product", slog.Any("product_id", product.ID))

	srv.publishEvent(ctx, service.EventTypeProductCreated, product.ID, input.OwnerID)

	return product, nil
}

// ListProducts returns a page of products.
func (srv *catalogService) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	var products []*entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		products, err = repoFactory.ProductRepo().List(ctx, limit, offset)
		if err != nil {
			return errors.Wrap(err, "failed to list products")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list products", slog.Any("error", err))

		return nil, err
	}

	return products, nil
}

// GetProduct returns one product by id.
func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product *entity.Product

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		product, err = repoFactory.ProductRepo().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to get product", slog.Any("error", err), slog.Any("product_id", id))

		return nil, err
	}

	return product, nil
}

// ProductQRCode renders a share QR code for an existing product.
func (srv *catalogService) ProductQRCode(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := srv.GetProduct(ctx, id); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateProductQRCode(id)
	if err != nil {
		srv.log(ctx).Error("Failed to generate QR code", slog.Any("error", err), slog.Any("product_id", id))

		return nil, errors.Wrap(domainerrors.ErrInternalError, "failed to generate QR code")
	}

	return png, nil
}

// RateProduct stores the rating and recomputes the product's aggregate
// rating fields inside the same transaction.
func (srv *catalogService) RateProduct(ctx context.Context, input *usecase.RateProductInput) (*entity.Rating, error) {
	srv.log(ctx).Info("Rating product", slog.Any("product_id", input.ProductID), slog.Any("user_id", input.UserID))

	if input.Score < 0 || input.Score > 5 {
		return nil, errors.Wrap(domainerrors.ErrInvalidRating, "score must be between 0 and 5")
	}

	comment := strings.TrimSpace(input.Comment)
	if comment == "" {
		return nil, errors.Wrap(domainerrors.ErrInvalidRating, "comment is required")
	}

	rating := &entity.Rating{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Score:     input.Score,
		Comment:   comment,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		ratingRepo := repoFactory.RatingRepo()

		if _, err := productRepo.FindByID(ctx, input.ProductID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := ratingRepo.Create(ctx, rating); err != nil {
			return errors.Wrap(err, "failed to create rating")
		}

		ratings, err := ratingRepo.ListByProduct(ctx, input.ProductID)
		if err != nil {
			return errors.Wrap(err, "failed to list ratings")
		}

		average := averageScore(ratings)
		if err := productRepo.UpdateRatingStats(ctx, input.ProductID, average, len(ratings)); err != nil {
			return errors.Wrap(err, "failed to update rating stats")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to rate product", slog.Any("error", err), slog.Any("product_id", input.ProductID))

		return nil, err
	}
	srv.log(ctx).Info("Successfully rated product", slog.Any("rating_id", rating.ID))

	srv.publishEvent(ctx, service.EventTypeRatingCreated, input.ProductID, input.UserID)

	return rating, nil
}

// ListProductRatings returns every rating stored for a product.
func (srv *catalogService) ListProductRatings(ctx context.Context, productID uuid.UUID) ([]*entity.Rating, error) {
	var ratings []*entity.Rating

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.ProductRepo().FindByID(ctx, productID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		var err error
		ratings, err = repoFactory.RatingRepo().ListByProduct(ctx, productID)
		if err != nil {
			return errors.Wrap(err, "failed to list ratings")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to list ratings", slog.Any("error", err), slog.Any("product_id", productID))

		return nil, err
	}

	return ratings, nil
}

// publishEvent emits a catalog event. Publishing is best-effort: a delivery
// failure is logged and never fails the caller's operation.
func (srv *catalogService) publishEvent(ctx context.Context, eventType string, productID, actorID uuid.UUID) {
	event := &service.CatalogEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		ProductID:  productID.String(),
		ActorID:    actorID.String(),
		OccurredAt: time.Now().UTC(),
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
	}

	if err := srv.publisher.PublishCatalogEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish catalog event", slog.Any("error", err), slog.String("event_type", eventType))
	}
}

func averageScore(ratings []*entity.Rating) float64 {
	if len(ratings) == 0 {
		return 0
	}

	var sum int
	for _, r := range ratings {
		sum += r.Score
	}

	return float64(sum) / float64(len(ratings))
}

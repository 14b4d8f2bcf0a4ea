package main

import (
	"context"
	"log/slog"
	"os"

	"shopkart/config"
	"shopkart/internal/delivery"
	"shopkart/internal/delivery/api"
	apimiddleware "shopkart/internal/delivery/api/middleware"
	"shopkart/internal/delivery/api/router/handler"
	"shopkart/internal/domain/repository"
	"shopkart/internal/domain/service"
	"shopkart/internal/infra/auth"
	logs "shopkart/internal/infra/log"
	"shopkart/internal/infra/persistence/postgres"
	"shopkart/internal/infra/pubsub"
	"shopkart/internal/infra/qrcode"
	"shopkart/internal/infra/storage"
	"shopkart/internal/usecase"
	"shopkart/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
		),
		storage.Module,
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTCodec,
			qrcode.NewQRCodeService,
		),
	)
}

// newAuthService unpacks the revocation toggle from the configuration
func newAuthService(
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	codec service.TokenCodec,
	avatarStorage service.ImageStorage,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.AuthUsecase {
	return impl.NewAuthService(txManager, hasher, codec, avatarStorage, cfg.Auth.RevokeOnPasswordChange, logger)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			newAuthService,
			impl.NewCatalogService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
			apimiddleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewBrandHandler,
			handler.NewProductHandler,
			handler.NewRatingHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}

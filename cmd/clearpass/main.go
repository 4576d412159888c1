package main

import (
	"context"
	"log/slog"
	"os"

	"clearpass/config"
	"clearpass/internal/delivery"
	"clearpass/internal/delivery/http"
	"clearpass/internal/delivery/http/middleware"
	"clearpass/internal/delivery/http/router/handler"
	"clearpass/internal/infra/auth"
	"clearpass/internal/infra/auth/google"
	"clearpass/internal/infra/catalog"
	"clearpass/internal/infra/cipher"
	logs "clearpass/internal/infra/log"
	"clearpass/internal/infra/persistence/jsonstore"
	"clearpass/internal/usecase/impl"

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
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		jsonstore.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			jsonstore.NewUserRepository,
			jsonstore.NewImporterRepository,
			catalog.NewCachedProductRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			google.NewAuthService,
			cipher.NewAESFieldCipher,
			catalog.NewClient,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewProductService,
			impl.NewImporterService,
			impl.NewRankingService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProductHandler,
			handler.NewImporterHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
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

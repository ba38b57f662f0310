package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/hasaanhameed/TrackCraft/config"
	"github.com/hasaanhameed/TrackCraft/internal/delivery"
	"github.com/hasaanhameed/TrackCraft/internal/delivery/http"
	httpmiddleware "github.com/hasaanhameed/TrackCraft/internal/delivery/http/middleware"
	"github.com/hasaanhameed/TrackCraft/internal/delivery/http/router/handler"
	coremiddleware "github.com/hasaanhameed/TrackCraft/internal/delivery/middleware"
	"github.com/hasaanhameed/TrackCraft/internal/infra/auth"
	logs "github.com/hasaanhameed/TrackCraft/internal/infra/log"
	"github.com/hasaanhameed/TrackCraft/internal/infra/persistence/postgres"
	"github.com/hasaanhameed/TrackCraft/internal/usecase/impl"

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
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewExpenseRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewProfileService,
			impl.NewExpenseService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
			httpmiddleware.NewErrorMiddleware,
			coremiddleware.NewRequestIDMiddleware,
			coremiddleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewExpenseHandler,
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

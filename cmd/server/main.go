package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/lmittmann/tint"
	_ "github.com/mattn/go-sqlite3"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/pflag"

	"github.com/SlavaShagalov/user-list/internal/pkg/app"
	"github.com/SlavaShagalov/user-list/internal/pkg/i18n"
	"github.com/SlavaShagalov/user-list/internal/service"
	"github.com/SlavaShagalov/user-list/internal/userlist/delivery"
	"github.com/SlavaShagalov/user-list/internal/userlist/fields"
	"github.com/SlavaShagalov/user-list/internal/userlist/repository"
	"github.com/SlavaShagalov/user-list/internal/userlist/usecase"
	"github.com/SlavaShagalov/user-list/internal/userlist/view"
	"github.com/SlavaShagalov/user-list/pkg/migrations"
	"github.com/SlavaShagalov/user-list/pkg/statistics"
)

type WebApp interface {
	Start() error
	Shutdown(ctx context.Context) error
}

func startApp(webApp WebApp, config app.Config, logger *slog.Logger) {
	logger.Debug(fmt.Sprintf("web app starts at %s", config.Web.Addr()))

	go func() {
		err := webApp.Start()
		if err != nil {
			panic(err)
		}
	}()
}

func shutdownApp(webApp WebApp, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Debug("shutdown web app ...")

	const shutdownTimeout = time.Minute
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)

	err := webApp.Shutdown(ctx)
	if err != nil {
		panic(err)
	}

	cancel()
	logger.Debug("web app exited")
}

func main() {
	var configPath string
	pflag.StringVarP(&configPath, "config", "c", "configs/server.yaml", "Config file path")
	pflag.Parse()

	config, err := app.ReadLocalConfig(configPath)
	if err != nil {
		panic(err)
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.Level(config.Logging.Level)}))

	if config.Nonce.Secret == "" {
		panic("nonce secret is not configured")
	}

	if config.DB.Migrations != "" {
		err = migrations.Do(migrations.DatabaseURL(config.DB.DriverName, config.DB.ConnectionString), config.DB.Migrations, logger)
		if err != nil {
			panic(err)
		}
	}

	db, err := sqlx.Connect(config.DB.DriverName, config.DB.ConnectionString)
	if err != nil {
		panic(err)
	}

	defer func(db *sqlx.DB) {
		err = db.Close()
		if err != nil {
			panic(err)
		}
	}(db)

	lang := i18n.Match(config.List.Language)
	printer := i18n.Printer(lang)
	registry := fields.Default(printer)

	repo := repository.NewSqlxRepository(db, logger)
	useCase := usecase.New(repo, registry, printer, logger)

	nonces := service.NewNonceService(config.Nonce.Secret, config.Nonce.Lifetime)
	nonceMW := app.NonceMiddleware(nonces, service.ListUsersAction, logger)

	listDelivery := delivery.New(useCase, nonces, nonceMW, delivery.PageConfig{
		Title:    i18n.Translate(printer, "Users"),
		Lang:     lang.String(),
		HtmxURL:  config.Web.HtmxURL,
		RoleHint: i18n.Translate(printer, "Select role..."),
		Labels:   view.DefaultLabels(printer),
	}, logger)

	var middlewares []fiber.Handler
	if config.Kafka.Enabled() {
		kafkaStatWriter := &kafka.Writer{
			Addr:                   kafka.TCP(config.Kafka.Addresses...),
			Topic:                  config.Kafka.Topic,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			Async:                  true,
		}
		defer kafkaStatWriter.Close()

		stat := statistics.NewKafkaStatistics(nil, kafkaStatWriter, logger, nil)
		middlewares = append(middlewares, app.NewStatisticsMW(stat, logger, delivery.ListPath, delivery.FragmentPath))
	}

	webApp := app.NewFiberApp(config.Web, listDelivery, logger, middlewares...)

	startApp(webApp, config, logger)
	shutdownApp(webApp, logger)
}

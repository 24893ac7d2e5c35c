package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/lmittmann/tint"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/spf13/pflag"

	"github.com/SlavaShagalov/user-list/internal/pkg/app"
	"github.com/SlavaShagalov/user-list/internal/requests/repository"
	"github.com/SlavaShagalov/user-list/pkg/migrations"
	"github.com/SlavaShagalov/user-list/pkg/statistics"
)

func main() {
	var configPath, migrationsPath string
	pflag.StringVarP(&configPath, "config", "c", "configs/statistics.yaml", "Config file path")
	pflag.StringVarP(&migrationsPath, "migrations", "", "", "Migrations directory path, overrides db.migrations")
	pflag.Parse()

	config, err := app.ReadLocalConfig(configPath)
	if err != nil {
		panic(err)
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{Level: slog.Level(config.Logging.Level)}))

	if !config.Kafka.Enabled() {
		panic("kafka is not configured")
	}

	if migrationsPath == "" {
		migrationsPath = config.DB.Migrations
	}
	err = migrations.Do(migrations.DatabaseURL(config.DB.DriverName, config.DB.ConnectionString), migrationsPath, logger)
	if err != nil {
		panic(err)
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

	repo := repository.NewSqlxRepository(db, logger)

	// No consumer group: the reader replays the topic on restart and
	// list_requests ignores request ids it already holds.
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: config.Kafka.Addresses,
		Topic:   config.Kafka.Topic,
	})

	stat := statistics.NewKafkaStatistics(kafkaReader, nil, logger, repo)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		err = stat.SaveRequest(ctx)
		if ctx.Err() != nil {
			break
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error(err.Error())
		}
	}

	if err = kafkaReader.Close(); err != nil {
		logger.Error(err.Error())
	}
	logger.Debug("statistics consumer exited")
}

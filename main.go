package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sharebnb/internal/app"
	"sharebnb/internal/config"
	"sharebnb/internal/observability"
)

func main() {
	_ = godotenv.Load()

	log.Init(logrus.InfoLevel)

	cfg := config.Load()

	tp := observability.ConfigureTraceProvider(cfg.JaegerEndpoint)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURL))
	if err != nil {
		logrus.WithError(err).Panic("failed to connect to mongo")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.WithError(err).Panic("invalid redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	watermillLogger := log.NewWatermill(logrus.NewEntry(logrus.StandardLogger()))

	a, err := app.NewApp(
		cfg,
		watermillLogger,
		redisClient,
		mongoClient.Database(cfg.MongoDB),
	)
	if err != nil {
		logrus.WithError(err).Panic("failed to initialize app")
	}

	err = a.Run(ctx)
	if err != nil {
		logrus.WithError(err).Error("app stopped with error")
	}

	if err := tp.Shutdown(context.Background()); err != nil {
		logrus.WithError(err).Error("failed to shut down trace provider")
	}
}

package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func setupMongo(pool *dockertest.Pool, logger *zap.Logger) (*mongo.Client, func(), error) {
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "7",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		logger.Fatal("Could not start resource", zap.Error(err))
		return nil, nil, err
	}

	mongoURL := fmt.Sprintf("mongodb://%s", resource.GetHostPort("27017/tcp"))
	logger.Info("Launching MongoDB", zap.String("url", mongoURL))

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Fatal("Could not create mongo client", zap.Error(err))
		return nil, nil, err
	}

	pool.MaxWait = 120 * time.Second
	retryCount := 0
	if err = pool.Retry(func() error {
		err := client.Ping(context.Background(), nil)
		if err != nil {
			retryCount++
			logger.Debug("MongoDB not ready yet, retrying...", zap.Int("retry", retryCount))
			return err
		}

		return nil
	}); err != nil {
		logger.Fatal("Could not connect to resource", zap.Error(err))
	}

	cleanup := func() {
		err := client.Disconnect(context.Background())
		if err != nil {
			logger.Error("Failed to disconnect mongo client", zap.Error(err))
		}

		err = pool.Purge(resource)
		if err != nil {
			logger.Error("Failed to purge resource", zap.Error(err))
		} else {
			logger.Info("Successfully purged resource")
		}
	}

	return client, cleanup, nil
}

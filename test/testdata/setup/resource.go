package setup

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type ResourceManager struct {
	mu     sync.Mutex
	logger *zap.Logger

	pool     *dockertest.Pool
	postgres *pgxpool.Pool
	mongo    *mongo.Client

	cleanups []func()
}

// SetupPostgres ensures that a PostgreSQL container is running and returns a new transaction.
//
// The transaction is rolled back when the returned cleanup function is called,
// which should typically be deferred by the caller to ensure test data is cleaned up.
//
// Usage:
//
//	tx, rollback, err := rm.SetupPostgres()
//	defer rollback()
func (r *ResourceManager) SetupPostgres() (pgx.Tx, func(), error) {
	pool, err := r.PostgresPool()
	if err != nil {
		return nil, nil, err
	}

	tx, err := pool.Begin(context.Background())
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		err := tx.Rollback(context.Background())
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			r.logger.Error("Failed to rollback transaction", zap.Error(err))
		}
	}

	return tx, cleanup, nil
}

// PostgresPool returns the shared migrated pool. Tests that need several
// connections at once, such as concurrent inserts, use it instead of a
// single transaction.
func (r *ResourceManager) PostgresPool() (*pgxpool.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.postgres == nil {
		pool, _, cleanup, err := setupPostgresWithMigrations(r.pool, r.logger, "file://../../../internal/database/migrations")
		if err != nil {
			return nil, err
		}

		r.postgres = pool
		r.cleanups = append(r.cleanups, cleanup)
	}

	return r.postgres, nil
}

// WithPostgresTx provides a convenient way to run a test within a PostgreSQL transaction.
//
// It automatically begins a new transaction from the shared pgx pool, passes it to the
// provided test function, and rolls it back after the function completes.
//
// The transaction will always be rolled back, even if the test fails or panics.
func (r *ResourceManager) WithPostgresTx(t *testing.T, fn func(tx pgx.Tx)) {
	tx, cleanup, err := r.SetupPostgres()
	require.NoError(t, err)
	defer cleanup()

	fn(tx)
}

// SetupMongo ensures that a MongoDB container is running and returns a fresh
// database. The database is dropped when the returned cleanup function is called.
func (r *ResourceManager) SetupMongo() (*mongo.Database, func(), error) {
	r.mu.Lock()
	if r.mongo == nil {
		client, cleanup, err := setupMongo(r.pool, r.logger)
		if err != nil {
			r.mu.Unlock()
			return nil, nil, err
		}

		r.mongo = client
		r.cleanups = append(r.cleanups, cleanup)
	}
	client := r.mongo
	r.mu.Unlock()

	db := client.Database("survey_" + uuid.NewString()[:8])

	cleanup := func() {
		err := db.Drop(context.Background())
		if err != nil {
			r.logger.Error("Failed to drop database", zap.String("database", db.Name()), zap.Error(err))
		}
	}

	return db, cleanup, nil
}

// WithMongoDatabase runs fn against a throwaway database.
func (r *ResourceManager) WithMongoDatabase(t *testing.T, fn func(db *mongo.Database)) {
	db, cleanup, err := r.SetupMongo()
	require.NoError(t, err)
	defer cleanup()

	fn(db)
}

func (r *ResourceManager) Cleanup() {
	for _, c := range r.cleanups {
		c()
	}
}

func NewResourceManager(logger *zap.Logger) (*ResourceManager, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, err
	}

	return &ResourceManager{
		pool:     pool,
		logger:   logger,
		cleanups: make([]func(), 0),
	}, nil
}

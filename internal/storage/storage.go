// Package storage opens the configured database and builds the repositories on top of it.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/internal/config"
	"storefront/internal/repositories"
)

// Store bundles the repositories of one backend.
type Store struct {
	Products   repositories.ProductRepository
	Users      repositories.UserRepository
	Categories repositories.CategoryRepository
	Orders     repositories.OrderRepository

	closer func(context.Context) error
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	if s.closer == nil {
		return nil
	}
	return s.closer(ctx)
}

// Open connects to the backend selected by cfg.DBDriver.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Store, error) {
	switch cfg.DBDriver {
	case "memory":
		return Memory(), nil
	case "sqlite":
		return openGORM(sqlite.Open(cfg.DatabaseDSN), log)
	case "postgres":
		return openGORM(postgres.Open(cfg.DatabaseDSN), log)
	case "mongo":
		return openMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// Memory returns a store that keeps everything in process memory.
func Memory() *Store {
	return &Store{
		Products:   repositories.NewMockProductRepository(),
		Users:      repositories.NewMockUserRepository(),
		Categories: repositories.NewMockCategoryRepository(),
		Orders:     repositories.NewMockOrderRepository(),
	}
}

// FromGORM builds a store on an open gorm connection after migrating the schema.
func FromGORM(db *gorm.DB) (*Store, error) {
	if err := repositories.AutoMigrate(db); err != nil {
		return nil, err
	}
	return &Store{
		Products:   repositories.NewGORMProductRepository(db),
		Users:      repositories.NewGORMUserRepository(db),
		Categories: repositories.NewGORMCategoryRepository(db),
		Orders:     repositories.NewGORMOrderRepository(db),
		closer: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}, nil
}

func openGORM(dialector gorm.Dialector, log *slog.Logger) (*Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(slog.NewLogLogger(log.Handler(), slog.LevelWarn), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return FromGORM(db)
}

func openMongo(ctx context.Context, uri, database string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	db := client.Database(database)
	if err := repositories.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Store{
		Products:   repositories.NewMongoProductRepository(db),
		Users:      repositories.NewMongoUserRepository(db),
		Categories: repositories.NewMongoCategoryRepository(db),
		Orders:     repositories.NewMongoOrderRepository(db),
		closer:     client.Disconnect,
	}, nil
}

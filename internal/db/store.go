package db

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"

	"hostelfood/internal/config"
)

// Store is an open connection to the configured backend. Exactly one of Gorm
// and Mongo is set.
type Store struct {
	Driver string
	Gorm   *gorm.DB
	Mongo  *mongo.Database

	mongoClient *mongo.Client
}

// Open connects to the backend selected by cfg.StoreDriver, prepares the
// schema (tables or indexes) and honours cfg.ResetDB.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.StoreDriver == config.DriverMongo {
		client, err := NewMongo(ctx, cfg.MongoURL, cfg.DBTimeout)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.DBName)
		if cfg.ResetDB {
			logrus.Warn("RESET_DB=true detected, dropping database")
			if err := database.Drop(ctx); err != nil {
				return nil, fmt.Errorf("drop database: %w", err)
			}
		}
		if err := EnsureIndexes(ctx, database); err != nil {
			return nil, err
		}
		return &Store{Driver: cfg.StoreDriver, Mongo: database, mongoClient: client}, nil
	}

	gormDB, err := NewGorm(cfg.StoreDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if cfg.ResetDB {
		logrus.Warn("RESET_DB=true detected, dropping all tables")
		if err := DropTables(gormDB); err != nil {
			return nil, err
		}
	}
	if err := AutoMigrate(gormDB); err != nil {
		return nil, err
	}
	return &Store{Driver: cfg.StoreDriver, Gorm: gormDB}, nil
}

// Ping verifies the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.mongoClient != nil {
		return s.mongoClient.Ping(ctx, readpref.Primary())
	}
	sqlDB, err := s.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the backend connections.
func (s *Store) Close(ctx context.Context) error {
	if s.mongoClient != nil {
		return s.mongoClient.Disconnect(ctx)
	}
	sqlDB, err := s.Gorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package config

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB holds the storage connections
type DB struct {
	Postgres *gorm.DB
	Mongo    *mongo.Client
	Redis    *redis.Client
}

// InitDB initializes and returns the storage connections. Redis is
// optional: without REDIS_ADDR the caches are simply disabled.
func InitDB(cfg *Config) (*DB, error) {
	if cfg.PostgresConnStr == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR environment variable not set")
	}
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI environment variable not set")
	}

	postgresDB, err := initPostgres(cfg.PostgresConnStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	mongoClient, err := initMongo(cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info().Msg("connected to Redis")
	}

	return &DB{
		Postgres: postgresDB,
		Mongo:    mongoClient,
		Redis:    redisClient,
	}, nil
}

// initPostgres initializes the PostgreSQL database connection using GORM.
// TranslateError maps unique-constraint violations to gorm.ErrDuplicatedKey,
// which the action ledger's toggle relies on.
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}

	log.Info().Msg("connected to PostgreSQL")
	return db, nil
}

// initMongo initializes the MongoDB connection
func initMongo(uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Info().Msg("connected to MongoDB")
	return client, nil
}

// CloseDB closes the storage connections
func (db *DB) CloseDB() {
	if db.Postgres != nil {
		if sqlDB, err := db.Postgres.DB(); err != nil {
			log.Error().Err(err).Msg("error getting SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			log.Error().Err(err).Msg("error closing PostgreSQL connection")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("error closing MongoDB connection")
		}
	}

	if db.Redis != nil {
		if err := db.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("error closing Redis connection")
		}
	}
}

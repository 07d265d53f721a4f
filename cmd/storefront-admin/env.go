package main

import (
	"storefront/internal/config"
	"storefront/internal/logging"
	"storefront/internal/repositories"
	"storefront/internal/repositories/cache"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env holds the connections a command needs.
type env struct {
	cfg    config.Config
	logger *zap.Logger
	db     *gorm.DB
	cache  *cache.CacheService
}

func openEnv() (*env, error) {
	cfg := config.Load()
	logger, err := logging.New(cfg.Env)
	if err != nil {
		return nil, err
	}

	db, err := repositories.InitDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	redisClient := cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &env{
		cfg:    cfg,
		logger: logger,
		db:     db,
		cache:  cache.NewCacheService(redisClient, cfg.TenantCacheTTL),
	}, nil
}

func (e *env) tenants() repositories.TenantRepository {
	return repositories.NewCachedTenantRepository(repositories.NewTenantRepository(e.db), e.cache, e.logger)
}

func (e *env) Close() {
	if sqlDB, err := e.db.DB(); err == nil {
		sqlDB.Close()
	}
	e.cache.Close()
	e.logger.Sync()
}

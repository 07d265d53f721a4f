package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/internal/models"
	keys "storefront/internal/utils/cache"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Tenant caching. A tenant is stored under both its id and its subdomain.
func (s *CacheService) CacheTenant(ctx context.Context, tenant *models.Tenant) error {
	if tenant == nil {
		return errors.New("cannot cache nil tenant")
	}
	for _, key := range tenantKeys(tenant.ID, tenant.Subdomain) {
		if err := s.Set(ctx, key, tenant); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetTenantBySubdomain(ctx context.Context, subdomain string) (*models.Tenant, error) {
	return s.getTenant(ctx, keys.GenerateKey(keys.EntityTenant, keys.KeySubdomain, subdomain))
}

func (s *CacheService) GetTenantByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	return s.getTenant(ctx, keys.GenerateKey(keys.EntityTenant, keys.KeyID, id))
}

func (s *CacheService) getTenant(ctx context.Context, key string) (*models.Tenant, error) {
	var tenant models.Tenant
	found, err := s.Get(ctx, key, &tenant)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &tenant, nil
}

// InvalidateTenant drops both keys of a tenant.
func (s *CacheService) InvalidateTenant(ctx context.Context, id uuid.UUID, subdomain string) error {
	return s.Delete(ctx, tenantKeys(id, subdomain)...)
}

func tenantKeys(id uuid.UUID, subdomain string) []string {
	return []string{
		keys.GenerateKey(keys.EntityTenant, keys.KeyID, id),
		keys.GenerateKey(keys.EntityTenant, keys.KeySubdomain, subdomain),
	}
}

// Close closes the Redis client connection
func (s *CacheService) Close() error {
	return s.client.Close()
}

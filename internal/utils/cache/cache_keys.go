package cache

import "fmt"

type EntityType string

const (
	EntityTenant EntityType = "tenant"
)

type KeyType string

const (
	KeyID        KeyType = "id"
	KeySubdomain KeyType = "subdomain"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, keyType KeyType, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entity, keyType, value)
}


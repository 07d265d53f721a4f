package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKey(t *testing.T) {
	assert.Equal(t, "tenant:subdomain:acme", GenerateKey(EntityTenant, KeySubdomain, "acme"))
	assert.Equal(t, "tenant:id:42", GenerateKey(EntityTenant, KeyID, 42))
}

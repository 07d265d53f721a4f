package tenant

import (
	"context"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// themeVariables maps branding keys to the CSS custom properties they drive.
var themeVariables = map[string]string{
	models.ConfigPrimaryColor:   "--color-primary",
	models.ConfigSecondaryColor: "--color-secondary",
	models.ConfigLogoURL:        "--logo-url",
}

// ThemeStore keeps the CSS variables of every tenant resolved so far. An entry
// is overwritten on each resolution of its tenant, so the last resolution wins.
type ThemeStore struct {
	mu     sync.RWMutex
	themes map[uuid.UUID]map[string]string
}

func NewThemeStore() *ThemeStore {
	return &ThemeStore{themes: make(map[uuid.UUID]map[string]string)}
}

func (s *ThemeStore) ApplyTheme(_ context.Context, tenantID uuid.UUID, config models.JSON) {
	vars := make(map[string]string, len(themeVariables))
	for key, variable := range themeVariables {
		if v, ok := config.String(key); ok {
			vars[variable] = v
		}
	}

	s.mu.Lock()
	s.themes[tenantID] = vars
	s.mu.Unlock()
}

// Variables returns a copy of the tenant's CSS variables.
func (s *ThemeStore) Variables(tenantID uuid.UUID) (map[string]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	vars, ok := s.themes[tenantID]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		out[k] = v
	}
	return out, true
}

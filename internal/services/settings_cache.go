package services

import (
	"context"
	"sync"

	"backoffice/internal/domain/models"
	"backoffice/internal/repositories"
)

// SettingsCache holds the agency settings for the whole process. The first
// Get loads them; Invalidate forces the next Get to reload.
type SettingsCache struct {
	store SettingsStore

	mu     sync.RWMutex
	loaded bool
	value  models.AgencySettings
}

// NewSettingsCache reads through store; a nil store uses the shared
// database connection.
func NewSettingsCache(store SettingsStore) *SettingsCache {
	if store == nil {
		store = repositories.SettingsRepository{}
	}
	return &SettingsCache{store: store}
}

// NewFixedSettings never touches a store.
func NewFixedSettings(s models.AgencySettings) *SettingsCache {
	return &SettingsCache{loaded: true, value: s}
}

func (c *SettingsCache) Get(ctx context.Context) (models.AgencySettings, error) {
	if c == nil {
		return models.DefaultAgencySettings(), nil
	}
	c.mu.RLock()
	if c.loaded {
		v := c.value
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return c.value, nil
	}
	if c.store == nil {
		return models.DefaultAgencySettings(), nil
	}
	v, err := c.store.GetAgencySettings(ctx)
	if err != nil {
		return models.AgencySettings{}, err
	}
	c.value = v
	c.loaded = true
	return v, nil
}

// Invalidate drops the cached value. Fixed settings are kept.
func (c *SettingsCache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return
	}
	c.loaded = false
	c.value = models.AgencySettings{}
}

// Package catalog loads the services catalog and organisation identity from
// JSON files. The files are read once at startup; a missing or unreadable
// catalog degrades to an empty one instead of failing the process, and
// validity lookups fall back to the default window at the call sites.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	domain "boaz/internal/domain/catalog"
	"boaz/internal/shared/config"
	"boaz/internal/shared/logger"
)

type JSONCatalog struct {
	mu           sync.RWMutex
	services     []domain.Service
	organisation *domain.Organisation
	logger       logger.Interface
}

// NewJSONCatalog loads both files eagerly. Load failures are logged and
// leave the corresponding section empty.
func NewJSONCatalog(cfg *config.CatalogConfig, log logger.Interface) *JSONCatalog {
	c := &JSONCatalog{logger: log}

	if err := c.loadServices(cfg.ServicesPath); err != nil {
		log.Warnw("services catalog unavailable, using empty catalog",
			"path", cfg.ServicesPath, "error", err)
	}
	if err := c.loadOrganisation(cfg.OrganisationPath); err != nil {
		log.Warnw("organisation details unavailable",
			"path", cfg.OrganisationPath, "error", err)
	}

	return c
}

func (c *JSONCatalog) loadServices(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read services file: %w", err)
	}

	var services []domain.Service
	if err := json.Unmarshal(data, &services); err != nil {
		return fmt.Errorf("failed to parse services file: %w", err)
	}

	c.mu.Lock()
	c.services = services
	c.mu.Unlock()

	c.logger.Infow("services catalog loaded", "path", path, "count", len(services))
	return nil
}

func (c *JSONCatalog) loadOrganisation(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read organisation file: %w", err)
	}

	var org domain.Organisation
	if err := json.Unmarshal(data, &org); err != nil {
		return fmt.Errorf("failed to parse organisation file: %w", err)
	}

	c.mu.Lock()
	c.organisation = &org
	c.mu.Unlock()

	return nil
}

func (c *JSONCatalog) ListServices(activeOnly bool) ([]domain.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	services := make([]domain.Service, 0, len(c.services))
	for _, s := range c.services {
		if activeOnly && !s.Active {
			continue
		}
		services = append(services, s)
	}
	return services, nil
}

func (c *JSONCatalog) GetService(id int) (*domain.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.services {
		if s.ID == id {
			svc := s
			return &svc, nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

func (c *JSONCatalog) GetServiceBySlug(slug string) (*domain.Service, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, s := range c.services {
		if strings.EqualFold(s.Slug, slug) {
			svc := s
			return &svc, nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

func (c *JSONCatalog) Organisation() (*domain.Organisation, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.organisation == nil {
		return nil, domain.ErrOrganisationMissing
	}
	org := *c.organisation
	return &org, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"promptdeck/internal/assets"
	"promptdeck/internal/models"
)

// MetadataService exposes the static catalog of known providers for
// populating choice lists in the UI. Pure lookup, no persistence.
type MetadataService interface {
	Startup(ctx context.Context) error
	GetProviderMetadata() map[string]models.ProviderMetadata
	GetProvider(id string) (*models.ProviderMetadata, error)
}

type metadataService struct {
	mu      sync.RWMutex
	catalog map[string]models.ProviderMetadata
}

type rawProviderFile struct {
	Providers map[string]models.ProviderMetadata `json:"providers"`
}

func NewMetadataService() MetadataService {
	return &metadataService{catalog: make(map[string]models.ProviderMetadata)}
}

func (s *metadataService) Startup(ctx context.Context) error {
	var parsed rawProviderFile
	if err := json.Unmarshal(assets.ProvidersData, &parsed); err != nil {
		return fmt.Errorf("parse providers asset: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = parsed.Providers
	return nil
}

// GetProviderMetadata returns a copy of the full catalog so callers cannot
// mutate the table.
func (s *metadataService) GetProviderMetadata() map[string]models.ProviderMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.ProviderMetadata, len(s.catalog))
	for id, meta := range s.catalog {
		out[id] = models.ProviderMetadata{
			Name:        meta.Name,
			Description: meta.Description,
			Models:      append([]string(nil), meta.Models...),
		}
	}
	return out
}

func (s *metadataService) GetProvider(id string) (*models.ProviderMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	meta, ok := s.catalog[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUnknownProvider, id)
	}
	out := models.ProviderMetadata{
		Name:        meta.Name,
		Description: meta.Description,
		Models:      append([]string(nil), meta.Models...),
	}
	return &out, nil
}

package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptdeck/internal/models"
	"promptdeck/internal/services"
)

func newMetadataService(t *testing.T) services.MetadataService {
	t.Helper()
	service := services.NewMetadataService()
	require.NoError(t, service.Startup(context.Background()))
	return service
}

func TestMetadataService_CatalogContents(t *testing.T) {
	service := newMetadataService(t)

	catalog := service.GetProviderMetadata()
	assert.Len(t, catalog, 4)

	openai, ok := catalog["openai"]
	require.True(t, ok)
	assert.Equal(t, "OpenAI", openai.Name)
	assert.Contains(t, openai.Models, "gpt-4o")

	ollama, ok := catalog["ollama"]
	require.True(t, ok)
	assert.Equal(t, "Local models via Ollama", ollama.Description)
	assert.Contains(t, ollama.Models, "llama2")
}

func TestMetadataService_GetProvider(t *testing.T) {
	service := newMetadataService(t)

	meta, err := service.GetProvider("anthropic")
	require.NoError(t, err)
	assert.Equal(t, "Anthropic", meta.Name)
	assert.Contains(t, meta.Models, "claude-sonnet-4-20250514")

	_, err = service.GetProvider("mistral")
	assert.ErrorIs(t, err, models.ErrUnknownProvider)
}

func TestMetadataService_CallersCannotMutateCatalog(t *testing.T) {
	service := newMetadataService(t)

	catalog := service.GetProviderMetadata()
	entry := catalog["google"]
	entry.Models[0] = "tampered"
	catalog["google"] = entry
	delete(catalog, "openai")

	fresh := service.GetProviderMetadata()
	assert.Len(t, fresh, 4)
	assert.Equal(t, "gemini-2.5-pro", fresh["google"].Models[0])
}

package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"promptdeck/internal/models"
	"promptdeck/internal/services"
	"promptdeck/internal/tests/mocks"
)

func newKeyringService(t *testing.T) *services.KeyringService {
	t.Helper()
	keyring.MockInit()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return services.NewKeyringService()
}

func TestKeyringService_StoreGetDelete(t *testing.T) {
	service := newKeyringService(t)

	require.NoError(t, service.StoreAPIKey("openai", []byte("sk-secret")))

	key, err := service.GetAPIKey("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-secret", key)

	list, err := service.ListAPIKeys()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "openai", list[0]["provider"])

	require.NoError(t, service.DeleteAPIKey("openai"))
	_, err = service.GetAPIKey("openai")
	assert.Error(t, err)

	list, err = service.ListAPIKeys()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestKeyringService_Validation(t *testing.T) {
	service := newKeyringService(t)

	assert.Error(t, service.StoreAPIKey("", []byte("sk-secret")))
	assert.Error(t, service.StoreAPIKey("openai", nil))
	_, err := service.GetAPIKey("")
	assert.Error(t, err)
	assert.Error(t, service.DeleteAPIKey(""))
}

func TestKeyringService_DeleteMissingKeyIsTolerated(t *testing.T) {
	service := newKeyringService(t)

	assert.NoError(t, service.DeleteAPIKey("openai"))
}

func TestSettingsService_UpdateProvider_MirrorsToKeychain(t *testing.T) {
	keyringService := newKeyringService(t)
	service := services.NewSettingsService(keyringService)
	require.NoError(t, service.Init(&mocks.InMemorySettingsRepository{}))
	ctx := context.Background()

	_, err := service.UpdateProvider(ctx, "anthropic", map[string]any{"api_key": "sk-ant-mirrored"})
	require.NoError(t, err)

	mirrored, err := keyringService.GetAPIKey("anthropic")
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-mirrored", mirrored)
}

func TestSettingsService_NoMirrorWhenPersistFails(t *testing.T) {
	keyringService := newKeyringService(t)
	service := services.NewSettingsService(keyringService)
	repo := &mocks.SettingsRepositoryMock{
		SaveFunc: func(ctx context.Context, settings *models.AppSettings) error {
			return assert.AnError
		},
	}
	require.NoError(t, service.Init(repo))
	ctx := context.Background()

	secret := "sk-never-stored"
	_, err := service.SetAPIKey(ctx, "openai", &secret)
	assert.Error(t, err)

	// The credential must not reach the keychain if the record was not persisted.
	_, err = keyringService.GetAPIKey("openai")
	assert.Error(t, err)
}

func TestSettingsService_SetAPIKey_MirrorsToKeychain(t *testing.T) {
	keyringService := newKeyringService(t)
	service := services.NewSettingsService(keyringService)
	require.NoError(t, service.Init(&mocks.InMemorySettingsRepository{}))
	ctx := context.Background()

	secret := "sk-mirrored"
	_, err := service.SetAPIKey(ctx, "openai", &secret)
	require.NoError(t, err)

	mirrored, err := keyringService.GetAPIKey("openai")
	require.NoError(t, err)
	assert.Equal(t, "sk-mirrored", mirrored)

	// Clearing the key removes the mirror as well.
	_, err = service.SetAPIKey(ctx, "openai", nil)
	require.NoError(t, err)
	_, err = keyringService.GetAPIKey("openai")
	assert.Error(t, err)
}

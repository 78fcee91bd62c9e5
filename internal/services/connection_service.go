package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"promptdeck/internal/models"
)

// ConnectionService checks whether a candidate provider configuration is
// plausibly usable. The current implementation is a placeholder for a real
// API round trip: it validates credential shape and simulates request
// latency without touching the network. Swapping in an HTTP-backed checker
// changes nothing for callers.
type ConnectionService interface {
	TestProvider(ctx context.Context, provider string, cfg models.ProviderSettings) (bool, error)
}

type connectionService struct {
	cloudLatency time.Duration
	localLatency time.Duration
}

func NewConnectionService() ConnectionService {
	return &connectionService{
		cloudLatency: time.Second,
		localLatency: 500 * time.Millisecond,
	}
}

// NewConnectionServiceWithLatency overrides the simulated wait, mainly so
// tests run at zero delay.
func NewConnectionServiceWithLatency(cloud, local time.Duration) ConnectionService {
	return &connectionService{cloudLatency: cloud, localLatency: local}
}

func (s *connectionService) TestProvider(ctx context.Context, provider string, cfg models.ProviderSettings) (bool, error) {
	switch provider {
	case "openai":
		key, err := requireAPIKey(cfg, "OpenAI")
		if err != nil {
			return false, err
		}
		s.wait(s.cloudLatency)
		return strings.HasPrefix(key, "sk-"), nil
	case "anthropic":
		key, err := requireAPIKey(cfg, "Anthropic")
		if err != nil {
			return false, err
		}
		s.wait(s.cloudLatency)
		return strings.HasPrefix(key, "sk-ant-"), nil
	case "google":
		key, err := requireAPIKey(cfg, "Google")
		if err != nil {
			return false, err
		}
		s.wait(s.cloudLatency)
		return len(key) > 10, nil
	case "ollama":
		if cfg.CustomEndpoint == nil || *cfg.CustomEndpoint == "" {
			return false, fmt.Errorf("%w: custom endpoint is required for Ollama", models.ErrMissingCredential)
		}
		s.wait(s.localLatency)
		endpoint := *cfg.CustomEndpoint
		return strings.Contains(endpoint, "localhost") || strings.Contains(endpoint, "127.0.0.1"), nil
	default:
		return false, fmt.Errorf("%w: %s", models.ErrUnknownProvider, provider)
	}
}

func requireAPIKey(cfg models.ProviderSettings, displayName string) (string, error) {
	if cfg.APIKey == nil || *cfg.APIKey == "" {
		return "", fmt.Errorf("%w: API key is required for %s", models.ErrMissingCredential, displayName)
	}
	return *cfg.APIKey, nil
}

// wait models request latency. Checks are not cancellable mid-flight, same
// as a real client without per-request timeouts.
func (s *connectionService) wait(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

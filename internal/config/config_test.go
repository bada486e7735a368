package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("client-abc", "secret-xyz")
	cfg.Backend.BaseURL = "https://api.example.com"
	cfg.Sync.PageSize = 50

	path := filepath.Join(t.TempDir(), "biguard.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Provider.BaseURL, got.Provider.BaseURL)
	assert.Equal(t, cfg.Provider.ClientID, got.Provider.ClientID)
	assert.Equal(t, cfg.Provider.Secret, got.Provider.Secret)
	assert.Equal(t, cfg.Provider.Environment, got.Provider.Environment)
	assert.Equal(t, "https://api.example.com", got.Backend.BaseURL)
	assert.Equal(t, 30, got.Backend.TimeoutSeconds)
	assert.Equal(t, 50, got.Sync.PageSize)
}

func TestDefaults(t *testing.T) {
	cfg := Default("client-abc", "secret-xyz")

	assert.Equal(t, "https://sandbox.plaid.com", cfg.Provider.BaseURL)
	assert.Equal(t, "client-abc", cfg.Provider.ClientID)
	assert.Equal(t, "secret-xyz", cfg.Provider.Secret)
	assert.Equal(t, "sandbox", cfg.Provider.Environment)
	assert.Equal(t, "http://localhost:5000", cfg.Backend.BaseURL)
	assert.Equal(t, 30, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, 100, cfg.Sync.PageSize)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biguard.yaml")
	contents := `provider:
  base_url: https://sandbox.plaid.com
  client_id: client-abc
  secret: secret-xyz
backend:
  base_url: http://localhost:5000
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sandbox", got.Provider.Environment)
	assert.Equal(t, 30, got.Backend.TimeoutSeconds)
	assert.Equal(t, 100, got.Sync.PageSize)
}

func TestLoadRejectsBadEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biguard.yaml")
	contents := `provider:
  base_url: https://sandbox.plaid.com
  environment: staging
backend:
  base_url: http://localhost:5000
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider.environment")
}

func TestLoadRejectsMissingURLs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "biguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sync:\n  page_size: 10\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_url is required")
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("client-abc", "secret-xyz")
	path := filepath.Join(t.TempDir(), "biguard.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "base_url: https://sandbox.plaid.com")
	assert.Contains(t, contents, "client_id: client-abc")
	assert.Contains(t, contents, "environment: sandbox")
	assert.Contains(t, contents, "page_size: 100")
}

package services_test

import (
	"testing"

	"github.com/athapong/adf-mcp/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtlassianConfigFromEnv(t *testing.T) {
	t.Setenv("ATLASSIAN_HOST", "https://example.atlassian.net")
	t.Setenv("ATLASSIAN_EMAIL", "me@example.com")
	t.Setenv("ATLASSIAN_TOKEN", "secret")

	cfg, err := services.AtlassianConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://example.atlassian.net", cfg.Host)
	assert.Equal(t, "me@example.com", cfg.Email)
	assert.Equal(t, "secret", cfg.Token)
}

func TestAtlassianConfigFromEnv_Missing(t *testing.T) {
	t.Setenv("ATLASSIAN_HOST", "https://example.atlassian.net")
	t.Setenv("ATLASSIAN_EMAIL", "")
	t.Setenv("ATLASSIAN_TOKEN", "secret")

	_, err := services.AtlassianConfigFromEnv()
	assert.Error(t, err)
}

package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccessID(t *testing.T) {
	env, token, err := ParseAccessID("access-sandbox-b4f1c2d3")
	require.NoError(t, err)
	assert.Equal(t, "sandbox", env)
	assert.Equal(t, "b4f1c2d3", token)

	env, token, err = ParseAccessID("access-production-9d2e-with-dashes")
	require.NoError(t, err)
	assert.Equal(t, "production", env)
	assert.Equal(t, "9d2e-with-dashes", token)
}

func TestParseAccessID_Invalid(t *testing.T) {
	for _, id := range []string{"", "access", "access-sandbox", "token-sandbox-abc", "access--abc", "access-sandbox-"} {
		_, _, err := ParseAccessID(id)
		assert.Error(t, err, "ParseAccessID(%q)", id)
	}
}

func TestIsSandboxAccessID(t *testing.T) {
	assert.True(t, IsSandboxAccessID("access-sandbox-abc123"))
	assert.False(t, IsSandboxAccessID("access-production-abc123"))
	assert.False(t, IsSandboxAccessID("access-development-abc123"))
	assert.False(t, IsSandboxAccessID("garbage"))
}

func TestFormatAccessID_RoundTrip(t *testing.T) {
	id := FormatAccessID("sandbox", "abc123")
	assert.Equal(t, "access-sandbox-abc123", id)
	assert.True(t, IsSandboxAccessID(id))
}

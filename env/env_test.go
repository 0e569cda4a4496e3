package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("GROCY_BASE_URL", "http://localhost:9283")

	value, err := GetEnv("Grocy base URL", "GROCY_BASE_URL")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9283", value)

	_, err = GetEnv("Grocy API key", "GROCY_API_KEY_UNSET")
	assert.Error(t, err)
}

func TestGetDurationEnv(t *testing.T) {
	t.Setenv("GROCY_REQUEST_TIMEOUT", "45s")

	value, err := GetDurationEnv("Grocy request timeout", "GROCY_REQUEST_TIMEOUT")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, value)

	t.Setenv("GROCY_REQUEST_TIMEOUT", "soon")
	_, err = GetDurationEnv("Grocy request timeout", "GROCY_REQUEST_TIMEOUT")
	assert.Error(t, err)
}

func TestGetDurationEnvOrDefault(t *testing.T) {
	value, err := GetDurationEnvOrDefault("Grocy request timeout", "GROCY_TIMEOUT_UNSET", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, value)

	t.Setenv("GROCY_TIMEOUT_SET", "1m")
	value, err = GetDurationEnvOrDefault("Grocy request timeout", "GROCY_TIMEOUT_SET", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, value)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "localhost:3000", cfg.RunAddress)
	assert.Equal(t, 5*time.Second, cfg.DispatchTimeout)
	assert.Equal(t, 1, cfg.StockPosition)
	assert.False(t, cfg.DispatchStrict)
	assert.Zero(t, cfg.ReconcileInterval)
	assert.False(t, cfg.DispatchEnabled())
}

func TestLoadEnvOverridesFlags(t *testing.T) {
	cfg, err := Load(
		[]string{"-a", ":9000", "-f", "http://flag-host", "-s", "flag-secret"},
		envMap(map[string]string{
			"FABRICATION_URL":    "http://bancada:8080/",
			"JWT_SECRET":         "env-secret",
			"DISPATCH_TIMEOUT":   "2s",
			"DISPATCH_STRICT":    "true",
			"RECONCILE_INTERVAL": "30s",
			"STOCK_POSITION":     "4",
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.RunAddress)
	assert.Equal(t, "http://bancada:8080", cfg.FabricationURL)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Second, cfg.DispatchTimeout)
	assert.True(t, cfg.DispatchStrict)
	assert.Equal(t, 30*time.Second, cfg.ReconcileInterval)
	assert.Equal(t, 4, cfg.StockPosition)
	assert.True(t, cfg.DispatchEnabled())
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"timeout":  {"DISPATCH_TIMEOUT": "soon"},
		"strict":   {"DISPATCH_STRICT": "maybe"},
		"position": {"STOCK_POSITION": "x"},
		"secret":   {"JWT_SECRET": ""},
		"zero":     {"DISPATCH_TIMEOUT": "0s"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(nil, envMap(env))
			assert.Error(t, err)
		})
	}
}

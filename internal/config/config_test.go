package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/stackcheck/internal/effects"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, filepath.Join("data", "stackcheck.db"), cfg.DBPath)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, effects.DefaultThresholds(), cfg.Thresholds)
}

func TestFromEnvRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}},
		{"port not numeric", map[string]string{"PORT": "http"}},
		{"concurrency not a number", map[string]string{"EFFECT_CONCURRENCY": "many"}},
		{"concurrency too high", map[string]string{"EFFECT_CONCURRENCY": "500"}},
		{"unknown timezone", map[string]string{"TZ": "Mars/Olympus"}},
		{"unknown log mode", map[string]string{"LOG_MODE": "verbose"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromEnv(envOf(tc.env))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestFromEnvPostgres(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"DB_DRIVER":    "Postgres",
		"DATABASE_URL": "postgres://stackcheck@localhost:5432/stackcheck",
		"LOG_MODE":     "prod",
	}))
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "prod", cfg.LogMode)
}

func TestLoadThresholdsOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("min_clean_days: 21\nmin_effect_size: 0.3\nnoisy_tags: [alcohol, flight]\n"), 0o600))

	thresholds, err := LoadThresholds(path)
	require.NoError(t, err)

	assert.Equal(t, 21, thresholds.MinCleanDays)
	assert.Equal(t, 0.3, thresholds.MinEffectSize)
	assert.Equal(t, []string{"alcohol", "flight"}, thresholds.NoisyTags)
	assert.Equal(t, effects.DefaultThresholds().MinConfidence, thresholds.MinConfidence)
	assert.Equal(t, effects.DefaultThresholds().BootstrapSamples, thresholds.BootstrapSamples)
}

func TestLoadThresholdsRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"range.yaml":   "min_confidence: 1.5\n",
		"cap.yaml":     "max_skip_suggestions: 5\n",
		"minimum.yaml": "min_on_days: 12\nmin_off_days: 12\n",
		"syntax.yaml":  "min_clean_days: [\n",
	}
	for name, body := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		_, err := LoadThresholds(path)
		assert.True(t, errors.Is(err, ErrInvalidThresholds), "%s: got %v", name, err)
	}

	_, err := LoadThresholds(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestResolveSecretKey(t *testing.T) {
	for _, raw := range []string{"", "change_me_in_production", "replace_with_at_least_32_random_characters", "too-short-secret"} {
		_, err := ResolveSecretKey(raw)
		assert.True(t, errors.Is(err, ErrInsecureSecretKey), "secret %q", raw)
	}

	valid := "0123456789abcdef0123456789abcdef"
	secret, err := ResolveSecretKey(" " + valid + " ")
	require.NoError(t, err)
	assert.Equal(t, valid, secret)
}

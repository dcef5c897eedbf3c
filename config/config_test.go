package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Parallel()

	cfg := FromEnv(func(string) string { return "" })

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "agrocrm.db", cfg.DBPath)
	assert.Equal(t, 12*time.Hour, cfg.AuthTokenTTL)
	assert.Equal(t, int64(50), cfg.MaxUploadMB)
	assert.Empty(t, cfg.WeatherAPIKey)
	assert.Equal(t, "/files", cfg.FilesPath)
	assert.Equal(t, "/files", cfg.FilesURL())
}

func TestFilesRouteAndPublicURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path, base        string
		wantPath, wantURL string
	}{
		{"", "https://agro.example.com/", "/files", "https://agro.example.com/files"},
		{"uploads/", "", "/uploads", "/uploads"},
		{"https://cdn.example.com/media", "https://cdn.example.com", "/media", "https://cdn.example.com/media"},
		{"/", "", "/files", "/files"},
	}
	for _, tc := range cases {
		env := map[string]string{"FILES_PATH": tc.path, "PUBLIC_BASE_URL": tc.base}
		cfg := FromEnv(func(k string) string { return env[k] })
		assert.Equal(t, tc.wantPath, cfg.FilesPath, "FILES_PATH=%q", tc.path)
		assert.Equal(t, tc.wantURL, cfg.FilesURL(), "PUBLIC_BASE_URL=%q", tc.base)
	}
}

func TestFromEnvOverridesAndRedacts(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"PORT":            "9000",
		"AUTH_JWT_SECRET": "s3cret",
		"AUTH_TOKEN_TTL":  "30m",
		"WEATHER_API_KEY": "abc",
		"MAX_UPLOAD_MB":   "nope",
	}
	cfg := FromEnv(func(k string) string { return env[k] })

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.AuthTokenTTL)
	assert.Equal(t, int64(50), cfg.MaxUploadMB)

	red := cfg.Redacted()
	assert.Equal(t, "***", red.AuthJWTSecret)
	assert.Equal(t, "***", red.WeatherAPIKey)
	assert.Equal(t, "s3cret", cfg.AuthJWTSecret)
}

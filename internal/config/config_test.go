package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Config reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GEMINI_API_KEY", "GEMINI_MODEL", "MODEL_BACKEND", "PORT",
		"UPLOAD_DIR", "MAX_PAYLOAD_BYTES", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.APIKey, "a missing key is not an error at startup")
	assert.Equal(t, "gemini-1.5-flash", cfg.Model)
	assert.Equal(t, BackendGemini, cfg.Backend)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(20<<20), cfg.MaxPayloadBytes)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestParse_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("MODEL_BACKEND", "echo")
	t.Setenv("PORT", "8085")
	t.Setenv("UPLOAD_DIR", "/tmp/scratch")
	t.Setenv("MAX_PAYLOAD_BYTES", "1024")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, Config{
		APIKey:          "secret",
		Model:           "gemini-2.0-flash",
		Backend:         BackendEcho,
		Port:            "8085",
		UploadDir:       "/tmp/scratch",
		MaxPayloadBytes: 1024,
		ShutdownTimeout: 3 * time.Second,
	}, cfg)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "MODEL_BACKEND", "openai"},
		{"non numeric size", "MAX_PAYLOAD_BYTES", "lots"},
		{"zero size", "MAX_PAYLOAD_BYTES", "0"},
		{"bad duration", "SHUTDOWN_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Parse()
			assert.Error(t, err)
		})
	}
}

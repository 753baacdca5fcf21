package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// The model backends the service knows how to build.
const (
	BackendGemini = "gemini"
	BackendEcho   = "echo"
)

// Config is the process wide configuration. It is read once at startup and
// handed to the components that need it, never mutated afterwards.
type Config struct {
	// APIKey is the Gemini credential. It is not validated here; a missing
	// key only surfaces when the first model call is attempted.
	APIKey string `env:"GEMINI_API_KEY"`
	// Model is the Gemini model identifier.
	Model string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
	// Backend picks the gateway implementation, "gemini" or "echo".
	Backend string `env:"MODEL_BACKEND" envDefault:"gemini"`

	Port            string        `env:"PORT" envDefault:"3000"`
	UploadDir       string        `env:"UPLOAD_DIR" envDefault:"uploads"`
	MaxPayloadBytes int64         `env:"MAX_PAYLOAD_BYTES" envDefault:"20971520"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file from the working directory and then
// parses the environment into a Config. Variables already present in the
// environment take precedence over the .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not load .env file: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("could not parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Backend {
	case BackendGemini, BackendEcho:
	default:
		return fmt.Errorf("unknown MODEL_BACKEND %q", c.Backend)
	}
	if c.MaxPayloadBytes <= 0 {
		return fmt.Errorf("MAX_PAYLOAD_BYTES must be positive, got %d", c.MaxPayloadBytes)
	}
	if c.UploadDir == "" {
		return errors.New("UPLOAD_DIR cannot be empty")
	}
	return nil
}

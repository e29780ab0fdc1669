package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Config is the CLI configuration file. All fields are optional; zero values
// fall back to the defaults below.
type Config struct {
	// APIKeyEnv names the environment variable holding the Gemini API key.
	APIKeyEnv string `yaml:"api_key_env"`
	// TextModel / SpeechModel / VideoModel override the Gemini model ids.
	TextModel   string `yaml:"text_model"`
	SpeechModel string `yaml:"speech_model"`
	VideoModel  string `yaml:"video_model"`
	// Resolution is the video output resolution ("720p" or "1080p").
	Resolution string `yaml:"resolution"`
	// Voice is the default speech voice profile.
	Voice string `yaml:"voice"`
	// AspectRatio is the default video aspect ratio ("16:9" or "9:16").
	AspectRatio string `yaml:"aspect_ratio"`
	// LogFormat is "json" or "text".
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		APIKeyEnv: "GEMINI_API_KEY",
		LogFormat: "text",
	}
}

// LoadConfig reads the YAML config at path, or the default location when
// path is empty. A missing file yields the defaults without error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".soffai", "config.yaml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "GEMINI_API_KEY"
	}
	return cfg, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Loader reads configuration from an optional yaml file with env overrides.
type Loader struct {
	useDotEnv bool
	path      string
}

// NewLoader creates a loader reading from the default config path.
func NewLoader() *Loader {
	return &Loader{
		useDotEnv: true,
		path:      "config.yaml",
	}
}

// WithDotEnv toggles loading variables from a .env file before reading config.
func (l *Loader) WithDotEnv(enabled bool) *Loader {
	l.useDotEnv = enabled
	return l
}

// WithPath overrides the configuration file path (useful for tests).
func (l *Loader) WithPath(path string) *Loader {
	if path != "" {
		l.path = path
	}
	return l
}

// Result captures the loaded configuration and its origin path.
type Result struct {
	Config *Config
	Path   string
}

// Load reads the config file when present, falling back to defaults, then
// applies environment overrides.
func (l *Loader) Load() (*Result, error) {
	if l.useDotEnv {
		if err := godotenv.Load(); err != nil {
			fmt.Println("no .env file found, using system environment")
		}
	}

	cfg := DefaultConfig()
	path := "defaults"

	if data, err := os.ReadFile(l.path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", l.path, err)
		}
		path = l.path
	}

	applyEnvOverrides(cfg)

	if err := l.validate(cfg); err != nil {
		return nil, err
	}

	return &Result{
		Config: cfg,
		Path:   path,
	}, nil
}

func (l *Loader) validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", cfg.Server.Port)
	}
	if cfg.Cache.Capacity <= 0 {
		return fmt.Errorf("invalid cache capacity: %d", cfg.Cache.Capacity)
	}
	if cfg.Verify.Video.MinDuration <= 0 || cfg.Verify.Video.MaxDuration <= cfg.Verify.Video.MinDuration {
		return fmt.Errorf("invalid video duration bounds: [%s, %s]",
			cfg.Verify.Video.MinDuration, cfg.Verify.Video.MaxDuration)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PRALAY_SERVER_IP"); v != "" {
		cfg.Server.IP = v
	}
	if v := os.Getenv("PRALAY_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PRALAY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PRALAY_CACHE_DRIVER"); v != "" {
		cfg.Cache.Driver = v
	}
	if v := os.Getenv("PRALAY_REDIS_ADDR"); v != "" {
		cfg.Cache.Redis.Addr = v
	}
	if v := os.Getenv("PRALAY_FFMPEG_PATH"); v != "" {
		cfg.FFmpeg.FFmpegPath = v
	}
	if v := os.Getenv("PRALAY_FFPROBE_PATH"); v != "" {
		cfg.FFmpeg.FFprobePath = v
	}
}

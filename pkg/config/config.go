// Package config loads host settings for the orbit visualizer from the
// environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the host settings: which scene script to load, how to seed
// generation, and how to log and size the window.
type Config struct {
	SceneFile string
	Seed      *uint64 // nil picks a random seed per run
	Logging   LoggingConfig
	Window    WindowConfig
}

// LoggingConfig selects the slog level and handler format.
type LoggingConfig struct {
	Level  string
	Format string
}

// WindowConfig is the initial Wails window title and size in pixels.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
}

// Load reads a .env file if one exists in the working directory and then
// builds the config from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the config from the environment only.
func FromEnv() (*Config, error) {
	seed, err := loadSeed()
	if err != nil {
		return nil, err
	}
	window, err := loadWindowConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SceneFile: getEnv("ORBIT_SCENE_FILE", "examples/orbit.lisp"),
		Seed:      seed,
		Logging:   loadLoggingConfig(),
		Window:    window,
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadSeed() (*uint64, error) {
	raw := getEnv("ORBIT_SEED", "")
	if raw == "" {
		return nil, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("ORBIT_SEED: %w", err)
	}
	return &seed, nil
}

func loadLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level:  strings.ToLower(getEnv("ORBIT_LOG_LEVEL", "info")),
		Format: strings.ToLower(getEnv("ORBIT_LOG_FORMAT", "text")),
	}
}

func loadWindowConfig() (WindowConfig, error) {
	width, err := strconv.Atoi(getEnv("ORBIT_WINDOW_WIDTH", "1280"))
	if err != nil {
		return WindowConfig{}, fmt.Errorf("ORBIT_WINDOW_WIDTH: %w", err)
	}
	height, err := strconv.Atoi(getEnv("ORBIT_WINDOW_HEIGHT", "720"))
	if err != nil {
		return WindowConfig{}, fmt.Errorf("ORBIT_WINDOW_HEIGHT: %w", err)
	}
	return WindowConfig{
		Title:  getEnv("ORBIT_WINDOW_TITLE", "Orbit Visualizer"),
		Width:  width,
		Height: height,
	}, nil
}

func (c *Config) validate() error {
	if c.SceneFile == "" {
		return fmt.Errorf("ORBIT_SCENE_FILE must not be empty")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("ORBIT_LOG_LEVEL must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("ORBIT_LOG_FORMAT must be text or json, got %q", c.Logging.Format)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

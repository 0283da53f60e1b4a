package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when loaded settings cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the standard locations.
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that would break window creation or layout.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOVDegrees <= 0 || c.Camera.FOVDegrees >= 180 {
		return fmt.Errorf("%w: fov %.1f must be in (0, 180)", ErrInvalidConfig, c.Camera.FOVDegrees)
	}
	if c.Camera.Near <= 0 {
		return fmt.Errorf("%w: near plane %.3f must be positive", ErrInvalidConfig, c.Camera.Near)
	}
	if c.Layout.Scale <= 0 {
		return fmt.Errorf("%w: scale %.2f must be positive", ErrInvalidConfig, c.Layout.Scale)
	}
	if c.Layout.BlockRows < 0 || c.Layout.BlockCols < 0 {
		return fmt.Errorf("%w: block grid %dx%d", ErrInvalidConfig, c.Layout.BlockCols, c.Layout.BlockRows)
	}
	if c.Assets.Paddle.Model == "" || c.Assets.Ball.Model == "" || c.Assets.Block.Model == "" {
		return fmt.Errorf("%w: paddle, ball and block models are required", ErrInvalidConfig)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "Breakout")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "Breakout")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "breakout")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "breakout")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

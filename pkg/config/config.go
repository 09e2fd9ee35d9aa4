// Package config loads and persists the wallsy configuration file.
//
// The config lives at $WALLSY_CONFIG_DIR/config.json (default
// ~/.config/wallsy/config.json) and is written with defaults on first run.
// Every key can be overridden through WALLSY_-prefixed environment
// variables, e.g. WALLSY_MEDIA_DIR.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const FileName = "config.json"

type Config struct {
	MediaDir     string `mapstructure:"media_dir"`
	EffectsDir   string `mapstructure:"effects_dir"`
	WallpaperDir string `mapstructure:"wallpaper_dir"`
	WallhavenKey string `mapstructure:"wallhaven_api_key"`
	// SetCommand overrides the gsettings wallpaper setter. The token
	// {path} is replaced with the absolute image path.
	SetCommand string `mapstructure:"set_command"`

	dir string
}

// Dir returns the directory holding config.json.
func (c *Config) Dir() string {
	return c.dir
}

// DefaultDir resolves the config directory: $WALLSY_CONFIG_DIR if set,
// otherwise ~/.config/wallsy.
func DefaultDir() (string, error) {
	if dir := os.Getenv("WALLSY_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}

	return filepath.Join(home, ".config", "wallsy"), nil
}

// Load reads the config from dir, creating it with defaults when no file
// exists yet. An empty dir means DefaultDir.
func Load(dir string) (*Config, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home dir: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dir)

	v.SetDefault("media_dir", filepath.Join(home, "wallsy"))
	v.SetDefault("effects_dir", filepath.Join(home, "wallsy", "effects"))
	v.SetDefault("wallpaper_dir", filepath.Join(home, ".local", "share", "backgrounds"))
	v.SetDefault("wallhaven_api_key", "")
	v.SetDefault("set_command", "")

	v.SetEnvPrefix("WALLSY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create config dir: %w", err)
		}
		if err := v.SafeWriteConfigAs(filepath.Join(dir, FileName)); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	}

	cfg := &Config{dir: dir}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, cfg.ensureDirs()
}

// Reset removes the config directory and everything in it.
func Reset(dir string) error {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return err
		}
	}
	return os.RemoveAll(dir)
}

func (c *Config) ensureDirs() error {
	for _, dir := range []string{c.MediaDir, c.EffectsDir, c.WallpaperDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

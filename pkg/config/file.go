package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Render RenderConfig `toml:"render"`
	Sample SampleConfig `toml:"sample"`
	Log    LogConfig    `toml:"log"`
}

// RenderConfig maps render-related settings.
type RenderConfig struct {
	Width   *int    `toml:"width"`
	Height  *int    `toml:"height"`
	Format  *string `toml:"format"`
	Quality *int    `toml:"quality"`
	Backend *string `toml:"backend"`
	Workers *int    `toml:"workers"`
}

// SampleConfig maps built-in sample settings.
type SampleConfig struct {
	Noise *float64 `toml:"noise"`
	Surge *float64 `toml:"surge"`
	Seed  *int64   `toml:"seed"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "pressurediagram", "config.toml")
}

// LoadFile reads a TOML config from path. A missing file is only an error
// when it was requested explicitly.
func LoadFile(path string, required bool) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// apply copies file values into the config for flags left at their defaults
func (p *Parser) apply(fileCfg FileConfig) {
	applyValue(p, "width", &p.config.Width, fileCfg.Render.Width)
	applyValue(p, "height", &p.config.Height, fileCfg.Render.Height)
	applyValue(p, "format", &p.config.Format, fileCfg.Render.Format)
	applyValue(p, "quality", &p.config.Quality, fileCfg.Render.Quality)
	applyValue(p, "backend", &p.config.Backend, fileCfg.Render.Backend)
	applyValue(p, "workers", &p.config.Workers, fileCfg.Render.Workers)
	applyValue(p, "noise", &p.config.Noise, fileCfg.Sample.Noise)
	applyValue(p, "surge", &p.config.Surge, fileCfg.Sample.Surge)
	applyValue(p, "seed", &p.config.Seed, fileCfg.Sample.Seed)
	applyValue(p, "log-level", &p.config.LogLevel, fileCfg.Log.Level)
}

func applyValue[T any](p *Parser, name string, target *T, value *T) {
	if value == nil {
		return
	}
	if p.flagSet.Changed(name) {
		return
	}
	*target = *value
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
	Log      LogConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// CellWidthPx maps one terminal column into the carousel's pixel
	// space; it decides where the narrow/wide breakpoint falls in columns.
	CellWidthPx int `mapstructure:"cell_width_px"`
	// CoarsePointer is the terminal stand-in for a touch-like pointer:
	// when false, drag gestures are never armed.
	CoarsePointer bool `mapstructure:"coarse_pointer"`
	// Deck names the deck to open; empty means the first deck.
	Deck string
}

// LogConfig holds log file settings. The TUI owns stdout, so logs go to a
// file.
type LogConfig struct {
	Path  string
	Debug bool
}

// Load reads configuration from file and env. Env var overrides use prefix DECKVIEW_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "deckview", "deckview.db"))
	v.SetDefault("ui.cell_width_px", 8)
	v.SetDefault("ui.coarse_pointer", true)
	v.SetDefault("ui.deck", "")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "state", "deckview", "deckview.log"))
	v.SetDefault("log.debug", false)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DECKVIEW_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "deckview"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DECKVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.UI.CellWidthPx < 1 {
		c.UI.CellWidthPx = 8
	}
	return c, nil
}

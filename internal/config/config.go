// Package config loads canvault settings from the config file and the
// environment. The file lives at ~/.config/canvault/config.yaml by default;
// every key can be overridden with a CANVAULT_-prefixed variable.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

var (
	ErrMissingVault   = errors.New("config: vault directory is required")
	ErrMissingBaseURL = errors.New("config: canvas base URL is required")
	ErrMissingToken   = errors.New("config: canvas token is required")
	ErrNoCourses      = errors.New("config: no active course mappings configured")
)

// Config is the full application configuration. Sync-only fields are
// validated by ValidateSync so the views keep working without credentials.
type Config struct {
	VaultDir     string            `mapstructure:"vault_dir"`
	BasePath     string            `mapstructure:"base_path"`
	MarkerFolder string            `mapstructure:"marker_folder"`
	DoneFolder   string            `mapstructure:"done_folder"`
	BaseURL      string            `mapstructure:"base_url"`
	Token        string            `mapstructure:"token"`
	Courses      map[string]string `mapstructure:"courses"`
	SyncMinutes  int               `mapstructure:"sync_minutes"`
	MaxPerCell   int               `mapstructure:"max_per_cell"`
	TodayMarker  string            `mapstructure:"today_marker"`
	NotifyDays   int               `mapstructure:"notify_days"`
	IndexPath    string            `mapstructure:"index_path"`
}

const (
	DefaultMarker     = "Todo"
	DefaultDone       = "Done"
	TodayMarkerGlyph  = "glyph"
	TodayMarkerBackgr = "background"
)

// Load reads the config file (optional) and environment overrides. A missing
// file is not an error; missing required fields surface later, per
// operation, through the Validate helpers.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("marker_folder", DefaultMarker)
	v.SetDefault("done_folder", DefaultDone)
	v.SetDefault("sync_minutes", 30)
	v.SetDefault("max_per_cell", 2)
	v.SetDefault("today_marker", TodayMarkerGlyph)
	v.SetDefault("notify_days", 1)

	v.SetEnvPrefix("CANVAULT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "canvault"))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.MarkerFolder) == "" {
		c.MarkerFolder = DefaultMarker
	}
	if strings.TrimSpace(c.DoneFolder) == "" {
		c.DoneFolder = DefaultDone
	}
	if c.TodayMarker != TodayMarkerGlyph && c.TodayMarker != TodayMarkerBackgr {
		c.TodayMarker = TodayMarkerGlyph
	}
	if c.SyncMinutes <= 0 {
		c.SyncMinutes = 30
	}
	if c.NotifyDays < 0 {
		c.NotifyDays = 1
	}
	if strings.TrimSpace(c.IndexPath) == "" && strings.TrimSpace(c.VaultDir) != "" {
		c.IndexPath = filepath.Join(c.VaultDir, ".canvault", "index.db")
	}
}

// ValidateVault checks the fields every view needs.
func (c Config) ValidateVault() error {
	if strings.TrimSpace(c.VaultDir) == "" {
		return ErrMissingVault
	}
	return nil
}

// ValidateSync checks the fields the remote sync needs. These are
// configuration errors: reported to the user before any network call.
func (c Config) ValidateSync() error {
	if err := c.ValidateVault(); err != nil {
		return err
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return ErrMissingBaseURL
	}
	if strings.TrimSpace(c.Token) == "" {
		return ErrMissingToken
	}
	if len(c.Courses) == 0 {
		return ErrNoCourses
	}
	return nil
}

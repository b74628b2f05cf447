package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// HostMode selects how the host obtains the first page of a collection
type HostMode string

const (
	HostModeSSR HostMode = "ssr" // fetch the first page live on every mount
	HostModeSSG HostMode = "ssg" // read the first page from the snapshot store
)

// DefaultPageSize is the number of items per fetch
const DefaultPageSize = 8

// ErrInvalidConfig is returned when a loaded configuration fails validation
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Host    HostConfig    `mapstructure:"host"`
	UI      UIConfig      `mapstructure:"ui"`
	Web     WebConfig     `mapstructure:"web"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig holds the collection endpoint configuration
type CatalogConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	PageSize int           `mapstructure:"page_size"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// HostConfig holds first-page (host) configuration
type HostConfig struct {
	Mode         HostMode `mapstructure:"mode"`
	SnapshotPath string   `mapstructure:"snapshot_path"` // bbolt file written by `storefront snapshot`
}

// UIConfig holds terminal UI configuration
type UIConfig struct {
	GridColumns int    `mapstructure:"grid_columns"`
	StartScreen string `mapstructure:"start_screen"` // "home", "posts" or "products"
}

// WebConfig holds the HTML front end configuration
type WebConfig struct {
	Addr string `mapstructure:"addr"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:  "https://dummyjson.com",
			PageSize: DefaultPageSize,
			Timeout:  15 * time.Second,
		},
		Host: HostConfig{
			Mode:         HostModeSSR,
			SnapshotPath: filepath.Join(defaultDataPath(), "snapshot.db"),
		},
		UI: UIConfig{
			GridColumns: 4,
			StartScreen: "home",
		},
		Web: WebConfig{
			Addr: ":4321",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "storefront.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "storefront")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "storefront")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "storefront")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "storefront")
	}
}

// LoadConfig loads configuration from .env, the config file and the
// environment. An empty path searches the default locations.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("skipping .env", "error", err)
	}

	cfg := DefaultConfig()
	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides (STOREFRONT_CATALOG_PAGE_SIZE, ...)
	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.page_size", cfg.Catalog.PageSize)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)

	v.SetDefault("host.mode", string(cfg.Host.Mode))
	v.SetDefault("host.snapshot_path", cfg.Host.SnapshotPath)

	v.SetDefault("ui.grid_columns", cfg.UI.GridColumns)
	v.SetDefault("ui.start_screen", cfg.UI.StartScreen)

	v.SetDefault("web.addr", cfg.Web.Addr)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks the values the rest of the program relies on
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog.base_url is required", ErrInvalidConfig)
	}
	if c.Catalog.PageSize <= 0 {
		return fmt.Errorf("%w: catalog.page_size must be positive, got %d", ErrInvalidConfig, c.Catalog.PageSize)
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("%w: catalog.timeout must be positive", ErrInvalidConfig)
	}
	switch c.Host.Mode {
	case HostModeSSR, HostModeSSG:
	default:
		return fmt.Errorf("%w: host.mode must be %q or %q, got %q", ErrInvalidConfig, HostModeSSR, HostModeSSG, c.Host.Mode)
	}
	if c.UI.GridColumns <= 0 {
		c.UI.GridColumns = 1
	}
	return nil
}

// SaveConfig writes the configuration as config.yaml into dir, or into the
// default config directory when dir is empty. Returns the written path.
func SaveConfig(cfg *Config, dir string) (string, error) {
	configPath := dir
	if configPath == "" {
		configPath = defaultConfigPath()
	}

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("catalog.base_url", cfg.Catalog.BaseURL)
	v.Set("catalog.page_size", cfg.Catalog.PageSize)
	v.Set("catalog.timeout", cfg.Catalog.Timeout.String())

	v.Set("host.mode", string(cfg.Host.Mode))
	v.Set("host.snapshot_path", cfg.Host.SnapshotPath)

	v.Set("ui.grid_columns", cfg.UI.GridColumns)
	v.Set("ui.start_screen", cfg.UI.StartScreen)

	v.Set("web.addr", cfg.Web.Addr)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/rmlane/fex/pkg/fex/logging"
)

// Defaults applied when a setting is absent or fails validation.
const (
	DefaultTickRate  = time.Second
	DefaultFrameRate = 30
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// Config represents the application configuration.
type Config struct {
	// StartDir is the directory shown on startup.
	StartDir string `mapstructure:"start_dir"`

	// ExportDir is where search-result exports are written.
	ExportDir string `mapstructure:"export_dir"`

	// FollowSymlinks enables symlink traversal during walks.
	FollowSymlinks bool `mapstructure:"follow_symlinks"`

	// TickRate is the application tick interval.
	TickRate time.Duration `mapstructure:"tick_rate"`

	// FrameRate is the render tick frequency in frames per second.
	FrameRate int `mapstructure:"frame_rate"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables. A
// non-empty cfgFile pins the config file; otherwise the file is looked
// up in order of precedence:
//   - $XDG_CONFIG_HOME/fex/config.yaml
//   - $HOME/.config/fex/config.yaml
//
// Environment variables are prefixed with FEX_ (e.g., FEX_START_DIR).
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			v.AddConfigPath(filepath.Join(xdgConfigHome, "fex"))
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	if cfgFile == "" {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "fex"))
	}

	v.SetEnvPrefix("FEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("start_dir", homeDir)
	v.SetDefault("export_dir", DefaultExportDir())
	v.SetDefault("follow_symlinks", false)
	v.SetDefault("tick_rate", DefaultTickRate)
	v.SetDefault("frame_rate", DefaultFrameRate)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means use logging.DefaultLogPath

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.normalize(homeDir)
	return &cfg, nil
}

// normalize expands ~ paths and replaces invalid settings with their
// defaults. A bad setting never aborts startup; it is logged and the
// default takes over.
func (c *Config) normalize(homeDir string) {
	logger := logging.Get("config")

	if strings.HasPrefix(c.StartDir, "~") {
		c.StartDir = filepath.Join(homeDir, c.StartDir[1:])
	}
	if strings.HasPrefix(c.ExportDir, "~") {
		c.ExportDir = filepath.Join(homeDir, c.ExportDir[1:])
	}

	if info, err := os.Stat(c.StartDir); err != nil || !info.IsDir() {
		logger.Warn("start_dir is not a directory, using home", "start_dir", c.StartDir)
		c.StartDir = homeDir
	}
	if c.ExportDir == "" {
		c.ExportDir = DefaultExportDir()
	}
	if c.TickRate <= 0 {
		logger.Warn("tick_rate must be positive, using default", "tick_rate", c.TickRate)
		c.TickRate = DefaultTickRate
	}
	if c.FrameRate <= 0 {
		logger.Warn("frame_rate must be positive, using default", "frame_rate", c.FrameRate)
		c.FrameRate = DefaultFrameRate
	}
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "fex"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "fex"), nil
}

// DefaultExportDir returns $XDG_DATA_HOME/fex/, where exports land when
// no export_dir is configured.
func DefaultExportDir() string {
	return filepath.Join(xdg.DataHome, "fex")
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	configDir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# Fex File Explorer Configuration

# Directory shown on startup
start_dir: %s

# Where search-result exports are written
export_dir: %s

# Follow symbolic links during directory walks
follow_symlinks: false

# Application tick interval
tick_rate: 1s

# Render frequency in frames per second
frame_rate: %d

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means use default: $XDG_STATE_HOME/fex/fex.log)
  path: ""
`, homeDir, DefaultExportDir(), DefaultFrameRate)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}

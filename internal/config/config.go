// Package config provides configuration management for stagedock with Viper integration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// File permission constants
const (
	dirPerm  = 0755 // Standard directory permissions (rwxr-xr-x)
	filePerm = 0644 // Standard file permissions (rw-r--r--)
)

// Config represents the complete configuration for stagedock.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" json:"logging"`
	Gesture  GestureConfig  `mapstructure:"gesture" json:"gesture"`
	Layout   LayoutConfig   `mapstructure:"layout" json:"layout"`
}

// DatabaseConfig holds layout database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path" json:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

// GestureConfig holds stage navigation gesture tuning.
type GestureConfig struct {
	// FlickThreshold is the velocity, in pixels per second, above which a
	// released gesture commits a stage change regardless of distance.
	FlickThreshold float64 `mapstructure:"flick_threshold" json:"flick_threshold"`
	// DragThreshold is the fraction of the host width a slow drag must
	// cover before release commits a stage change.
	DragThreshold float64 `mapstructure:"drag_threshold" json:"drag_threshold"`

	SpringStiffness float64 `mapstructure:"spring_stiffness" json:"spring_stiffness"`
	SpringDamping   float64 `mapstructure:"spring_damping" json:"spring_damping"`
	SpringMass      float64 `mapstructure:"spring_mass" json:"spring_mass"`

	RubberBandCoefficient float64 `mapstructure:"rubber_band_coefficient" json:"rubber_band_coefficient"`

	// SlowMotion stretches settle animations for debugging. Raw input is
	// never slowed down, only the spring.
	SlowMotion bool `mapstructure:"slow_motion" json:"slow_motion"`
}

// LayoutConfig holds layout tree defaults.
type LayoutConfig struct {
	// MinPaneShare is the smallest proportion a split child may be
	// resized to.
	MinPaneShare float64 `mapstructure:"min_pane_share" json:"min_pane_share"`
	// TabStripMode controls tab strip visibility: automatic, always, never.
	TabStripMode string `mapstructure:"tab_strip_mode" json:"tab_strip_mode"`
	// DefaultName is the snapshot name used when none is given.
	DefaultName string `mapstructure:"default_name" json:"default_name"`
}

// TabStripMode values.
const (
	TabStripAutomatic = "automatic"
	TabStripAlways    = "always"
	TabStripNever     = "never"
)

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	// Supports yaml, json, toml automatically
	v.SetConfigName("config")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("STAGEDOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	bindings := map[string]string{
		"database.path":                   "DATABASE_PATH",
		"logging.level":                   "LOGGING_LEVEL",
		"logging.format":                  "LOGGING_FORMAT",
		"gesture.flick_threshold":         "GESTURE_FLICK_THRESHOLD",
		"gesture.drag_threshold":          "GESTURE_DRAG_THRESHOLD",
		"gesture.spring_stiffness":        "GESTURE_SPRING_STIFFNESS",
		"gesture.spring_damping":          "GESTURE_SPRING_DAMPING",
		"gesture.spring_mass":             "GESTURE_SPRING_MASS",
		"gesture.rubber_band_coefficient": "GESTURE_RUBBER_BAND_COEFFICIENT",
		"gesture.slow_motion":             "GESTURE_SLOW_MOTION",
		"layout.min_pane_share":           "LAYOUT_MIN_PANE_SHARE",
		"layout.tab_strip_mode":           "LAYOUT_TAB_STRIP_MODE",
		"layout.default_name":             "LAYOUT_DEFAULT_NAME",
	}

	for key, env := range bindings {
		if err := v.BindEnv(key, "STAGEDOCK_"+env); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable %s: %w", env, err)
		}
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
// Out-of-range values are repaired to their defaults rather than rejected.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			if err := m.createDefaultConfig(); err != nil {
				return fmt.Errorf("failed to create default config: %w", err)
			}
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.config = config
	return nil
}

// unmarshal decodes the viper state into a repaired Config.
func (m *Manager) unmarshal() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Database.Path == "" {
		dbPath, err := GetDatabaseFile()
		if err != nil {
			return nil, fmt.Errorf("failed to get database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	for _, repair := range RepairConfig(config) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", repair)
	}

	return config, nil
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent external modification
	configCopy := *m.config
	return &configCopy
}

// Watch starts watching the config file for changes and reloads automatically.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(_ fsnotify.Event) {
		if err := m.reload(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to reload config: %v\n", err)
			return
		}

		m.mu.RLock()
		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.RUnlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
	return nil
}

// OnConfigChange registers a callback function to be called when config changes.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
}

func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		return err
	}

	config, err := m.unmarshal()
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.config = config
	m.mu.Unlock()
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", defaults.Logging.Format)

	m.viper.SetDefault("gesture.flick_threshold", defaults.Gesture.FlickThreshold)
	m.viper.SetDefault("gesture.drag_threshold", defaults.Gesture.DragThreshold)
	m.viper.SetDefault("gesture.spring_stiffness", defaults.Gesture.SpringStiffness)
	m.viper.SetDefault("gesture.spring_damping", defaults.Gesture.SpringDamping)
	m.viper.SetDefault("gesture.spring_mass", defaults.Gesture.SpringMass)
	m.viper.SetDefault("gesture.rubber_band_coefficient", defaults.Gesture.RubberBandCoefficient)
	m.viper.SetDefault("gesture.slow_motion", defaults.Gesture.SlowMotion)

	m.viper.SetDefault("layout.min_pane_share", defaults.Layout.MinPaneShare)
	m.viper.SetDefault("layout.tab_strip_mode", defaults.Layout.TabStripMode)
	m.viper.SetDefault("layout.default_name", defaults.Layout.DefaultName)
}

// createDefaultConfig creates a default configuration file.
func (m *Manager) createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}

	configData, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(configFile, configData, filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err := GenerateSchemaFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write config schema: %v\n", err)
	}

	fmt.Printf("Created default configuration file: %s\n", configFile)
	return nil
}

// ConfigFileUsed returns the path to the configuration file being used.
func (m *Manager) ConfigFileUsed() string {
	return m.viper.ConfigFileUsed()
}

// Global configuration manager instance
var globalManager *Manager
var globalManagerOnce sync.Once

// Init initializes the global configuration manager.
func Init() error {
	var err error
	globalManagerOnce.Do(func() {
		globalManager, err = NewManager()
		if err != nil {
			return
		}
		err = globalManager.Load()
	})
	return err
}

// Get returns the global configuration.
func Get() *Config {
	if globalManager == nil {
		// Return defaults if not initialized
		return DefaultConfig()
	}
	return globalManager.Get()
}

// Watch starts watching the global configuration for changes.
func Watch() error {
	if globalManager == nil {
		return fmt.Errorf("configuration not initialized")
	}
	return globalManager.Watch()
}

// OnConfigChange registers a callback for global configuration changes.
func OnConfigChange(callback func(*Config)) {
	if globalManager == nil {
		return
	}
	globalManager.OnConfigChange(callback)
}

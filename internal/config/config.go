package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Search   SearchConfig   `mapstructure:"search"`
	History  HistoryConfig  `mapstructure:"history"`
	Player   PlayerConfig   `mapstructure:"player"`
	Download DownloadConfig `mapstructure:"download"`
	Selector SelectorConfig `mapstructure:"selector"`
	Editor   string         `mapstructure:"editor"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// SearchConfig holds search and cache configuration
type SearchConfig struct {
	Limit    int `mapstructure:"limit"`     // Results per search
	CacheTTL int `mapstructure:"cache_ttl"` // Scrape cache lifetime in seconds
}

// HistoryConfig holds watch history configuration
type HistoryConfig struct {
	MaxEntries int `mapstructure:"max_entries"`
}

// PlayerConfig holds media player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"`
	Args    []string `mapstructure:"args"`
	Video   bool     `mapstructure:"video"`  // Play the video track, not audio only
	Format  string   `mapstructure:"format"` // Optional ytdl format string
}

// DownloadConfig holds downloader configuration
type DownloadConfig struct {
	Dir string `mapstructure:"dir"`
}

// SelectorConfig holds picker configuration
type SelectorConfig struct {
	Command string `mapstructure:"command"` // Empty means auto-detect
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			Limit:    15,
			CacheTTL: 3600,
		},
		History: HistoryConfig{
			MaxEntries: 100,
		},
		Player: PlayerConfig{
			Command: "mpv",
			Args:    []string{},
			Video:   false,
		},
		Download: DownloadConfig{
			Dir: defaultDownloadDir(),
		},
		Selector: SelectorConfig{
			Command: "",
		},
		Editor: defaultEditor(),
		Logging: LoggingConfig{
			File:  filepath.Join(DefaultPaths().DataDir, "tube.log"),
			Level: "INFO",
		},
	}
}

func defaultDownloadDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, "Downloads")
}

func defaultEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "nvim"
}

// LoadConfig loads configuration from file and environment
func LoadConfig(paths Paths) (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(paths.ConfigDir)
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("TUBE")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Download.Dir = ExpandHome(cfg.Download.Dir)
	cfg.Logging.File = ExpandHome(cfg.Logging.File)

	return cfg, nil
}

// SaveConfig writes the configuration to the config file, creating the
// config directory if needed.
func SaveConfig(cfg *Config, paths Paths) error {
	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to keep snake_case key names
	viper.Set("search.limit", cfg.Search.Limit)
	viper.Set("search.cache_ttl", cfg.Search.CacheTTL)

	viper.Set("history.max_entries", cfg.History.MaxEntries)

	viper.Set("player.command", cfg.Player.Command)
	viper.Set("player.args", cfg.Player.Args)
	viper.Set("player.video", cfg.Player.Video)
	viper.Set("player.format", cfg.Player.Format)

	viper.Set("download.dir", cfg.Download.Dir)

	viper.Set("selector.command", cfg.Selector.Command)

	viper.Set("editor", cfg.Editor)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	if err := viper.WriteConfigAs(paths.ConfigFile()); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// EnsureConfigFile writes the default configuration to disk when no config
// file exists yet, so the edit flow always has a file to open.
func EnsureConfigFile(paths Paths) (string, error) {
	path := paths.ConfigFile()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := SaveConfig(DefaultConfig(), paths); err != nil {
		return "", err
	}
	return path, nil
}

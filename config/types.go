package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	GitHub  GitHubConfig  `mapstructure:"github"`
	Popular PopularConfig `mapstructure:"popular"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// GitHubConfig holds GitHub API connection details
type GitHubConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// PopularConfig contains defaults for the popular command
type PopularConfig struct {
	Pages  int    `mapstructure:"pages"`
	Filter string `mapstructure:"filter"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

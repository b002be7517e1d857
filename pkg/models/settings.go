package models

import "time"

// Settings is the resolved application configuration. It is built once at
// startup by the config package and treated as read-only afterwards.
type Settings struct {
	APIURL         string        `mapstructure:"api_url" yaml:"api_url"`
	ListenAddr     string        `mapstructure:"listen_addr" yaml:"listen_addr"`
	DatabasePath   string        `mapstructure:"database_path" yaml:"database_path"`
	ExportDir      string        `mapstructure:"export_dir" yaml:"export_dir"`
	PageSize       int           `mapstructure:"page_size" yaml:"page_size"`
	Debounce       time.Duration `mapstructure:"debounce" yaml:"debounce"`
	StatusTTL      time.Duration `mapstructure:"status_ttl" yaml:"status_ttl"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" yaml:"request_timeout"`
	LogLevel       string        `mapstructure:"log_level" yaml:"log_level"`
	LogFile        string        `mapstructure:"log_file" yaml:"log_file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		APIURL:         "http://localhost:8000",
		ListenAddr:     ":8000",
		DatabasePath:   "scans.db",
		ExportDir:      ".",
		PageSize:       DefaultPageSize,
		Debounce:       time.Second,
		StatusTTL:      3 * time.Second,
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
	}
}

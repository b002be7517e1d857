// Package config resolves the process-wide settings once at startup.
//
// Precedence, lowest first: built-in defaults, an optional scanlog.yaml,
// SCANLOG_* environment variables, then any command-line flags bound by
// the caller.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/scanlog/scanlog/pkg/models"
)

const (
	// EnvPrefix is prepended to every key when reading the environment,
	// e.g. SCANLOG_API_URL.
	EnvPrefix = "SCANLOG"

	configName = "scanlog"
)

// Binder lets a caller attach flag values (or anything else) to the viper
// instance before settings are decoded.
type Binder func(v *viper.Viper) error

// Load builds Settings. An explicit path must exist; without one, a
// scanlog.yaml in the working directory or $HOME/.config/scanlog is used
// when present.
func Load(path string, binders ...Binder) (*models.Settings, error) {
	v := viper.New()
	setDefaults(v, models.DefaultSettings())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	for _, bind := range binders {
		if err := bind(v); err != nil {
			return nil, fmt.Errorf("failed to bind config: %w", err)
		}
	}

	settings := &models.Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	settings.APIURL = strings.TrimRight(strings.TrimSpace(settings.APIURL), "/")

	if err := Validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Validate rejects settings the application cannot run with.
func Validate(s *models.Settings) error {
	u, err := url.Parse(s.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: must be an absolute http(s) URL", s.APIURL)
	}
	if s.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", s.PageSize)
	}
	if s.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive, got %s", s.Debounce)
	}
	if s.StatusTTL <= 0 {
		return fmt.Errorf("status_ttl must be positive, got %s", s.StatusTTL)
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", s.RequestTimeout)
	}
	return nil
}

func setDefaults(v *viper.Viper, d *models.Settings) {
	v.SetDefault("api_url", d.APIURL)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("database_path", d.DatabasePath)
	v.SetDefault("export_dir", d.ExportDir)
	v.SetDefault("page_size", d.PageSize)
	v.SetDefault("debounce", d.Debounce)
	v.SetDefault("status_ttl", d.StatusTTL)
	v.SetDefault("request_timeout", d.RequestTimeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
}

package cli

import (
	"github.com/spf13/viper"

	"github.com/scanlog/scanlog/pkg/client"
	"github.com/scanlog/scanlog/pkg/config"
	"github.com/scanlog/scanlog/pkg/models"
)

// CommandContext resolves settings and the API client once per command
type CommandContext struct {
	ConfigPath string
	APIURL     string
	Settings   *models.Settings
}

// NewCommandContext creates a command context. apiURL, when set, overrides
// every other source of api_url.
func NewCommandContext(configPath, apiURL string) *CommandContext {
	return &CommandContext{
		ConfigPath: configPath,
		APIURL:     apiURL,
	}
}

// LoadSettings resolves settings on first use and caches them
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := config.Load(c.ConfigPath, func(v *viper.Viper) error {
		if c.APIURL != "" {
			v.Set("api_url", c.APIURL)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.Settings = settings
	return settings, nil
}

// Client returns an API client for the resolved api_url
func (c *CommandContext) Client() (*client.Client, error) {
	settings, err := c.LoadSettings()
	if err != nil {
		return nil, err
	}
	return client.New(settings.APIURL, settings.RequestTimeout), nil
}

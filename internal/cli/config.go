package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/odoo-tools/domainconv/internal/odoorpc"
)

// ConnectionFlags are the per-command connection flags. Flags override
// values loaded from a --config file.
type ConnectionFlags struct {
	Config   string
	URL      string
	Database string
	Username string
	Password string
}

// loadConnection merges an optional YAML config file with flag overrides.
func loadConnection(flags ConnectionFlags) (odoorpc.Config, error) {
	var cfg odoorpc.Config

	if flags.Config != "" {
		data, err := os.ReadFile(flags.Config)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", flags.Config, err)
		}
	}

	if flags.URL != "" {
		cfg.URL = flags.URL
	}
	if flags.Database != "" {
		cfg.Database = flags.Database
	}
	if flags.Username != "" {
		cfg.Username = flags.Username
	}
	if flags.Password != "" {
		cfg.Password = flags.Password
	}

	if cfg.URL == "" {
		return cfg, fmt.Errorf("no server URL: pass --url or set url in a config file")
	}
	return cfg, nil
}

// Package config loads the settings of the billed CLI.
//
// Sources are applied in order, later ones winning: built-in defaults, a
// JSON file named with -c/-config, then command-line flags.
package config

import "time"

// Config holds runtime settings for the CLI.
type Config struct {
	// ServerEndpointAddr is host:port of the bill store gRPC endpoint.
	ServerEndpointAddr string
	// OnlineCheckInterval is how often the server is pinged.
	OnlineCheckInterval time.Duration
	// DatabasePath is the sqlite file holding the local session.
	DatabasePath string
	LogLevel     string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabasePath = "billed.db"
	c.LogLevel = "info"
}

// LoadConfig builds a Config from defaults, the JSON file and flags found in
// args (typically os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

package config

import "time"

// Config holds runtime settings for the itemkeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DownloadDir: directory fetched attachments are written to.
type Config struct {
	ServerEndpointAddr  string        `env:"ITEMKEEPER_SERVER_ADDR"`
	OnlineCheckInterval time.Duration `env:"ITEMKEEPER_ONLINE_CHECK_INTERVAL"`
	DownloadDir         string        `env:"ITEMKEEPER_DOWNLOAD_DIR"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DownloadDir = "downloads"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

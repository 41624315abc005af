package config

import "github.com/caarlos0/env/v11"

// parseEnv overlays every ITEMKEEPER_* client variable that is set onto cfg.
// Malformed values panic.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}

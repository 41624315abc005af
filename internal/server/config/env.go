package config

import (
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/dmitrijs2005/itemkeeper/internal/flagx"
	"github.com/joho/godotenv"
)

// legacyEnv holds the variable names used by earlier deployments of the
// service. Each maps onto one Config field:
//
//	SECRET_KEY                  -> SecretKey
//	DATABASE_URL                -> DatabaseDSN (SQLAlchemy-style URLs are rewritten)
//	LOG_LEVEL                   -> LogLevel
//	ACCESS_TOKEN_EXPIRE_MINUTES -> AccessTokenValidityDuration
//	ALLOWED_HOSTS               -> AllowedOrigins (JSON list or comma-separated)
//
// The ITEMKEEPER_* names win when both are set.
type legacyEnv struct {
	SecretKey          string `env:"SECRET_KEY"`
	DatabaseURL        string `env:"DATABASE_URL"`
	LogLevel           string `env:"LOG_LEVEL"`
	TokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES"`
	AllowedHosts       string `env:"ALLOWED_HOSTS"`
}

// parseEnv loads a dotenv file (path from -env, ".env" by default; a missing
// file is not an error) into the process environment and then overlays every
// variable that is set onto config, legacy names first. Unset variables leave
// the current values untouched. Malformed values panic, like the JSON overlay.
func parseEnv(config *Config) {
	if err := godotenv.Load(flagx.EnvFileFlag(".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		panic(err)
	}

	var legacy legacyEnv
	if err := env.Parse(&legacy); err != nil {
		panic(err)
	}
	legacy.apply(config)

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}

func (l legacyEnv) apply(config *Config) {
	if l.SecretKey != "" {
		config.SecretKey = l.SecretKey
	}
	if l.DatabaseURL != "" {
		config.DatabaseDSN = databaseURLToDSN(l.DatabaseURL)
	}
	if l.LogLevel != "" {
		config.LogLevel = l.LogLevel
	}
	if l.TokenExpireMinutes > 0 {
		config.AccessTokenValidityDuration = time.Duration(l.TokenExpireMinutes) * time.Minute
	}
	if l.AllowedHosts != "" {
		config.AllowedOrigins = splitOrigins(l.AllowedHosts)
	}
}

// databaseURLToDSN rewrites SQLAlchemy URLs: "sqlite:///./app.db" becomes
// "sqlite:./app.db" and a "+driver" suffix on the scheme is dropped.
func databaseURLToDSN(url string) string {
	if path, ok := strings.CutPrefix(url, "sqlite:///"); ok {
		return "sqlite:" + path
	}
	scheme, rest, ok := strings.Cut(url, "://")
	if !ok {
		return url
	}
	scheme, _, _ = strings.Cut(scheme, "+")
	return scheme + "://" + rest
}

// splitOrigins accepts `["http://a","http://b"]` or `http://a,http://b`.
func splitOrigins(v string) []string {
	v = strings.TrimSpace(v)

	var list []string
	if strings.HasPrefix(v, "[") {
		if err := json.Unmarshal([]byte(v), &list); err != nil {
			panic(err)
		}
	} else {
		list = strings.Split(v, ",")
	}

	origins := make([]string, 0, len(list))
	for _, o := range list {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

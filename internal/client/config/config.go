package config

import "time"

// DefaultAPIBaseURL is the public OpenMat API.
const DefaultAPIBaseURL = "https://openmat-api.onrender.com/api/v1"

// Config holds runtime settings for the OpenMat CLI.
//
// Fields:
//   - APIBaseURL: base endpoint every request path is appended to.
//   - AssetBaseURL: host that serves academy photos and logos.
//   - RequestTimeout: per-request deadline (0 disables it). Never retried.
//   - DatabasePath: SQLite file holding the persisted session token.
//   - OnlineCheckInterval: how often the CLI probes API reachability.
//   - LogLevel / LogFormat: slog level name and "text" or "json".
type Config struct {
	APIBaseURL          string        `env:"OPENMAT_API_URL"`
	AssetBaseURL        string        `env:"OPENMAT_ASSET_URL"`
	RequestTimeout      time.Duration `env:"OPENMAT_REQUEST_TIMEOUT"`
	DatabasePath        string        `env:"OPENMAT_DB"`
	OnlineCheckInterval time.Duration `env:"OPENMAT_ONLINE_CHECK_INTERVAL"`
	LogLevel            string        `env:"OPENMAT_LOG_LEVEL"`
	LogFormat           string        `env:"OPENMAT_LOG_FORMAT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.AssetBaseURL = "https://openmat-api.onrender.com"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "openmat.db"
	c.OnlineCheckInterval = 30 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment, and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

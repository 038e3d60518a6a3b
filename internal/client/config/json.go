package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/openmat/internal/flagx"
	"github.com/dmitrijs2005/openmat/internal/timex"
)

// JsonConfig is the DTO used for JSON unmarshalling only. Empty or missing
// fields leave the corresponding Config value untouched.
type JsonConfig struct {
	APIBaseURL          string          `json:"api_base_url"`
	AssetBaseURL        string          `json:"asset_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	DatabasePath        string          `json:"database_path"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	LogLevel            string          `json:"log_level"`
	LogFormat           string          `json:"log_format"`
}

// parseJson overlays cfg with the JSON file named by -c / -config. Without the
// flag it does nothing. Read or decode errors panic; the file was explicitly
// requested, so starting with a half-applied config is worse.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.AssetBaseURL != "" {
		cfg.AssetBaseURL = jc.AssetBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
}

// Package config loads runtime configuration for the OpenMat CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables prefixed OPENMAT_ (see parseEnv); a .env file in
//     the working directory is loaded first when present.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   API base URL
//	-t int      request timeout (seconds, 0 disables)
//	-d string   path to the local SQLite database
//	-i int      online status check interval (seconds)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations are decoded with timex.Duration, so they can be strings like "15s"
// or integer nanoseconds:
//
//	{
//	  "api_base_url": "https://openmat-api.onrender.com/api/v1",
//	  "request_timeout": "15s",
//	  "database_path": "openmat.db",
//	  "online_check_interval": "30s",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config

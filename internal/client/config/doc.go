// Package config loads runtime configuration for the MedBook CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory, if present, then MEDBOOK_*
//     environment variables. Variables already set in the environment win
//     over the .env file.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags, which override everything else.
//
// Environment
//
//	MEDBOOK_API_URL                base URL of the REST API
//	MEDBOOK_SESSION_DB             SQLite file holding the session
//	MEDBOOK_REQUEST_TIMEOUT        per-request timeout, e.g. "30s"
//	MEDBOOK_ONLINE_CHECK_INTERVAL  status probe interval, e.g. "3s"
//	MEDBOOK_LOG_LEVEL              debug, info, warn or error
//
// Flags
//
//	-a string     base URL of the REST API
//	-d string     session database file
//	-t int        request timeout (seconds)
//	-i int        online status check interval (seconds)
//	-l string     log level
//	-ephemeral    keep the session in memory only
//
// # JSON schema
//
// Durations are strings like "3s" or integer nanoseconds:
//
//	{
//	  "api_url": "http://localhost:8000/api",
//	  "session_db": "medbook.db",
//	  "request_timeout": "30s",
//	  "online_check_interval": "3s",
//	  "log_level": "info"
//	}
package config

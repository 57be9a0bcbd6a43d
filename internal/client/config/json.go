package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/medbook/internal/flagx"
	"github.com/dmitrijs2005/medbook/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals
// go through timex.Duration so they may be written as "3s".
type JsonConfig struct {
	APIURL              string         `json:"api_url"`
	SessionDB           string         `json:"session_db"`
	Ephemeral           *bool          `json:"ephemeral"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	LogLevel            string         `json:"log_level"`
}

// parseJSON overlays cfg with the non-empty values of the JSON file named
// by -c/-config. Without the flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if jc.APIURL != "" {
		cfg.APIURL = jc.APIURL
	}
	if jc.SessionDB != "" {
		cfg.SessionDB = jc.SessionDB
	}
	if jc.Ephemeral != nil {
		cfg.Ephemeral = *jc.Ephemeral
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	return nil
}

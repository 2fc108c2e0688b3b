package config

import (
	"os"
	"time"
)

const (
	defaultSnapsURL     = "https://satts11.sensysnetworks.net/snaps/dataservice/stats.xml"
	defaultSnapsTimeout = 30 * time.Second
)

type SnapsConfig struct {
	URL                string
	Username           string
	Password           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

func LoadSnapsConfig() *SnapsConfig {
	timeout := defaultSnapsTimeout
	if v := os.Getenv("SNAPS_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	return &SnapsConfig{
		URL:                getEnvOrDefault("SNAPS_URL", defaultSnapsURL),
		Username:           os.Getenv("SNAPS_USERNAME"),
		Password:           os.Getenv("SNAPS_PASSWORD"),
		Timeout:            timeout,
		InsecureSkipVerify: os.Getenv("SNAPS_INSECURE_SKIP_VERIFY") == "true",
	}
}

func (c *SnapsConfig) Validate() error {
	if c.Username == "" || c.Password == "" {
		return ErrSnapsCredentials
	}
	return nil
}

package config

import (
	"os"
)

const (
	tabularBackendEnv = "TABULAR_BACKEND"

	defaultTabularBackend = "redis"
)

type TabularBackend string

const (
	TabularBackendMemory   TabularBackend = "memory"
	TabularBackendRedis    TabularBackend = "redis"
	TabularBackendPostgres TabularBackend = "postgres"
	TabularBackendSheets   TabularBackend = "sheets"
)

type TabularConfig struct {
	Backend       TabularBackend
	PostgresDSN   string
	GoogleSheetID string
}

func LoadTabularConfig() *TabularConfig {
	backend := TabularBackend(os.Getenv(tabularBackendEnv))
	if backend == "" {
		backend = defaultTabularBackend
	}

	return &TabularConfig{
		Backend:       backend,
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		GoogleSheetID: os.Getenv("GOOGLE_SHEET_ID"),
	}
}

func (c *TabularConfig) Validate() error {
	switch c.Backend {
	case TabularBackendMemory, TabularBackendRedis:
		return nil
	case TabularBackendPostgres:
		if c.PostgresDSN == "" {
			return ErrPostgresDSNMissing
		}
		return nil
	case TabularBackendSheets:
		if c.GoogleSheetID == "" {
			return ErrGoogleSheetIDMissing
		}
		return nil
	default:
		return ErrUnknownTabularBackend
	}
}

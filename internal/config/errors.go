package config

import "errors"

var (
	ErrRedisAddrMissing      = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB        = errors.New("REDIS_DB must be a non-negative integer")
	ErrInvalidTimezone       = errors.New("TIMEZONE must be a valid IANA location")
	ErrInvalidOperatingHours = errors.New("operating hours must satisfy 0 <= OPERATING_START_HOUR <= OPERATING_END_HOUR <= 23")
	ErrEndHourIsCheckpoint   = errors.New("OPERATING_END_HOUR must not be 13, 16 or 17")
	ErrInvalidStations       = errors.New("STATIONS must be a JSON object of station group to station id")
	ErrInvalidLaneTables     = errors.New("LANE_TABLES entries must be group:lane[=table]")
	ErrAlertTableMissing     = errors.New("ALERT_GROUP/ALERT_LANE must match a configured lane table")
	ErrSnapsCredentials      = errors.New("SNAPS_USERNAME and SNAPS_PASSWORD are required")
	ErrPostgresDSNMissing    = errors.New("POSTGRES_DSN is required for the postgres tabular backend")
	ErrGoogleSheetIDMissing  = errors.New("GOOGLE_SHEET_ID is required for the sheets tabular backend")
	ErrUnknownTabularBackend = errors.New("TABULAR_BACKEND must be one of memory, redis, postgres, sheets")
)

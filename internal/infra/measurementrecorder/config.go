package measurementrecorder

import (
	"os"
)

type Config struct {
	Disabled bool

	InfluxDBURL    string
	InfluxDBToken  string
	InfluxDBOrg    string
	InfluxDBBucket string

	BigQueryProjectID     string
	BigQueryDataset       string
	BigQueryTable         string
	BigQueryForecastTable string
}

func LoadConfig() *Config {
	cfg := &Config{
		Disabled: os.Getenv("MEASUREMENTS_DISABLED") == "true",

		InfluxDBURL:    getEnvOrDefault("INFLUXDB_URL", "http://localhost:8086"),
		InfluxDBToken:  os.Getenv("INFLUXDB_TOKEN"),
		InfluxDBOrg:    os.Getenv("INFLUXDB_ORG"),
		InfluxDBBucket: getEnvOrDefault("INFLUXDB_BUCKET", "traffic_counts"),

		BigQueryProjectID:     getEnvOrDefault("BIGQUERY_PROJECT_ID", os.Getenv("GOOGLE_CLOUD_PROJECT")),
		BigQueryDataset:       getEnvOrDefault("BIGQUERY_DATASET", "traffic"),
		BigQueryTable:         getEnvOrDefault("BIGQUERY_TABLE", "lane_counts"),
		BigQueryForecastTable: getEnvOrDefault("BIGQUERY_FORECAST_TABLE", "forecasts"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

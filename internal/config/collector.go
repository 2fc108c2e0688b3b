package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KasumiMercury/traffic-count-collector/internal/domain"
)

const (
	timezoneEnv           = "TIMEZONE"
	operatingStartHourEnv = "OPERATING_START_HOUR"
	operatingEndHourEnv   = "OPERATING_END_HOUR"
	stationsEnv           = "STATIONS"
	laneTablesEnv         = "LANE_TABLES"
	predictionTableEnv    = "PREDICTION_TABLE"
	alertGroupEnv         = "ALERT_GROUP"
	alertLaneEnv          = "ALERT_LANE"
	invocationStreamEnv   = "INVOCATION_STREAM"

	defaultTimezone           = "America/Los_Angeles"
	defaultOperatingStartHour = 5
	defaultOperatingEndHour   = 18
	defaultLaneTables         = "entry:EntryA,entry:EntryB"
	defaultPredictionTable    = "prediction"
	defaultAlertGroup         = "entry"
	defaultAlertLane          = "EntryA"
	defaultInvocationStream   = "collect_to_sheet"
)

type Station struct {
	Group domain.StationGroup
	ID    string
}

// LaneTable binds a table to one lane of a station group.
type LaneTable struct {
	Name  string
	Group domain.StationGroup
	Lane  string
}

type CollectorConfig struct {
	Location           *time.Location
	OperatingStartHour int
	OperatingEndHour   int
	Stations           []Station
	LaneTables         []LaneTable
	PredictionTable    string
	AlertGroup         domain.StationGroup
	AlertLane          string
	InvocationStream   string
}

func LoadCollectorConfig() (*CollectorConfig, error) {
	loc, err := time.LoadLocation(getEnvOrDefault(timezoneEnv, defaultTimezone))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
	}

	startHour := defaultOperatingStartHour
	if v := os.Getenv(operatingStartHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			startHour = parsed
		}
	}

	endHour := defaultOperatingEndHour
	if v := os.Getenv(operatingEndHourEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			endHour = parsed
		}
	}

	stations, err := ParseStations(os.Getenv(stationsEnv))
	if err != nil {
		return nil, err
	}

	laneTables, err := ParseLaneTables(getEnvOrDefault(laneTablesEnv, defaultLaneTables))
	if err != nil {
		return nil, err
	}

	return &CollectorConfig{
		Location:           loc,
		OperatingStartHour: startHour,
		OperatingEndHour:   endHour,
		Stations:           stations,
		LaneTables:         laneTables,
		PredictionTable:    getEnvOrDefault(predictionTableEnv, defaultPredictionTable),
		AlertGroup:         domain.StationGroup(getEnvOrDefault(alertGroupEnv, defaultAlertGroup)),
		AlertLane:          getEnvOrDefault(alertLaneEnv, defaultAlertLane),
		InvocationStream:   getEnvOrDefault(invocationStreamEnv, defaultInvocationStream),
	}, nil
}

// ParseStations decodes {"entry": "stationA", "exit": "stationB"}. Stations are
// returned sorted by group so every invocation visits them in the same order.
func ParseStations(raw string) ([]Station, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var byGroup map[string]string
	if err := json.Unmarshal([]byte(raw), &byGroup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStations, err)
	}

	stations := make([]Station, 0, len(byGroup))
	for group, id := range byGroup {
		if group == "" || id == "" {
			return nil, ErrInvalidStations
		}
		stations = append(stations, Station{Group: domain.StationGroup(group), ID: id})
	}
	sort.Slice(stations, func(i, j int) bool {
		return stations[i].Group < stations[j].Group
	})

	return stations, nil
}

// ParseLaneTables decodes "group:lane[=table],..." where table defaults to lane.
func ParseLaneTables(raw string) ([]LaneTable, error) {
	var tables []LaneTable
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		group, rest, ok := strings.Cut(entry, ":")
		if !ok || group == "" || rest == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLaneTables, entry)
		}

		lane, name, hasName := strings.Cut(rest, "=")
		if !hasName {
			name = lane
		}
		if lane == "" || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLaneTables, entry)
		}

		tables = append(tables, LaneTable{
			Name:  name,
			Group: domain.StationGroup(group),
			Lane:  lane,
		})
	}

	return tables, nil
}

// AlertTable returns the lane table used for predictions and alerts.
func (c *CollectorConfig) AlertTable() (LaneTable, bool) {
	for _, t := range c.LaneTables {
		if t.Group == c.AlertGroup && t.Lane == c.AlertLane {
			return t, true
		}
	}
	return LaneTable{}, false
}

func (c *CollectorConfig) StationFor(group domain.StationGroup) (Station, bool) {
	for _, s := range c.Stations {
		if s.Group == group {
			return s, true
		}
	}
	return Station{}, false
}

// intradayCheckpointHours are the local hours of the midday and afternoon
// predictions. The end-of-day capture runs at OperatingEndHour, so it cannot
// share one of them.
var intradayCheckpointHours = []int{13, 16, 17}

func (c *CollectorConfig) Validate() error {
	if c.Location == nil {
		return ErrInvalidTimezone
	}
	if c.OperatingStartHour < 0 || c.OperatingEndHour > 23 || c.OperatingStartHour > c.OperatingEndHour {
		return ErrInvalidOperatingHours
	}
	for _, h := range intradayCheckpointHours {
		if c.OperatingEndHour == h {
			return fmt.Errorf("%w: %d", ErrEndHourIsCheckpoint, h)
		}
	}
	if len(c.Stations) == 0 {
		return ErrInvalidStations
	}
	if len(c.LaneTables) == 0 {
		return ErrInvalidLaneTables
	}
	if _, ok := c.AlertTable(); !ok {
		return ErrAlertTableMissing
	}
	return nil
}

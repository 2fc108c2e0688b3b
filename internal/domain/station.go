package domain

// StationGroup identifies which side of the site a station counts.
type StationGroup string

const (
	StationGroupEntry StationGroup = "entry"
	StationGroupExit  StationGroup = "exit"
)

func (g StationGroup) String() string {
	return string(g)
}

// LaneCounts maps a lane name to its vehicle volume. An empty map means no data.
type LaneCounts map[string]int

func (c LaneCounts) IsEmpty() bool {
	return len(c) == 0
}

// Volume returns the count for lane, clamped at zero.
func (c LaneCounts) Volume(lane string) (int, bool) {
	v, ok := c[lane]
	if !ok {
		return 0, false
	}
	return max(0, v), true
}

type StationObservation struct {
	StationGroup StationGroup `json:"station_group"`
	StationID    string       `json:"station_id"`
	LaneCounts   LaneCounts   `json:"lane_counts"`
	Forecast     *Forecast    `json:"forecast,omitempty"`
	FetchError   string       `json:"fetch_error,omitempty"`
}

func NewStationObservation(group StationGroup, stationID string) *StationObservation {
	return &StationObservation{
		StationGroup: group,
		StationID:    stationID,
		LaneCounts:   LaneCounts{},
	}
}

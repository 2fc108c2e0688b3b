package stub

import "encoding/xml"

type SeedRequest struct {
	Buckets []SeedBucket `json:"buckets"`
}

// SeedBucket spreads Volume vehicles evenly over [StartTime, EndTime).
type SeedBucket struct {
	LocationGroup string `json:"location_group"`
	Approach      string `json:"approach,omitempty"`
	Lane          string `json:"lane"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Volume        int    `json:"volume"`
}

type FaultRequest struct {
	LocationGroup string `json:"location_group"`
	Message       string `json:"message"`
}

type statisticsDocument struct {
	XMLName    xml.Name           `xml:"statistics"`
	Approaches []approachDocument `xml:"approach"`
}

type approachDocument struct {
	Name  string         `xml:"name,attr"`
	Lanes []laneDocument `xml:"lanes>lane"`
}

type laneDocument struct {
	Name string       `xml:"name,attr"`
	Stat statDocument `xml:"stat"`
}

type statDocument struct {
	Volume int `xml:"volume,attr"`
}

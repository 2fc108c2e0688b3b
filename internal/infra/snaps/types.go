package snaps

import "encoding/xml"

// statistics is the stats.xml document. Only lane volumes are read.
type statistics struct {
	XMLName    xml.Name   `xml:"statistics"`
	Approaches []approach `xml:"approach"`
}

type approach struct {
	Name  string `xml:"name,attr"`
	Lanes []lane `xml:"lanes>lane"`
}

type lane struct {
	Name string `xml:"name,attr"`
	Stat stat   `xml:"stat"`
}

type stat struct {
	Volume string `xml:"volume,attr"`
}

package model

import "time"

// PrinterFeatures describes what a print location can do.
type PrinterFeatures struct {
	Color          bool            `json:"color"`
	Duplex         bool            `json:"duplex"`
	MaxPaperSize   PaperSize       `json:"max_paper_size,omitempty"`
	PagesPerMinute int             `json:"pages_per_minute,omitempty"`
	Extras         map[string]bool `json:"extras,omitempty"`
}

// Printer is a physical print location.
type Printer struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Latitude  float64         `json:"latitude"`
	Longitude float64         `json:"longitude"`
	IsOpen    bool            `json:"is_open"`
	Features  PrinterFeatures `json:"features"`
	CreatedAt time.Time       `json:"created_at"`
}

// PrinterLocation is a printer annotated with its distance from a caller.
type PrinterLocation struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Address    string          `json:"address"`
	DistanceKm float64         `json:"distance_km"`
	IsOpen     bool            `json:"is_open"`
	Latitude   float64         `json:"latitude"`
	Longitude  float64         `json:"longitude"`
	Features   PrinterFeatures `json:"features"`
}

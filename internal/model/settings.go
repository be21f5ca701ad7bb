package model

import "strings"

// ColorMode selects color or monochrome output.
type ColorMode string

const (
	ColorModeColor      ColorMode = "Color"
	ColorModeBlackWhite ColorMode = "Black & White"
)

func (c ColorMode) Valid() bool {
	return c == ColorModeColor || c == ColorModeBlackWhite
}

// Quality is the print resolution tier.
type Quality string

const (
	QualityStandard Quality = "Standard"
	QualityHigh     Quality = "High"
	QualityDraft    Quality = "Draft"
)

func (q Quality) Valid() bool {
	switch q {
	case QualityStandard, QualityHigh, QualityDraft:
		return true
	}
	return false
}

// Sides describes single or double-sided printing.
type Sides string

const (
	SidesOne          Sides = "One-sided"
	SidesTwoLongEdge  Sides = "Two-sided (long edge)"
	SidesTwoShortEdge Sides = "Two-sided (short edge)"
)

func (s Sides) Valid() bool {
	switch s {
	case SidesOne, SidesTwoLongEdge, SidesTwoShortEdge:
		return true
	}
	return false
}

// Duplex reports whether the setting prints on both sides of the sheet.
func (s Sides) Duplex() bool {
	return strings.HasPrefix(string(s), "Two-sided")
}

type PaperSize string

const (
	PaperA4     PaperSize = "A4"
	PaperLetter PaperSize = "Letter"
	PaperLegal  PaperSize = "Legal"
)

func (p PaperSize) Valid() bool {
	switch p {
	case PaperA4, PaperLetter, PaperLegal:
		return true
	}
	return false
}

type Orientation string

const (
	OrientationPortrait  Orientation = "Portrait"
	OrientationLandscape Orientation = "Landscape"
)

func (o Orientation) Valid() bool {
	return o == OrientationPortrait || o == OrientationLandscape
}

// TokenType is the queue tier a job is booked under.
type TokenType string

const (
	TokenNormal   TokenType = "normal"
	TokenPriority TokenType = "priority"
)

func (t TokenType) Valid() bool {
	return t == TokenNormal || t == TokenPriority
}

// PrintSettings is the set of options chosen for a print job.
type PrintSettings struct {
	Copies      int         `json:"copies"`
	ColorMode   ColorMode   `json:"color_mode"`
	PaperSize   PaperSize   `json:"paper_size"`
	Orientation Orientation `json:"orientation"`
	Sides       Sides       `json:"sides"`
	Quality     Quality     `json:"quality"`
}

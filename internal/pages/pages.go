// Package pages estimates how many printed pages an uploaded file will take.
// Estimates come from file size and type only and are never exact.
package pages

import (
	"math"
	"strings"
)

const bytesPerMB = 1024 * 1024

// pages per megabyte by file type
var pagesPerMB = map[string]float64{
	"pdf":  10,
	"doc":  8,
	"docx": 8,
	"ppt":  2,
	"pptx": 2,
	"xls":  5,
	"xlsx": 5,
}

const defaultPagesPerMB = 5

var singlePageTypes = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
}

// Estimate returns the estimated page count of a file of sizeBytes with the
// given extension (with or without a leading dot). The result is at least 1.
func Estimate(sizeBytes int64, fileType string) int {
	ft := strings.TrimPrefix(strings.ToLower(fileType), ".")
	if singlePageTypes[ft] {
		return 1
	}

	factor, ok := pagesPerMB[ft]
	if !ok {
		factor = defaultPagesPerMB
	}

	sizeMB := float64(sizeBytes) / bytesPerMB
	n := int(math.Ceil(sizeMB * factor))
	if n < 1 {
		return 1
	}
	return n
}

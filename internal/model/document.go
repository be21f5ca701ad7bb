package model

import "time"

// Document represents an uploaded file owned by a single user.
// This is a pure domain model with no database-specific dependencies or tags.
//
// EstimatedPages is derived from the file size and type at upload time; it is
// not a measured page count.
type Document struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Filename       string     `json:"filename"`
	StoragePath    string     `json:"storage_path"`
	FileType       string     `json:"file_type"`
	ContentType    string     `json:"content_type"`
	Size           int64      `json:"size"`
	EstimatedPages int        `json:"estimated_pages"`
	CreatedAt      time.Time  `json:"created_at"`
	LastPrintedAt  *time.Time `json:"last_printed_at,omitempty"`
}

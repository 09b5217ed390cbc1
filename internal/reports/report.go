// Package reports implements the incident report domain. It provides
// types, data access, and business logic for report submission, media
// attachment, and blob storage integration.
package reports

import (
	"time"

	"github.com/google/uuid"
)

// Report statuses track a submission through the verification workflow.
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)

// Report represents a citizen-submitted incident report with its media
// locators and location metadata.
type Report struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Status      string    `json:"status"`
	Media       []string  `json:"media"`
	MediaKeys   []string  `json:"media_keys"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Address     string    `json:"address"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new report.
// Media may seed the report with external image URLs; uploaded files
// are attached afterwards via AttachMedia.
type CreateCommand struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Media       []string `json:"media"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Address     string   `json:"address"`
}

// MediaCommand carries an uploaded media file destined for blob storage.
type MediaCommand struct {
	Data        []byte
	Filename    string
	ContentType string
}

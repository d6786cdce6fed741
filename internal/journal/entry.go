// Package journal defines the core data model for travel journal entries.
package journal

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Image is one photo attached to an entry. Order is the zero-based
// position used for stable gallery ordering.
type Image struct {
	ID    int64  `json:"id,omitempty"`
	URL   string `json:"url"`
	Order int    `json:"order"`
}

// Entry is a single journal record together with its owned image list
// and tag set.
//
// ID is client-generated and immutable once created. DateTime is the
// user-facing display string; the store derives a normalized epoch from
// it for date-range filtering. Synced flips to true only after a
// confirmed remote push.
type Entry struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	LocationName string   `json:"location_name,omitempty"`
	DateTime     string   `json:"date_time,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	CreatedAt    int64    `json:"created_at"`
	Synced       bool     `json:"synced"`

	Images []Image  `json:"images,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// NewID returns a fresh client-generated entry id.
func NewID() string {
	return uuid.NewString()
}

// Validate checks caller-side invariants before an entry reaches the
// store. The store itself does not re-validate titles; rejecting bad
// input early keeps half-formed entries out of the write path.
func (e *Entry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if (e.Latitude == nil) != (e.Longitude == nil) {
		return fmt.Errorf("latitude and longitude must be set together")
	}
	return nil
}

// HasCoordinates reports whether the entry carries a lat/lon pair.
func (e *Entry) HasCoordinates() bool {
	return e.Latitude != nil && e.Longitude != nil
}

package domain

import "time"

// CatalogSnapshot is the full validated catalog at a point in time.
// Snapshots are immutable once published: a newer fetch supersedes the
// snapshot, it is never mutated in place.
type CatalogSnapshot struct {
	Devices   []DeviceRecord `json:"devices"`
	Version   string         `json:"version"`
	FetchedAt time.Time      `json:"fetched_at"`

	HadValidationErrors bool     `json:"had_validation_errors"`
	ValidationErrors    []string `json:"validation_errors,omitempty"`
}

// QueryState is the current free-text query plus the selected product
// lines. Lines have set semantics for filtering; insertion order is
// preserved for display.
type QueryState struct {
	Query string   `json:"query"`
	Lines []string `json:"lines"`
}

// Suggestion is one ranked autocomplete entry: the product name as
// display text and a short-form label (first short name, else abbrev).
type Suggestion struct {
	Text  string `json:"text"`
	Label string `json:"label,omitempty"`
}

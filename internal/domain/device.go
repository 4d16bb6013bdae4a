package domain

// DeviceRecord is one device's metadata entry in the catalog. After
// validation ID is always non-empty; every other field may be its zero
// value and display code is expected to fall back gracefully.
type DeviceRecord struct {
	ID         string   `json:"id"`
	SysID      string   `json:"sysid,omitempty"`
	Name       string   `json:"name,omitempty"`
	Abbrev     string   `json:"abbrev,omitempty"`
	LineID     string   `json:"line_id,omitempty"`
	LineName   string   `json:"line_name,omitempty"`
	SKU        string   `json:"sku,omitempty"`
	ShortNames []string `json:"short_names,omitempty"`
	Icon       Icon     `json:"icon,omitempty"`

	// Technical-specification blocks. Their internal shape is
	// heterogeneous and vendor-controlled, so they stay opaque.
	Network      map[string]any `json:"network,omitempty"`
	Compliance   map[string]any `json:"compliance,omitempty"`
	Connectivity map[string]any `json:"connectivity,omitempty"`
}

// Icon describes a device glyph: an opaque id plus the resolutions the
// CDN has renders for, as [width, height] pairs in declared order.
type Icon struct {
	ID          string   `json:"id,omitempty"`
	Resolutions [][2]int `json:"resolutions,omitempty"`
}

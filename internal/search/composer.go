package search

import "unifi/catalog/internal/domain"

// Apply runs the fixed two-stage pipeline: free-text search first, then
// categorical filtering over the result. The ordering is deliberate —
// it keeps displayed counts consistent between the search box and the
// line filter shown in the same toolbar — and is not configurable.
func Apply(records []domain.DeviceRecord, query string, lines []string) []domain.DeviceRecord {
	matched := Filter(records, query)

	if len(lines) == 0 {
		return matched
	}

	selected := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		selected[line] = struct{}{}
	}

	out := make([]domain.DeviceRecord, 0, len(matched))
	for _, rec := range matched {
		if _, ok := selected[rec.LineName]; ok {
			out = append(out, rec)
		}
	}
	return out
}

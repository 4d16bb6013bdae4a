package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"unifi/catalog/internal/domain"
)

// DefaultSuggestionLimit bounds autocomplete output when no limit is
// configured.
const DefaultSuggestionLimit = 8

// minSuggestQueryLen suppresses suggestions for queries shorter than
// two characters.
const minSuggestQueryLen = 2

// Tier classifies how well a record matches a query. Lower is better;
// ordering between tiers is strict.
type Tier int

const (
	TierExact Tier = iota
	TierPrefix
	TierContains
	TierNone
)

func searchFields(rec domain.DeviceRecord) []string {
	fields := []string{rec.Name, rec.Abbrev, rec.LineName, rec.SKU, rec.ID, rec.SysID}
	return append(fields, rec.ShortNames...)
}

// Matches reports whether the query occurs, case-insensitively, in any
// searchable field. An empty or whitespace-only query matches
// everything.
func Matches(rec domain.DeviceRecord, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range searchFields(rec) {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Filter keeps the records matching the query, preserving catalog
// order. Filtering is idempotent.
func Filter(records []domain.DeviceRecord, query string) []domain.DeviceRecord {
	if strings.TrimSpace(query) == "" {
		return records
	}
	out := make([]domain.DeviceRecord, 0, len(records))
	for _, rec := range records {
		if Matches(rec, query) {
			out = append(out, rec)
		}
	}
	return out
}

// classify computes the best tier across all searchable fields, so a
// weaker match on a later field never downgrades an earlier exact hit.
func classify(rec domain.DeviceRecord, q string) Tier {
	best := TierNone
	for _, field := range searchFields(rec) {
		f := strings.ToLower(field)
		switch {
		case f == q:
			return TierExact
		case strings.HasPrefix(f, q):
			if TierPrefix < best {
				best = TierPrefix
			}
		case strings.Contains(f, q):
			if TierContains < best {
				best = TierContains
			}
		}
	}
	return best
}

// Suggest returns ranked autocomplete suggestions: exact matches first,
// then prefix, then substring, catalog order preserved within a tier.
// Each record contributes at most one suggestion, de-duplicated by
// lower-cased display name, truncated to limit after merging tiers.
func Suggest(records []domain.DeviceRecord, query string, limit int) []domain.Suggestion {
	q := strings.ToLower(strings.TrimSpace(query))
	if utf8.RuneCountInString(q) < minSuggestQueryLen {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	type candidate struct {
		tier Tier
		rec  domain.DeviceRecord
	}

	candidates := make([]candidate, 0, len(records))
	for _, rec := range records {
		if tier := classify(rec, q); tier != TierNone {
			candidates = append(candidates, candidate{tier: tier, rec: rec})
		}
	}

	// Candidates are already in catalog order; a stable sort by tier
	// keeps that order within each tier.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].tier < candidates[j].tier
	})

	seen := make(map[string]struct{}, len(candidates))
	out := make([]domain.Suggestion, 0, limit)
	for _, c := range candidates {
		key := strings.ToLower(c.rec.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		out = append(out, domain.Suggestion{
			Text:  c.rec.Name,
			Label: suggestionLabel(c.rec),
		})
		if len(out) == limit {
			break
		}
	}
	return out
}

func suggestionLabel(rec domain.DeviceRecord) string {
	if len(rec.ShortNames) > 0 {
		return rec.ShortNames[0]
	}
	return rec.Abbrev
}

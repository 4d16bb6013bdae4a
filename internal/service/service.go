package service

import (
	"context"
	"fmt"

	"unifi/catalog/internal/cache"
	"unifi/catalog/internal/domain"
	"unifi/catalog/internal/images"
	"unifi/catalog/internal/search"

	log "github.com/sirupsen/logrus"
)

// CatalogService is the operations facade over the cached catalog: the
// query pipeline, autocomplete, detail lookup and refresh. All reads
// are pure computations over the current snapshot; only the cache
// performs I/O.
type CatalogService struct {
	cache           *cache.SnapshotCache
	images          *images.Resolver
	suggestionLimit int
}

func NewCatalogService(snapshots *cache.SnapshotCache, resolver *images.Resolver, suggestionLimit int) *CatalogService {
	if suggestionLimit <= 0 {
		suggestionLimit = search.DefaultSuggestionLimit
	}
	return &CatalogService{
		cache:           snapshots,
		images:          resolver,
		suggestionLimit: suggestionLimit,
	}
}

// Snapshot returns the current validated catalog, fetching if the
// cached one expired.
func (s *CatalogService) Snapshot(ctx context.Context) (*domain.CatalogSnapshot, error) {
	return s.cache.Get(ctx)
}

// Query runs the full pipeline: snapshot, free-text filter, then line
// filter.
func (s *CatalogService) Query(ctx context.Context, state domain.QueryState) ([]domain.DeviceRecord, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	return search.Apply(snap.Devices, state.Query, state.Lines), nil
}

// Suggest returns ranked autocomplete suggestions for the query.
func (s *CatalogService) Suggest(ctx context.Context, query string) ([]domain.Suggestion, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	return search.Suggest(snap.Devices, query, s.suggestionLimit), nil
}

// Device looks up one record by id. An id absent from the loaded
// catalog yields domain.ErrDeviceNotFound.
func (s *CatalogService) Device(ctx context.Context, id string) (domain.DeviceRecord, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return domain.DeviceRecord{}, err
	}
	for _, rec := range snap.Devices {
		if rec.ID == id {
			return rec, nil
		}
	}
	return domain.DeviceRecord{}, fmt.Errorf("device %q: %w", id, domain.ErrDeviceNotFound)
}

// Lines returns the distinct product line names in catalog order,
// feeding the multi-select filter.
func (s *CatalogService) Lines(ctx context.Context) ([]string, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	lines := make([]string, 0)
	for _, rec := range snap.Devices {
		if rec.LineName == "" {
			continue
		}
		if _, dup := seen[rec.LineName]; dup {
			continue
		}
		seen[rec.LineName] = struct{}{}
		lines = append(lines, rec.LineName)
	}
	return lines, nil
}

// Refresh forces a refetch, keeping the current snapshot if the fetch
// fails.
func (s *CatalogService) Refresh(ctx context.Context) (*domain.CatalogSnapshot, error) {
	log.Debug("Manual catalog refresh requested")
	return s.cache.Refresh(ctx)
}

// Images exposes the URL resolver for the loaded records.
func (s *CatalogService) Images() *images.Resolver {
	return s.images
}

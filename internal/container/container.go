package container

import (
	"context"
	"errors"
	"strings"

	"unifi/catalog/internal/cache"
	"unifi/catalog/internal/client"
	"unifi/catalog/internal/config"
	"unifi/catalog/internal/domain"
	"unifi/catalog/internal/images"
	"unifi/catalog/internal/service"
	"unifi/catalog/internal/validator"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config  *config.Config
	Client  client.CatalogClient
	Cache   *cache.SnapshotCache
	Images  *images.Resolver
	Service *service.CatalogService
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	catalogClient := client.NewCatalogClient(cfg.Catalog)

	fetch := func(ctx context.Context) (*domain.CatalogSnapshot, error) {
		body, err := catalogClient.FetchCatalog(ctx)
		if err != nil {
			return nil, err
		}

		result := validator.Validate(body)
		for _, msg := range result.Errors {
			log.Warnf("Catalog validation: %s", msg)
		}

		return &domain.CatalogSnapshot{
			Devices:             result.Devices,
			Version:             result.Version,
			HadValidationErrors: result.HadErrors,
			ValidationErrors:    result.Errors,
		}, nil
	}

	snapshots := cache.NewSnapshotCache(fetch, cfg.Cache.TTL(), clock.New())
	resolver := images.NewResolver(cfg.Images)
	catalogService := service.NewCatalogService(snapshots, resolver, cfg.Search.SuggestionLimit)

	return &Container{
		Config:  cfg,
		Client:  catalogClient,
		Cache:   snapshots,
		Images:  resolver,
		Service: catalogService,
	}, nil
}

// Run loads the catalog and reports what it found.
func (c *Container) Run(ctx context.Context) error {
	snap, err := c.Service.Snapshot(ctx)
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			log.Errorf("❌ Could not load catalog (%s): %v", fetchErr.Kind, err)
			if fetchErr.Retryable() {
				log.Info("The fetch can be retried")
			}
		}
		return err
	}

	log.Infof("✅ Loaded catalog version %q with %d devices", snap.Version, len(snap.Devices))
	if snap.HadValidationErrors {
		log.Warnf("⚠️ %d records required fallback validation", len(snap.ValidationErrors))
	}

	lines, err := c.Service.Lines(ctx)
	if err != nil {
		return err
	}
	log.Infof("Product lines: %s", strings.Join(lines, ", "))

	return nil
}

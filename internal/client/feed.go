package client

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"unifi/catalog/internal/config"
	"unifi/catalog/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// CatalogClient fetches the vendor's public device-metadata feed. The
// body is returned raw; decoding and validation belong to the caller.
type CatalogClient interface {
	FetchCatalog(ctx context.Context) ([]byte, error)
}

type catalogClient struct {
	rl         ratelimit.Limiter
	feedURL    string
	httpClient *resty.Client
}

func NewCatalogClient(cfg config.CatalogConfig) CatalogClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("User-Agent", "device-catalog/1.0").
		SetHeader("Accept", "application/json")

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 1
	}

	return &catalogClient{
		rl:         ratelimit.New(rps),
		feedURL:    cfg.FeedURL,
		httpClient: client,
	}
}

func (c *catalogClient) FetchCatalog(ctx context.Context) ([]byte, error) {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(c.feedURL)

	if err != nil {
		log.Warnf("Catalog fetch failed: %v", err)
		return nil, classifyTransportError(err)
	}

	if resp.IsError() {
		log.Warnf("Catalog fetch returned HTTP %d", resp.StatusCode())
		return nil, classifyStatus(resp.StatusCode())
	}

	body := resp.Bytes()
	log.Debugf("Fetched catalog feed: %d bytes", len(body))
	return body, nil
}

func classifyTransportError(err error) *domain.FetchError {
	kind := domain.FetchNetwork

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		kind = domain.FetchTimeout
	}

	return &domain.FetchError{Kind: kind, Err: err}
}

func classifyStatus(status int) *domain.FetchError {
	var kind domain.FetchErrorKind
	switch {
	case status == http.StatusNotFound:
		kind = domain.FetchNotFound
	case status == http.StatusRequestTimeout:
		kind = domain.FetchTimeout
	case status >= 500:
		kind = domain.FetchServer
	default:
		kind = domain.FetchGeneric
	}

	return &domain.FetchError{
		Kind:       kind,
		StatusCode: status,
		Err:        errors.New(http.StatusText(status)),
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"unifi/catalog/internal/cache"
	"unifi/catalog/internal/config"
	"unifi/catalog/internal/domain"
	"unifi/catalog/internal/images"
	"unifi/catalog/internal/urlstate"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggesterDeliversTrailingInputOnly(t *testing.T) {
	svc := testService(testRecords())
	mock := clock.NewMock()

	var delivered [][]domain.Suggestion
	sg := NewSuggester(svc, mock, 150*time.Millisecond, func(s []domain.Suggestion, err error) {
		assert.NoError(t, err)
		delivered = append(delivered, s)
	})
	defer sg.Close()

	sg.Input(context.Background(), "na")
	mock.Add(100 * time.Millisecond)
	sg.Input(context.Background(), "nano")

	mock.Add(149 * time.Millisecond)
	assert.Empty(t, delivered)

	mock.Add(1 * time.Millisecond)
	require.Len(t, delivered, 1)
	require.Len(t, delivered[0], 1)
	assert.Equal(t, "NanoBeam 5AC", delivered[0][0].Text)
}

func TestSuggesterCloseAbandonsPendingWork(t *testing.T) {
	svc := testService(testRecords())
	mock := clock.NewMock()

	delivered := 0
	sg := NewSuggester(svc, mock, 150*time.Millisecond, func([]domain.Suggestion, error) {
		delivered++
	})

	sg.Input(context.Background(), "nano")
	sg.Close()

	mock.Add(time.Second)
	assert.Zero(t, delivered)

	// Input after close stays a no-op.
	sg.Input(context.Background(), "dream")
	mock.Add(time.Second)
	assert.Zero(t, delivered)
}

func TestSuggesterAbandonsResultWhenClosedMidComputation(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	fetch := func(ctx context.Context) (*domain.CatalogSnapshot, error) {
		close(started)
		<-release
		return &domain.CatalogSnapshot{Devices: testRecords()}, nil
	}
	snapshots := cache.NewSnapshotCache(fetch, time.Hour, clock.NewMock())
	svc := NewCatalogService(snapshots, images.NewResolver(config.ImagesConfig{}), 8)

	mock := clock.NewMock()
	delivered := 0
	sg := NewSuggester(svc, mock, 150*time.Millisecond, func([]domain.Suggestion, error) {
		delivered++
	})

	sg.Input(context.Background(), "nano")

	// The debounced computation blocks inside the cache fill, so the
	// clock has to advance on its own goroutine.
	fired := make(chan struct{})
	go func() {
		defer close(fired)
		mock.Add(150 * time.Millisecond)
	}()
	<-started

	// Close lands while the suggestion computation is still blocked;
	// its result must be abandoned once the fill resolves.
	sg.Close()
	close(release)
	<-fired

	assert.Zero(t, delivered)
}

func TestFilterCommitterDebouncesQueryOnly(t *testing.T) {
	mock := clock.NewMock()

	var published []string
	sync := urlstate.NewSynchronizer("", func(encoded string) {
		published = append(published, encoded)
	})
	fc := NewFilterCommitter(sync, mock, 300*time.Millisecond)
	defer fc.Close()

	fc.SetQuery("d")
	fc.SetQuery("dr")
	fc.SetQuery("dream")
	assert.Empty(t, published)

	// Line clicks commit immediately.
	fc.ToggleLine("UniFi")
	require.Len(t, published, 1)

	mock.Add(300 * time.Millisecond)
	require.Len(t, published, 2)

	state := sync.State()
	assert.Equal(t, "dream", state.Query)
	assert.Equal(t, []string{"UniFi"}, state.Lines)
}

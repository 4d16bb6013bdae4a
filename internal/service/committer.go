package service

import (
	"time"

	"unifi/catalog/internal/debounce"
	"unifi/catalog/internal/urlstate"

	"github.com/benbjohnson/clock"
)

// FilterCommitter feeds toolbar input into the URL synchronizer. Query
// keystrokes are debounced on a coarser interval than suggestions so
// the full filtered collection is not recomputed per keystroke; line
// selection changes commit immediately since they come from discrete
// clicks.
type FilterCommitter struct {
	sync      *urlstate.Synchronizer
	debouncer *debounce.Debouncer
}

func NewFilterCommitter(sync *urlstate.Synchronizer, clk clock.Clock, quiet time.Duration) *FilterCommitter {
	return &FilterCommitter{
		sync:      sync,
		debouncer: debounce.New(clk, quiet),
	}
}

// SetQuery commits the query after the quiet period; only the trailing
// value lands in the URL.
func (fc *FilterCommitter) SetQuery(query string) {
	fc.debouncer.Trigger(func() {
		fc.sync.SetQuery(query)
	})
}

// SetLines commits a new line selection immediately.
func (fc *FilterCommitter) SetLines(lines []string) {
	fc.sync.SetLines(lines)
}

// ToggleLine flips one line immediately.
func (fc *FilterCommitter) ToggleLine(line string) {
	fc.sync.ToggleLine(line)
}

// Close cancels any pending query commit.
func (fc *FilterCommitter) Close() {
	fc.debouncer.Stop()
}

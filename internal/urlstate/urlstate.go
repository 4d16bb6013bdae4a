package urlstate

import (
	"net/url"
	"strings"
	"sync"

	"unifi/catalog/internal/domain"
)

// Recognized query parameters. Both are omitted entirely when empty so
// shared URLs stay minimal and stable.
const (
	paramQuery = "q"
	paramLines = "lines"
)

// Encode serializes a QueryState into a URL query string. The empty
// state encodes to "".
func Encode(state domain.QueryState) string {
	values := url.Values{}
	if q := strings.TrimSpace(state.Query); q != "" {
		values.Set(paramQuery, q)
	}
	if len(state.Lines) > 0 {
		values.Set(paramLines, strings.Join(state.Lines, ","))
	}
	return values.Encode()
}

// Decode reconstructs a QueryState from a raw query string. The query
// is trimmed; lines are split on comma with empty tokens dropped.
// Malformed parameters decode to their defaults rather than failing.
func Decode(raw string) domain.QueryState {
	values, _ := url.ParseQuery(raw)

	state := domain.QueryState{
		Query: strings.TrimSpace(values.Get(paramQuery)),
	}
	for _, token := range strings.Split(values.Get(paramLines), ",") {
		if token != "" {
			state.Lines = append(state.Lines, token)
		}
	}
	return state
}

// PublishFunc receives the full encoded query string on every update.
// It stands in for a history-replacing URL rewrite: one call per
// update, never a partial one.
type PublishFunc func(encoded string)

// Synchronizer owns the QueryState and is its only mutation entry
// point. Every update rewrites both parameters together so two toolbar
// controls can never race into an inconsistent URL.
type Synchronizer struct {
	mu      sync.Mutex
	state   domain.QueryState
	publish PublishFunc
}

// NewSynchronizer reconstructs the state from an initial query string
// (typically the current URL) and registers the publish callback.
func NewSynchronizer(initial string, publish PublishFunc) *Synchronizer {
	return &Synchronizer{
		state:   Decode(initial),
		publish: publish,
	}
}

// State returns a copy of the current QueryState.
func (s *Synchronizer) State() domain.QueryState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

// Update atomically replaces both the query and the selected lines and
// publishes the encoded result once.
func (s *Synchronizer) Update(query string, lines []string) {
	s.mu.Lock()
	s.state = domain.QueryState{
		Query: query,
		Lines: append([]string(nil), lines...),
	}
	encoded := Encode(s.state)
	publish := s.publish
	s.mu.Unlock()

	if publish != nil {
		publish(encoded)
	}
}

// SetQuery rewrites the query while keeping the current line selection.
func (s *Synchronizer) SetQuery(query string) {
	s.mu.Lock()
	lines := append([]string(nil), s.state.Lines...)
	s.mu.Unlock()
	s.Update(query, lines)
}

// SetLines rewrites the line selection while keeping the current query.
func (s *Synchronizer) SetLines(lines []string) {
	s.mu.Lock()
	query := s.state.Query
	s.mu.Unlock()
	s.Update(query, lines)
}

// ToggleLine adds or removes one line from the selection, preserving
// insertion order of the remaining lines.
func (s *Synchronizer) ToggleLine(line string) {
	s.mu.Lock()
	query := s.state.Query
	lines := make([]string, 0, len(s.state.Lines)+1)
	removed := false
	for _, l := range s.state.Lines {
		if l == line {
			removed = true
			continue
		}
		lines = append(lines, l)
	}
	if !removed {
		lines = append(lines, line)
	}
	s.mu.Unlock()
	s.Update(query, lines)
}

func copyState(state domain.QueryState) domain.QueryState {
	return domain.QueryState{
		Query: state.Query,
		Lines: append([]string(nil), state.Lines...),
	}
}

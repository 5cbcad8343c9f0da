package browse

import (
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"

	"gamedex/internal"
	"gamedex/internal/catalog"
	"gamedex/internal/filter"
)

// DefaultDebounce is the quiet period after the last keystroke before a
// query change takes effect.
const DefaultDebounce = 300 * time.Millisecond

// Session is the thin scheduling layer between a UI and the pure filter
// engine. It owns the live filter state, debounces free-text query edits,
// applies facet and page changes immediately, and keeps the state
// synchronized with a canonical URL query string without feedback loops.
// The engine itself stays pure; all timing lives here.
type Session struct {
	mu       sync.Mutex
	catalog  *catalog.Catalog
	search   *catalog.SearchIndex
	pageSize int
	debounce time.Duration

	state        filter.State
	pendingQuery string
	timer        *time.Timer
	lastEncoded  string

	onResult func(filter.Result)
	onURL    func(string)
}

// NewSession starts a browsing session from a raw URL query string ("" for
// defaults). onResult receives every evaluated page; onURL receives the
// canonical query string whenever it changes.
func NewSession(c *catalog.Catalog, search *catalog.SearchIndex, pageSize int, debounce time.Duration, onResult func(filter.Result), onURL func(string)) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	s := &Session{
		catalog:  c,
		search:   search,
		pageSize: pageSize,
		debounce: debounce,
		state:    filter.NewState(),
		onResult: onResult,
		onURL:    onURL,
	}
	return s
}

// Start applies the initial URL state and evaluates the first page.
func (s *Session) Start(rawQuery string) {
	s.mu.Lock()
	s.state = filter.Decode(rawQuery)
	s.lastEncoded = filter.Encode(s.state)
	s.mu.Unlock()
	s.apply()
}

// State returns a canonical snapshot of the current filter state.
func (s *Session) State() filter.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Canonicalize()
}

// SetQuery records a query edit. Evaluation only runs after the debounce
// period passes with no further edits; a newer edit supersedes and discards
// the pending one.
func (s *Session) SetQuery(query string) {
	s.mu.Lock()
	s.pendingQuery = query
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.commitQuery)
	s.mu.Unlock()
}

func (s *Session) commitQuery() {
	s.mu.Lock()
	s.state.Query = s.pendingQuery
	s.state.Page = 1
	s.mu.Unlock()
	s.apply()
}

// ToggleFacet flips one facet value in or out of the selection and
// re-evaluates immediately; facet clicks are discrete events, no debounce.
func (s *Session) ToggleFacet(key internal.FacetKey, value string) {
	if !internal.IsFacetKey(string(key)) {
		return
	}
	s.mu.Lock()
	selected := s.state.Facets[key]
	kept := selected[:0:0]
	found := false
	for _, v := range selected {
		if v == value {
			found = true
			continue
		}
		kept = append(kept, v)
	}
	if !found {
		kept = append(kept, value)
	}
	s.state.Facets[key] = kept
	s.state.Page = 1
	s.mu.Unlock()
	s.apply()
}

// SetPage jumps to a page immediately. Out-of-range values are clamped by
// the engine.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	s.state.Page = page
	s.mu.Unlock()
	s.apply()
}

// ApplyURL feeds a navigation event (back/forward, pasted link) into the
// session. The decoded state is deep-compared against the current one and
// dropped when equal, so the session's own URL writes can never re-trigger
// evaluation.
func (s *Session) ApplyURL(rawQuery string) {
	decoded := filter.Decode(rawQuery)
	s.mu.Lock()
	if cmp.Equal(decoded, s.state.Canonicalize()) {
		s.mu.Unlock()
		return
	}
	s.state = decoded
	s.mu.Unlock()
	s.apply()
}

func (s *Session) apply() {
	s.mu.Lock()
	state := s.state.Canonicalize()
	s.state = state
	result := filter.Evaluate(s.catalog, s.search, state, s.pageSize)
	// The engine may have clamped the page; keep state and URL in step
	// with what was actually shown.
	s.state.Page = result.Page
	encoded := filter.Encode(s.state)
	urlChanged := encoded != s.lastEncoded
	s.lastEncoded = encoded
	onResult, onURL := s.onResult, s.onURL
	s.mu.Unlock()

	if onResult != nil {
		onResult(result)
	}
	if urlChanged && onURL != nil {
		onURL(encoded)
	}
}

// Close cancels any pending debounced evaluation.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

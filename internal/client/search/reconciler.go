package search

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"

	"github.com/phonomarket/phono/internal/client/api"
)

// Searcher is the slice of the API client the reconciler needs.
type Searcher interface {
	Search(ctx context.Context, req api.SearchRequest) ([]api.Product, error)
}

// ErrSearchFailed is the user-visible error string recorded when a search
// request fails. The previous result set stays on screen.
const ErrSearchFailed = "Search failed. Please try again."

// Reconciler owns the current FilterState and drives searches against the
// server, mirroring each issued query into a URL via the URLFunc hook and
// skipping requests whose effective payload matches the previous one.
//
// A search already in flight blocks new ones; beyond that, response ordering
// is not guarded: if callers race Perform from several goroutines the last
// response to settle wins. That mirrors the upstream behavior and is
// deliberately left as is (see DESIGN.md).
type Reconciler struct {
	client Searcher

	// URLFunc, when set, receives the query values for the URL bar on every
	// issued search and an empty url.Values on Reset.
	URLFunc func(url.Values)

	mu        sync.Mutex
	filters   FilterState
	searching bool
	lastKey   string
	results   []api.Product
	errMsg    string
}

func NewReconciler(client Searcher) *Reconciler {
	return &Reconciler{client: client}
}

// Filters returns a copy of the current filter state.
func (r *Reconciler) Filters() FilterState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filters
}

// SetFilters replaces the filter state wholesale (e.g. when restoring from a
// URL).
func (r *Reconciler) SetFilters(f FilterState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters = f
}

// Update applies fn to the filter state under the lock.
func (r *Reconciler) Update(fn func(*FilterState)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.filters)
}

// Results returns the last successful result set.
func (r *Reconciler) Results() []api.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.results
}

// ErrMessage returns the visible error string from the last failed search,
// or "".
func (r *Reconciler) ErrMessage() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

// Reset clears the text, every facet, the dedupe key, and the URL.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	r.filters = FilterState{}
	r.lastKey = ""
	r.results = nil
	r.errMsg = ""
	r.mu.Unlock()

	if r.URLFunc != nil {
		r.URLFunc(url.Values{})
	}
}

// Perform issues a search for the current filter state. It reports whether a
// request was actually sent: an entirely empty state, a search already in
// flight, or a payload identical to the previous one all skip the network
// round trip. On failure the previous results are kept and ErrMessage is set.
func (r *Reconciler) Perform(ctx context.Context) (bool, error) {
	r.mu.Lock()
	if r.filters.IsEmpty() {
		r.mu.Unlock()
		return false, nil
	}
	if r.searching {
		r.mu.Unlock()
		return false, nil
	}

	payload := r.filters.Payload()
	key, err := json.Marshal(payload)
	if err != nil {
		r.mu.Unlock()
		return false, err
	}
	if string(key) == r.lastKey {
		r.mu.Unlock()
		return false, nil
	}
	r.lastKey = string(key)
	r.searching = true
	values := r.filters.QueryValues()
	r.mu.Unlock()

	if r.URLFunc != nil {
		r.URLFunc(values)
	}

	products, err := r.client.Search(ctx, payload)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.searching = false
	if err != nil {
		r.errMsg = ErrSearchFailed
		return true, err
	}
	r.errMsg = ""
	r.results = products
	return true, nil
}

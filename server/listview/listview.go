// Package listview implements the list state behind every management screen:
// an ordered list assembled from "load more" pages, de-duplicated by id, with
// an end-of-data flag, an optional search overlay that replaces the display
// until cleared, and client-side field filters.
//
// The view never re-sorts; order is whatever the backend returned.
package listview

// DefaultPageSize is the backend page size. Fetching fewer than this many new
// items is treated as the end of the data. The real backend contract is not
// published; this mirrors the observed behavior.
const DefaultPageSize = 10

type View[T any] struct {
	keyOf    func(T) int64
	pageSize int

	loaded  []T
	keys    map[int64]bool
	page    int
	hasMore bool

	term      string
	searching bool
	search    []T

	// gen invalidates in-flight fetches. A fetch started before a Reset or
	// Invalidate completes into the void instead of clobbering newer state.
	gen int64
}

func New[T any](keyOf func(T) int64) *View[T] {
	return NewWithPageSize(keyOf, DefaultPageSize)
}

func NewWithPageSize[T any](keyOf func(T) int64, pageSize int) *View[T] {
	v := &View[T]{
		keyOf:    keyOf,
		pageSize: pageSize,
	}
	v.Reset(nil)
	return v
}

// Reset replaces all state with the given initial page (page 1).
// Any in-flight fetch or active search is discarded. A short first page is
// end-of-data, same as a short later page.
func (v *View[T]) Reset(firstPage []T) {
	v.gen++
	v.loaded = nil
	v.keys = map[int64]bool{}
	v.page = 1
	v.term = ""
	v.searching = false
	v.search = nil
	for _, item := range firstPage {
		key := v.keyOf(item)
		if !v.keys[key] {
			v.keys[key] = true
			v.loaded = append(v.loaded, item)
		}
	}
	v.hasMore = len(v.loaded) >= v.pageSize
}

// Invalidate discards any in-flight fetch without touching loaded state.
func (v *View[T]) Invalidate() {
	v.gen++
}

// BeginFetch returns the generation to hand back to EndFetch, and the page
// number to request. Call with HasMore() true.
func (v *View[T]) BeginFetch() (gen int64, page int) {
	return v.gen, v.page + 1
}

// EndFetch merges a fetched page into the view. Items already present are
// dropped. Returns the number of items actually appended, and whether the
// fetch was stale (started before a Reset/Invalidate) and therefore ignored.
func (v *View[T]) EndFetch(gen int64, page int, items []T) (added int, stale bool) {
	if gen != v.gen {
		return 0, true
	}
	for _, item := range items {
		key := v.keyOf(item)
		if v.keys[key] {
			continue
		}
		v.keys[key] = true
		v.loaded = append(v.loaded, item)
		added++
	}
	if added > 0 {
		v.page = page
	}
	if added < v.pageSize {
		v.hasMore = false
	}
	return added, false
}

func (v *View[T]) HasMore() bool {
	return v.hasMore
}

func (v *View[T]) Page() int {
	return v.page
}

// SetSearch replaces the displayed list with backend search results.
// Loaded pages are kept underneath and come back when the term is cleared.
func (v *View[T]) SetSearch(term string, results []T) {
	v.term = term
	v.searching = true
	v.search = results
}

func (v *View[T]) ClearSearch() {
	v.term = ""
	v.searching = false
	v.search = nil
}

func (v *View[T]) Searching() bool {
	return v.searching
}

func (v *View[T]) SearchTerm() string {
	return v.term
}

// Items returns a copy of the displayed list: search results while a search
// is active, otherwise the loaded pages.
func (v *View[T]) Items() []T {
	src := v.loaded
	if v.searching {
		src = v.search
	}
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// LoadedItems returns a copy of the paginated pages, ignoring any search
// overlay.
func (v *View[T]) LoadedItems() []T {
	out := make([]T, len(v.loaded))
	copy(out, v.loaded)
	return out
}

// LoadedCount is the number of items fetched via pagination, ignoring any
// search overlay.
func (v *View[T]) LoadedCount() int {
	return len(v.loaded)
}

// Add appends a single item (eg a freshly created record) to the loaded
// list, unless its key is already present.
func (v *View[T]) Add(item T) bool {
	key := v.keyOf(item)
	if v.keys[key] {
		return false
	}
	v.keys[key] = true
	v.loaded = append(v.loaded, item)
	return true
}

// Update applies fn to the item with the given key, in both the loaded list
// and any active search results. Returns true if anything was patched.
func (v *View[T]) Update(key int64, fn func(*T)) bool {
	found := false
	for i := range v.loaded {
		if v.keyOf(v.loaded[i]) == key {
			fn(&v.loaded[i])
			found = true
		}
	}
	for i := range v.search {
		if v.keyOf(v.search[i]) == key {
			fn(&v.search[i])
			found = true
		}
	}
	return found
}

// Remove deletes the item with the given key from both lists.
func (v *View[T]) Remove(key int64) bool {
	found := false
	if v.keys[key] {
		delete(v.keys, key)
	}
	v.loaded, found = removeByKey(v.loaded, v.keyOf, key)
	if v.searching {
		var f2 bool
		v.search, f2 = removeByKey(v.search, v.keyOf, key)
		found = found || f2
	}
	return found
}

func removeByKey[T any](items []T, keyOf func(T) int64, key int64) ([]T, bool) {
	for i := range items {
		if keyOf(items[i]) == key {
			return append(items[:i:i], items[i+1:]...), true
		}
	}
	return items, false
}

// Filter returns the subset of items matching pred, preserving order.
// Filtering is display-only and never triggers a fetch.
func Filter[T any](items []T, pred func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

package listview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type row struct {
	ID     int64
	RoleID int
	Status int
}

func rowKey(r row) int64 {
	return r.ID
}

func makeRows(ids ...int64) []row {
	rows := make([]row, len(ids))
	for i, id := range ids {
		rows[i] = row{ID: id, RoleID: 1, Status: 1}
	}
	return rows
}

func ids(rows []row) []int64 {
	out := []int64{}
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestDuplicatePageIsIdempotent(t *testing.T) {
	v := New(rowKey)
	v.Reset(makeRows(1, 2, 3, 4, 5, 6, 7, 8, 9, 10))

	page2 := makeRows(11, 12, 13, 14, 15, 16, 17, 18, 19, 20)

	gen, page := v.BeginFetch()
	require.Equal(t, 2, page)
	added, stale := v.EndFetch(gen, page, page2)
	require.False(t, stale)
	require.Equal(t, 10, added)
	require.Equal(t, 2, v.Page())
	require.True(t, v.HasMore())

	// The same page arriving again must not duplicate entries.
	gen, page = v.BeginFetch()
	require.Equal(t, 3, page)
	added, stale = v.EndFetch(gen, page, page2)
	require.False(t, stale)
	require.Equal(t, 0, added)
	require.Equal(t, 20, v.LoadedCount())
	require.False(t, v.HasMore())
	require.Equal(t, 2, v.Page())
}

func TestShortPageEndsData(t *testing.T) {
	v := New(rowKey)
	v.Reset(makeRows(1, 2, 3, 4, 5, 6, 7, 8, 9, 10))

	gen, page := v.BeginFetch()
	added, stale := v.EndFetch(gen, page, makeRows(11, 12, 13))
	require.False(t, stale)
	require.Equal(t, 3, added)
	require.Equal(t, 2, v.Page())
	require.False(t, v.HasMore())
}

func TestShortFirstPageEndsData(t *testing.T) {
	v := New(rowKey)
	v.Reset(makeRows(1, 2, 3, 4, 5))
	require.False(t, v.HasMore())

	// A full first page leaves more to fetch; duplicates don't count
	// towards the threshold.
	v.Reset(makeRows(1, 2, 3, 4, 5, 6, 7, 8, 9, 10))
	require.True(t, v.HasMore())
	v.Reset(makeRows(1, 2, 3, 4, 5, 1, 2, 3, 4, 5))
	require.False(t, v.HasMore())
}

func TestStaleFetchIsDropped(t *testing.T) {
	v := New(rowKey)
	v.Reset(makeRows(1, 2, 3))

	gen, page := v.BeginFetch()
	v.Reset(makeRows(100))

	added, stale := v.EndFetch(gen, page, makeRows(4, 5, 6))
	require.True(t, stale)
	require.Equal(t, 0, added)
	require.Equal(t, []int64{100}, ids(v.Items()))
}

func TestSearchOverlayAndFilterCompose(t *testing.T) {
	v := New(rowKey)
	v.Reset([]row{
		{ID: 1, RoleID: 1},
		{ID: 2, RoleID: 1},
		{ID: 3, RoleID: 2},
	})

	endorsers := func(r row) bool { return r.RoleID == 2 }

	// Role filter over the loaded list.
	require.Equal(t, []int64{3}, ids(Filter(v.Items(), endorsers)))

	// Search replaces the display...
	v.SetSearch("ann", []row{{ID: 7, RoleID: 2}, {ID: 8, RoleID: 1}})
	require.Equal(t, []int64{7, 8}, ids(v.Items()))

	// ...and the same filter applies to the searched list.
	require.Equal(t, []int64{7}, ids(Filter(v.Items(), endorsers)))

	// Clearing the search restores the loaded pages untouched.
	v.ClearSearch()
	require.Equal(t, []int64{1, 2, 3}, ids(v.Items()))
}

func TestUpdatePatchesBothLists(t *testing.T) {
	v := New(rowKey)
	v.Reset([]row{{ID: 1, Status: 1}, {ID: 2, Status: 1}})
	v.SetSearch("x", []row{{ID: 2, Status: 1}})

	require.True(t, v.Update(2, func(r *row) { r.Status = 0 }))

	require.Equal(t, 0, v.Items()[0].Status)
	v.ClearSearch()
	require.Equal(t, 1, v.Items()[0].Status)
	require.Equal(t, 0, v.Items()[1].Status)
}

func TestRemoveAffectsOnlyThatKey(t *testing.T) {
	v := New(rowKey)
	v.Reset(makeRows(41, 42, 43))

	require.True(t, v.Remove(42))
	require.Equal(t, []int64{41, 43}, ids(v.Items()))
	require.False(t, v.Remove(42))

	// A removed id can be re-fetched later.
	gen, page := v.BeginFetch()
	added, stale := v.EndFetch(gen, page, makeRows(42))
	require.False(t, stale)
	require.Equal(t, 1, added)
}

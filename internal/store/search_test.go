package store

import (
	"context"
	"testing"

	"github.com/krishnakoushik192/travel-journal/internal/journal"
)

// seedSearchEntries loads a small fixed collection. CreatedAt values are
// distinct so listing order is deterministic.
func seedSearchEntries(t *testing.T, st *Store) {
	t.Helper()
	ctx := context.Background()

	entries := []*journal.Entry{
		{
			ID: "a1", Title: "Mountain Trek",
			Description:  "Three days above the treeline",
			LocationName: "Alps", DateTime: "2024-06-10",
			CreatedAt: 1001,
		},
		{
			ID: "b2", Title: "Beach Day",
			Description:  "Sand and shore",
			LocationName: "Goa", DateTime: "2024-07-01",
			CreatedAt: 1002,
		},
		{
			ID: "c3", Title: "Lake camp",
			Description:  "camping below the mountain pass",
			LocationName: "Dolomites", DateTime: "2024-08-15",
			CreatedAt: 1003,
		},
	}
	for _, e := range entries {
		if err := st.AddEntry(ctx, e); err != nil {
			t.Fatalf("AddEntry %s failed: %v", e.ID, err)
		}
	}
}

func resultIDs(entries []journal.Entry) []string {
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}

func assertIDs(t *testing.T, entries []journal.Entry, want ...string) {
	t.Helper()
	got := resultIDs(entries)
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, got)
		}
	}
}

func TestSearch_KeywordCaseInsensitive(t *testing.T) {
	st := newTestStore(t)
	seedSearchEntries(t, st)
	ctx := context.Background()

	for _, term := range []string{"mountain", "MOUNTAIN", "MoUnTaIn"} {
		entries, err := st.SearchByKeyword(ctx, term)
		if err != nil {
			t.Fatalf("SearchByKeyword(%q) failed: %v", term, err)
		}
		assertIDs(t, entries, "c3", "a1")
	}
}

func TestSearch_KeywordMatchesDescriptionAndLocation(t *testing.T) {
	st := newTestStore(t)
	seedSearchEntries(t, st)
	ctx := context.Background()

	entries, err := st.SearchByKeyword(ctx, "treeline")
	if err != nil {
		t.Fatalf("SearchByKeyword failed: %v", err)
	}
	assertIDs(t, entries, "a1")

	entries, err = st.SearchByKeyword(ctx, "goa")
	if err != nil {
		t.Fatalf("SearchByKeyword failed: %v", err)
	}
	assertIDs(t, entries, "b2")
}

func TestSearch_BlankKeywordIsIdentity(t *testing.T) {
	st := newTestStore(t)
	seedSearchEntries(t, st)
	ctx := context.Background()

	for _, term := range []string{"", "   "} {
		entries, err := st.SearchByKeyword(ctx, term)
		if err != nil {
			t.Fatalf("SearchByKeyword(%q) failed: %v", term, err)
		}
		assertIDs(t, entries, "c3", "b2", "a1")
	}
}

func TestSearch_EmptyFiltersIsIdentity(t *testing.T) {
	st := newTestStore(t)
	seedSearchEntries(t, st)

	entries, err := st.Search(context.Background(), Filters{})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertIDs(t, entries, "c3", "b2", "a1")
}

func TestSearch_TagFilter(t *testing.T) {
	st := newTestStore(t)
	seedSearchEntries(t, st)

	entries, err := st.Search(context.Background(), Filters{Tags: []string{"beach"}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertIDs(t, entries, "b2")
}

func TestSearch_TagFilterNoDuplicateRows(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	e := &journal.Entry{
		ID: "multi", Title: "Sunset over the mountain",
		CreatedAt: 2000,
	}
	if err := st.AddEntry(ctx, e); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	// Both tags match; the join must still yield the entry once.
	entries, err := st.Search(ctx, Filters{Tags: []string{"mountain", "sunset"}})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertIDs(t, entries, "multi")
}

func TestSearch_DateRange(t *testing.T) {
	st := newTestStore(t)
	seedSearchEntries(t, st)
	ctx := context.Background()

	entries, err := st.Search(ctx, Filters{StartDate: "2024-07-01", EndDate: "2024-08-31"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertIDs(t, entries, "c3", "b2")

	// Bounds are inclusive.
	entries, err = st.Search(ctx, Filters{StartDate: "2024-06-10", EndDate: "2024-06-10"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertIDs(t, entries, "a1")
}

func TestSearch_DateRangeExcludesUnparseableDates(t *testing.T) {
	st := newTestStore(t)
	seedSearchEntries(t, st)
	ctx := context.Background()

	e := &journal.Entry{
		ID: "nodate", Title: "Sometime somewhere",
		DateTime: "last summer, maybe", CreatedAt: 3000,
	}
	if err := st.AddEntry(ctx, e); err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	entries, err := st.Search(ctx, Filters{StartDate: "2000-01-01"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertIDs(t, entries, "c3", "b2", "a1")
}

func TestSearch_LocationSubstring(t *testing.T) {
	st := newTestStore(t)
	seedSearchEntries(t, st)

	entries, err := st.Search(context.Background(), Filters{Location: "alp"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertIDs(t, entries, "a1")
}

func TestSearch_ConjunctiveFilters(t *testing.T) {
	st := newTestStore(t)
	seedSearchEntries(t, st)
	ctx := context.Background()

	// Tag alone matches a1 and c3; the date window narrows it to a1.
	entries, err := st.Search(ctx, Filters{
		Tags:      []string{"mountain"},
		StartDate: "2024-06-01",
		EndDate:   "2024-06-30",
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertIDs(t, entries, "a1")

	// Adding a location no entry satisfies empties the result.
	entries, err = st.Search(ctx, Filters{
		Tags:      []string{"mountain"},
		StartDate: "2024-06-01",
		EndDate:   "2024-06-30",
		Location:  "Goa",
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	assertIDs(t, entries)
}

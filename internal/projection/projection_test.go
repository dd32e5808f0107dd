package projection

import (
	"testing"
	"time"

	"knowyourplant/internal/domain"
)

func entry(id int64, name, sci string, conf float64, date string, ct domain.CaptureType, toxic bool) domain.CatalogEntry {
	d, _ := time.Parse("2006-01-02", date)
	return domain.CatalogEntry{
		ID: id, Name: name, ScientificName: sci, Confidence: conf,
		Date: d, CaptureType: ct, IsToxic: toxic,
	}
}

func testCatalog() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		entry(1, "Monstera Deliciosa", "Monstera deliciosa", 0.94, "2026-02-18", domain.CaptureImage, true),
		entry(2, "Peace Lily", "Spathiphyllum wallisii", 0.88, "2026-02-17", domain.CaptureLive, true),
		entry(3, "Snake Plant", "Sansevieria trifasciata", 0.97, "2026-02-17", domain.CaptureImage, false),
		entry(4, "Aloe Vera", "Aloe barbadensis miller", 0.99, "2026-02-14", domain.CaptureImage, false),
		entry(5, "Pothos", "Epipremnum aureum", 0.91, "2026-02-15", domain.CaptureLive, true),
	}
}

func ids(entries []domain.CatalogEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestProject_TypeFilterPreservesOrder(t *testing.T) {
	got := Project(testCatalog(), Query{Type: TypeImage}, nil)
	if !equalIDs(ids(got), []int64{1, 3, 4}) {
		t.Errorf("expected image entries [1 3 4] in original order, got %v", ids(got))
	}
	for _, e := range got {
		if e.CaptureType != domain.CaptureImage {
			t.Errorf("entry %d has capture type %q", e.ID, e.CaptureType)
		}
	}
}

func TestProject_SearchMatchesEitherName(t *testing.T) {
	got := Project(testCatalog(), Query{Search: "aloe"}, nil)
	if !equalIDs(ids(got), []int64{4}) {
		t.Errorf("expected [4], got %v", ids(got))
	}

	// scientific name match, case-insensitive
	got = Project(testCatalog(), Query{Search: "SPATHIPHYLLUM"}, nil)
	if !equalIDs(ids(got), []int64{2}) {
		t.Errorf("expected [2], got %v", ids(got))
	}
}

func TestProject_NoMatchReturnsEmpty(t *testing.T) {
	got := Project(testCatalog(), Query{Search: "cactus"}, nil)
	if len(got) != 0 {
		t.Errorf("expected empty projection, got %v", ids(got))
	}
}

func TestProject_SortConfidenceDescending(t *testing.T) {
	got := Project(testCatalog(), Query{Sort: SortConfidence}, nil)
	for i := 1; i < len(got); i++ {
		if got[i].Confidence > got[i-1].Confidence {
			t.Fatalf("confidence not non-increasing at %d: %v", i, ids(got))
		}
	}
	if got[0].ID != 4 {
		t.Errorf("expected Aloe Vera (0.99) first, got %d", got[0].ID)
	}
}

func TestProject_SortNameAscending(t *testing.T) {
	got := Project(testCatalog(), Query{Sort: SortName}, nil)
	if !equalIDs(ids(got), []int64{4, 1, 2, 5, 3}) {
		t.Errorf("unexpected name order: %v", ids(got))
	}
}

func TestProject_SortDateTieBreaksByID(t *testing.T) {
	got := Project(testCatalog(), Query{Sort: SortDate}, nil)
	// 2 and 3 share 2026-02-17; lower id wins the tie.
	if !equalIDs(ids(got), []int64{1, 2, 3, 5, 4}) {
		t.Errorf("unexpected date order: %v", ids(got))
	}
}

func TestProject_FavoritesScope(t *testing.T) {
	favs := NewFavoriteSet(2, 4)
	got := Project(testCatalog(), Query{Scope: ScopeFavorites}, favs)
	if !equalIDs(ids(got), []int64{2, 4}) {
		t.Errorf("expected favorites [2 4], got %v", ids(got))
	}
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	catalog := testCatalog()
	before := ids(catalog)
	_ = Project(catalog, Query{Sort: SortName, Type: TypeLive, Search: "p"}, nil)
	if !equalIDs(ids(catalog), before) {
		t.Error("Project mutated the input catalog")
	}
}

func TestFavoriteSet_ToggleIsIdempotentPair(t *testing.T) {
	favs := NewFavoriteSet(1)

	favs.Toggle(7)
	if !favs.Has(7) {
		t.Error("expected 7 favorited after first toggle")
	}
	favs.Toggle(7)
	if favs.Has(7) {
		t.Error("expected 7 removed after second toggle")
	}
	if !favs.Has(1) {
		t.Error("toggle of 7 must not affect 1")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(testCatalog())
	if s.Total != 5 {
		t.Errorf("total = %d, want 5", s.Total)
	}
	if s.LiveScans != 2 {
		t.Errorf("live = %d, want 2", s.LiveScans)
	}
	if s.ToxicFound != 3 {
		t.Errorf("toxic = %d, want 3", s.ToxicFound)
	}
	want := (0.94 + 0.88 + 0.97 + 0.99 + 0.91) / 5
	if diff := s.AvgConfidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("avg = %v, want %v", s.AvgConfidence, want)
	}

	empty := Summarize(nil)
	if empty.Total != 0 || empty.AvgConfidence != 0 {
		t.Errorf("empty summary should be zero, got %+v", empty)
	}
}

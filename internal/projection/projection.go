// Package projection derives read-only dashboard views from the reference
// catalog. Every function here is a pure derivation: inputs are never
// mutated, callers always receive fresh slices.
package projection

import (
	"sort"
	"strings"

	"knowyourplant/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TypeFilter restricts a view to one capture type.
type TypeFilter string

// Type filters accepted by Project.
const (
	TypeAll   TypeFilter = "all"
	TypeImage TypeFilter = "image"
	TypeLive  TypeFilter = "live"
)

// SortKey selects the ordering of a projected view.
type SortKey string

// Sort keys accepted by Project.
const (
	SortDate       SortKey = "date"
	SortConfidence SortKey = "confidence"
	SortName       SortKey = "name"
)

// Scope selects the base list of a projection.
type Scope string

// Scopes accepted by Project.
const (
	ScopeAll       Scope = "all"
	ScopeFavorites Scope = "favorites"
)

// Query describes one dashboard view request.
type Query struct {
	Search string
	Type   TypeFilter
	Sort   SortKey
	Scope  Scope
}

// FavoriteSet tracks favorited catalog ids.
type FavoriteSet map[int64]struct{}

// NewFavoriteSet builds a FavoriteSet from ids.
func NewFavoriteSet(ids ...int64) FavoriteSet {
	s := make(FavoriteSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Toggle flips membership for id. Toggling twice restores the set.
func (s FavoriteSet) Toggle(id int64) {
	if _, ok := s[id]; ok {
		delete(s, id)
		return
	}
	s[id] = struct{}{}
}

// Has reports whether id is favorited.
func (s FavoriteSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the favorited ids in ascending order.
func (s FavoriteSet) IDs() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Project filters and sorts catalog according to q. The base list is either
// the full catalog or its favorites subset, then the type filter, then a
// case-insensitive substring match against common or scientific name, then
// the sort. Sorting is stable with ascending id as the tie break. The input
// slice is never modified.
func Project(catalog []domain.CatalogEntry, q Query, favs FavoriteSet) []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, 0, len(catalog))
	needle := strings.ToLower(q.Search)

	for _, e := range catalog {
		if q.Scope == ScopeFavorites && !favs.Has(e.ID) {
			continue
		}
		switch q.Type {
		case TypeImage:
			if e.CaptureType != domain.CaptureImage {
				continue
			}
		case TypeLive:
			if e.CaptureType != domain.CaptureLive {
				continue
			}
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(e.Name), needle) &&
			!strings.Contains(strings.ToLower(e.ScientificName), needle) {
			continue
		}
		out = append(out, e)
	}

	switch q.Sort {
	case SortConfidence:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Confidence != out[j].Confidence {
				return out[i].Confidence > out[j].Confidence
			}
			return out[i].ID < out[j].ID
		})
	case SortName:
		c := collate.New(language.English)
		sort.SliceStable(out, func(i, j int) bool {
			if cmp := c.CompareString(out[i].Name, out[j].Name); cmp != 0 {
				return cmp < 0
			}
			return out[i].ID < out[j].ID
		})
	case SortDate:
		sort.SliceStable(out, func(i, j int) bool {
			if !out[i].Date.Equal(out[j].Date) {
				return out[i].Date.After(out[j].Date)
			}
			return out[i].ID < out[j].ID
		})
	}

	return out
}

// Stats summarizes a projected list for the dashboard header cards.
type Stats struct {
	Total         int     `json:"total"`
	AvgConfidence float64 `json:"avg_confidence"`
	LiveScans     int     `json:"live_scans"`
	ToxicFound    int     `json:"toxic_found"`
}

// Summarize computes Stats over entries.
func Summarize(entries []domain.CatalogEntry) Stats {
	s := Stats{Total: len(entries)}
	if len(entries) == 0 {
		return s
	}
	var sum float64
	for _, e := range entries {
		sum += e.Confidence
		if e.CaptureType == domain.CaptureLive {
			s.LiveScans++
		}
		if e.IsToxic {
			s.ToxicFound++
		}
	}
	s.AvgConfidence = sum / float64(len(entries))
	return s
}

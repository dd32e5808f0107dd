package adapthttp

import (
	"net/http"
	"strconv"
	"strings"

	"knowyourplant/internal/domain"
	"knowyourplant/internal/projection"
)

func catalogQuery(r *http.Request) (projection.Query, projection.FavoriteSet) {
	params := r.URL.Query()

	q := projection.Query{
		Search: params.Get("search"),
		Type:   projection.TypeFilter(params.Get("type")),
		Sort:   projection.SortKey(params.Get("sort")),
		Scope:  projection.Scope(params.Get("scope")),
	}

	favs := projection.NewFavoriteSet()
	if raw := params.Get("favorites"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
				favs.Toggle(id)
			}
		}
	}
	return q, favs
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q, favs := catalogQuery(r)
	items := projection.Project(domain.ReferenceCatalog(), q, favs)
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleCatalogStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q, favs := catalogQuery(r)
	stats := projection.Summarize(projection.Project(domain.ReferenceCatalog(), q, favs))
	writeJSON(w, http.StatusOK, stats)
}

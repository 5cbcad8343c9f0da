package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"gamedex/internal"
	"gamedex/internal/catalog"
	"gamedex/internal/filter"
	"gamedex/internal/logger"
)

// Server exposes the read-only browsing API: evaluated catalogue pages, the
// facet index, and the latest ingest diagnostics. It holds the once-built
// catalogue triple and shares it across requests without locking; nothing
// here mutates it.
type Server struct {
	catalog  *catalog.Catalog
	facets   *catalog.FacetIndex
	search   *catalog.SearchIndex
	report   *internal.Report
	pageSize int
	log      *logger.Logger
}

func New(c *catalog.Catalog, facets *catalog.FacetIndex, search *catalog.SearchIndex, report *internal.Report, pageSize int, log *logger.Logger) *Server {
	return &Server{
		catalog:  c,
		facets:   facets,
		search:   search,
		report:   report,
		pageSize: pageSize,
		log:      log,
	}
}

func (s *Server) Router() http.Handler {
	router := httprouter.New()
	router.GET("/api/games", s.Games)
	router.GET("/api/facets", s.Facets)
	router.GET("/api/diagnostics", s.Diagnostics)
	return router
}

// GamesResponse is one evaluated page plus the canonical query string the
// client should place in the address bar for a shareable link.
type GamesResponse struct {
	Games          []*internal.Game `json:"games"`
	Page           int              `json:"page"`
	TotalPages     int              `json:"totalPages"`
	TotalCount     int              `json:"totalCount"`
	CanonicalQuery string           `json:"canonicalQuery"`
}

// Games decodes the request's raw query string as filter state and
// evaluates it. Unknown parameters and malformed fragments are ignored, so
// the endpoint never fails on bad input.
func (s *Server) Games(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	state := filter.Decode(r.URL.RawQuery)
	result := filter.Evaluate(s.catalog, s.search, state, s.pageSize)

	state.Page = result.Page
	resp := GamesResponse{
		Games:          result.Games,
		Page:           result.Page,
		TotalPages:     result.TotalPages,
		TotalCount:     result.TotalCount,
		CanonicalQuery: filter.Encode(state),
	}
	if err := WriteJSON(w, http.StatusOK, resp); err != nil {
		s.log.Error("write games response", "error", err)
	}
}

func (s *Server) Facets(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := WriteJSON(w, http.StatusOK, s.facets.All()); err != nil {
		s.log.Error("write facets response", "error", err)
	}
}

func (s *Server) Diagnostics(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := WriteJSON(w, http.StatusOK, s.report); err != nil {
		s.log.Error("write diagnostics response", "error", err)
	}
}

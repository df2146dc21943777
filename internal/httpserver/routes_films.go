// internal/httpserver/routes_films.go
//
// HTTP routes for film helpers, mounted under /films:
//   - GET /films/suggest?q=   → up to 3 film names starting with q
//   - GET /films/stats        → loaded name count and pool state
//
// Names come from the name index loaded once at startup; a failed load just
// means no suggestions.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/kinoguessr/internal/session"
)

// mountFilms registers all /films routes.
func (s *Server) mountFilms(r chi.Router) {
	r.Route("/films", func(r chi.Router) {
		r.Get("/suggest", s.handleSuggest)
		r.Get("/stats", s.handleStats)
	})
}

type suggestRes struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// handleSuggest returns guess-box suggestions for q.
func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, suggestRes{Query: q, Suggestions: s.ctrl.Suggest(q)})
}

type statsRes struct {
	Variant       string `json:"variant"`
	Names         int    `json:"names"`
	PoolLoaded    bool   `json:"poolLoaded,omitempty"`
	PoolRemaining *int   `json:"poolRemaining,omitempty"`
}

// handleStats reports what the controller has loaded.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	st := s.ctrl.Stats()
	res := statsRes{Variant: string(st.Variant), Names: st.Names}
	if st.Variant == session.VariantPool {
		n := st.PoolRemaining
		res.PoolLoaded = st.PoolLoaded
		res.PoolRemaining = &n
	}
	writeJSON(w, http.StatusOK, res)
}

// internal/httpserver/server.go
//
// HTTP server wiring for the KinoGuessr backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints for the single session: GET /game, POST /game/start,
//     POST /game/guess, POST /game/reset.
//   - Film helper endpoints: mounted under /films.
//
// Notes:
//   - CORS is origin-aware for the frontend configured in CLIENT_ORIGIN.
//   - Guesses and resets outside the accepting state are not errors; the
//     response simply carries the unchanged game view.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/kinoguessr/internal/game"
	"github.com/robalobadob/kinoguessr/internal/session"
)

// Server bundles router and the session controller.
type Server struct {
	r      *chi.Mux
	ctrl   *session.Controller
	origin string
}

// New constructs a Server, installs middleware, and registers routes.
// clientOrigin is the single origin allowed by CORS.
func New(ctrl *session.Controller, clientOrigin string) *Server {
	s := &Server{r: chi.NewRouter(), ctrl: ctrl, origin: clientOrigin}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(15 * time.Second)) // bound handler time, incl. catalog fetches
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // CORS for the frontend

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"kinoguessr-go","endpoints":["/health","GET /game","POST /game/start","POST /game/guess","POST /game/reset","/films/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game endpoints
	s.r.Route("/game", func(r chi.Router) {
		r.Get("/", s.handleState)
		r.Post("/start", s.handleStart)
		r.Post("/guess", s.handleGuess)
		r.Post("/reset", s.handleReset)
	})

	// Suggestions + catalog stats
	s.mountFilms(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors allows the configured frontend origin.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------ GAME ---------------------------------------

// gameRes is the JSON view of session.Snapshot.
type gameRes struct {
	RoundID       string   `json:"roundId,omitempty"`
	Variant       string   `json:"variant"`
	State         string   `json:"state"` // "idle" | "in_progress" | "won" | "lost"
	Attempts      int      `json:"attempts"`
	AttemptsLeft  int      `json:"attemptsLeft"`
	Transcript    []string `json:"transcript"`
	Actors        []string `json:"actors"` // "" = face down
	Poster        string   `json:"poster,omitempty"`
	Title         string   `json:"title,omitempty"`
	Starting      bool     `json:"starting"`
	PoolRemaining *int     `json:"poolRemaining,omitempty"`
	Exhausted     bool     `json:"exhausted"`
	CanStartNew   bool     `json:"canStartNew"`
	CanReset      bool     `json:"canReset"`
}

func toGameRes(snap session.Snapshot) gameRes {
	res := gameRes{
		RoundID:      snap.RoundID,
		Variant:      string(snap.Variant),
		State:        snap.State.String(),
		Attempts:     snap.Attempts,
		AttemptsLeft: snap.AttemptsLeft,
		Transcript:   snap.Transcript,
		Actors:       snap.Actors,
		Poster:       snap.Poster,
		Title:        snap.Title,
		Starting:     snap.Starting,
		Exhausted:    snap.Exhausted,
		CanStartNew:  snap.CanStartNew,
		CanReset:     snap.CanReset,
	}
	if snap.Variant == session.VariantPool {
		n := snap.PoolRemaining
		res.PoolRemaining = &n
	}
	return res
}

// handleState returns the current game view.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toGameRes(s.ctrl.Snapshot()))
}

// handleStart draws a film and starts a round.
//
//   - 409 pool_exhausted: no new game available (permanent).
//   - 409 start_in_flight: another start is still fetching.
//   - 502 fetch_failed: the film catalog call failed; game stays idle.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	snap, err := s.ctrl.Start(r.Context())
	if err != nil {
		var fe *session.FetchError
		switch {
		case errors.Is(err, session.ErrPoolExhausted):
			writeErrorWithGame(w, http.StatusConflict, "pool_exhausted", snap)
		case errors.Is(err, session.ErrStartInFlight):
			writeErrorWithGame(w, http.StatusConflict, "start_in_flight", snap)
		case errors.As(err, &fe):
			log.Warn().Err(err).Str("op", fe.Op).Msg("start game")
			writeErrorWithGame(w, http.StatusBadGateway, "fetch_failed", snap)
		default:
			log.Error().Err(err).Msg("start game")
			writeErrorWithGame(w, http.StatusInternalServerError, "start_failed", snap)
		}
		return
	}
	writeJSON(w, http.StatusOK, toGameRes(snap))
}

// guessReq is the payload for POST /game/guess.
type guessReq struct {
	Guess string `json:"guess"`
}

// maxGuessBody bounds the POST /game/guess payload.
const maxGuessBody = 1 << 10

// handleGuess submits a guess. Empty guesses are passes, not errors.
//
//   - 400 bad_json: malformed or oversized body.
//   - 400 guess_too_long: more than game.MaxGuessLength characters.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxGuessBody)
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if utf8.RuneCountInString(req.Guess) > game.MaxGuessLength {
		writeErrorWithGame(w, http.StatusBadRequest, "guess_too_long", s.ctrl.Snapshot())
		return
	}
	writeJSON(w, http.StatusOK, toGameRes(s.ctrl.Guess(req.Guess)))
}

// handleReset returns a finished round to idle.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toGameRes(s.ctrl.Reset()))
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeErrorWithGame(w http.ResponseWriter, status int, code string, snap session.Snapshot) {
	writeJSON(w, status, map[string]any{"error": code, "game": toGameRes(snap)})
}

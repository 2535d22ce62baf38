// Package server exposes the hint engine over HTTP.
//
// Routes:
//   - GET  /health         word count of the loaded bank
//   - GET  /words/{word}   dictionary lookup and letter frequency score
//   - POST /suggest        replay attempts and return the next guess
//
// The Bank is shared read-only. Every /suggest request replays its attempts into
// a new engine, so handlers hold no state between requests.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/powellquiring/wordlehint/session"
	"github.com/powellquiring/wordlehint/solver"
	"github.com/powellquiring/wordlehint/wordbank"
	"github.com/powellquiring/wordlehint/wordle"
)

// DefaultLimit caps the candidates returned by /suggest when the request does not
const DefaultLimit = 50

// Config for the engines built per request
type Config struct {
	// Seed for BestGuess sampling, 0 seeds from the clock on every request
	Seed       int64
	Openers    []string
	SampleSize int
}

type Server struct {
	r    *chi.Mux
	bank *wordbank.Bank
	cfg  Config
}

func New(bank *wordbank.Bank, cfg Config) *Server {
	s := &Server{r: chi.NewRouter(), bank: bank, cfg: cfg}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(accessLog)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	s.r.Get("/health", s.handleHealth)
	s.r.Get("/words/{word}", s.handleWord)
	s.r.Post("/suggest", s.handleSuggest)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s
}

// Start serves HTTP on addr until the server fails
func (s *Server) Start(addr string) error {
	log.Info().Str("addr", addr).Int("words", s.bank.Len()).Msg("listening")
	return http.ListenAndServe(addr, s.r)
}

// Handler is the router, used by tests and by callers that run their own http.Server
func (s *Server) Handler() http.Handler { return s.r }

// engine builds a fresh engine from the configuration
func (s *Server) engine() *solver.Engine {
	opts := []solver.Option{solver.WithSampleSize(s.cfg.SampleSize)}
	if s.cfg.Seed != 0 {
		opts = append(opts, solver.WithSeed(s.cfg.Seed))
	}
	if len(s.cfg.Openers) > 0 {
		opts = append(opts, solver.WithOpeners(s.cfg.Openers))
	}
	return solver.New(s.bank, opts...)
}

// ----------------------------- middleware ----------------------------------

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------ handlers -----------------------------------

type errorRes struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorRes{Error: msg})
}

type healthRes struct {
	OK    bool `json:"ok"`
	Words int  `json:"words"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = json.NewEncoder(w).Encode(healthRes{OK: true, Words: s.bank.Len()})
}

type wordRes struct {
	Word  string  `json:"word"`
	Valid bool    `json:"valid"`
	Score float64 `json:"score"`
}

func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	word, err := wordle.Normalize(chi.URLParam(r, "word"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	_ = json.NewEncoder(w).Encode(wordRes{Word: word, Valid: s.bank.IsValid(word), Score: s.bank.Score(word)})
}

type suggestReq struct {
	Attempts []session.Attempt `json:"attempts"`
	// Limit on returned candidates, 0 is DefaultLimit and negative is all of them
	Limit int `json:"limit"`
}

type suggestRes struct {
	Suggestion string   `json:"suggestion"`
	Count      int      `json:"count"`
	Eliminated int      `json:"eliminated"`
	Candidates []string `json:"candidates"`
	State      string   `json:"state"`
	Solved     bool     `json:"solved"`
}

func (s *Server) handleSuggest(w http.ResponseWriter, r *http.Request) {
	var req suggestReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	sess := session.New(s.engine())
	ret, err := sess.Replay(req.Attempts)
	if err != nil {
		if isValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("suggest")
		writeError(w, http.StatusInternalServerError, "internal")
		return
	}

	candidates := sess.Engine().Possible()
	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	state := ret.State.String()
	if ret.Solved {
		state = "solved"
	}
	_ = json.NewEncoder(w).Encode(suggestRes{
		Suggestion: ret.Suggestion,
		Count:      ret.Count,
		Eliminated: ret.Eliminated,
		Candidates: candidates,
		State:      state,
		Solved:     ret.Solved,
	})
}

func isValidation(err error) bool {
	for _, target := range []error{wordle.ErrWordLength, wordle.ErrWordChar, wordle.ErrStatusSymbol, wordle.ErrUnknownWord, wordle.ErrFeedback} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

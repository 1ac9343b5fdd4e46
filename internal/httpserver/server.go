// internal/httpserver/server.go
//
// HTTP server wiring for the learning games backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/activities".
//   - Play sessions (optional auth): mounted under /sessions.
//   - Daily word hunt (optional auth): mounted under /daily.
//   - Auth + player progress endpoints: /auth/*, /players/me/*.
//   - Background loop: fan session events out to SSE clients and evict
//     idle sessions.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Optional auth decorates requests with the player when a valid token is
//     present; guests can still play.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/Abdel00zz/Reflexe4Arabic/internal/config"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/content"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/exercise"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/game"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/results"
	"github.com/Abdel00zz/Reflexe4Arabic/internal/store"
)

const (
	requestTimeout = 10 * time.Second
	eventBuffer    = 256
	sweepInterval  = time.Minute
)

// Server bundles the router, live sessions and the database handle.
type Server struct {
	r        *chi.Mux
	cfg      *config.Config
	sessions store.Store
	db       *sql.DB
	results  *results.Store
	content  *content.Content
	factory  game.Factory
	events   chan game.Event
	sse      *Broadcaster
	authRL   *rateLimiter
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg *config.Config, st store.Store, db *sql.DB, c *content.Content) *Server {
	var sp exercise.Speaker = exercise.NoSpeech{}
	if cfg.Speech {
		sp = exercise.ClientSpeech{}
	}
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      cfg,
		sessions: st,
		db:       db,
		results:  results.NewStore(db),
		content:  c,
		factory:  exercise.NewFactory(c, sp),
		events:   make(chan game.Event, eventBuffer),
		sse:      NewBroadcaster(),
		authRL:   newRateLimiter(max(1, cfg.Rate.AuthPerMinute), time.Minute),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"reflexe4arabic","endpoints":["/health","/activities","/sessions","/daily/*","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/activities", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(game.Catalog)
	})

	s.r.Group(func(r chi.Router) {
		r.Use(s.withOptionalAuth())
		s.mountSessions(r)
		s.mountDaily(r.With(chimw.Timeout(requestTimeout)))
	})
	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))
		s.mountAuthRoutes(r)
		s.mountPlayerRoutes(r)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// ServeHTTP lets the server be used directly as an http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.r.ServeHTTP(w, r) }

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	go s.Run(ctx)

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := hs.Shutdown(shutdown); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run pumps session events to SSE clients and sweeps idle sessions until ctx
// is cancelled.
func (s *Server) Run(ctx context.Context) {
	tick := time.NewTicker(sweepInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.events:
			s.publish(ev)
		case now := <-tick.C:
			s.sweep(ctx, now)
		}
	}
}

func (s *Server) publish(ev game.Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Str("session", ev.SessionID).Msg("encode event")
		return
	}
	s.sse.Broadcast(ev.SessionID, string(b))
}

// sweep evicts sessions idle longer than the configured TTL and persists
// whatever run they were in.
func (s *Server) sweep(ctx context.Context, now time.Time) {
	idle := time.Duration(max(1, s.cfg.Game.SessionIdleMin)) * time.Minute
	for _, sess := range s.sessions.Sweep(ctx, now.Add(-idle)) {
		s.persistRun(ctx, sess.Menu())
		log.Debug().Str("session", sess.ID).Msg("evicted idle session")
	}
}

// persistRun stores a finished run; failures are logged, never surfaced.
func (s *Server) persistRun(ctx context.Context, run *game.Run) {
	if run == nil {
		return
	}
	if err := s.results.Insert(ctx, *run); err != nil {
		log.Warn().Err(err).
			Str("session", run.SessionID).
			Str("activity", string(run.Activity)).
			Str("player", run.PlayerID).
			Msg("persist run")
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeErr writes a JSON error body.
func writeErr(w http.ResponseWriter, code int, msg string) {
	b, _ := json.Marshal(map[string]string{"error": msg})
	http.Error(w, string(b), code)
}

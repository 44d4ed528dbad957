// ABOUTME: Control server exposing health, card status, and the presence-detection integration points.
// ABOUTME: POST /api/user is the externally callable user-name mutator; motion events drive the screen.
package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oklog/ulid/v2"

	"github.com/glimt-dev/glimt/card"
)

// MotionSink receives presence motion events. The presence controller
// implements it; nil disables the motion endpoint.
type MotionSink interface {
	Motion()
}

// ServerConfig holds the control server's configuration.
type ServerConfig struct {
	Addr string // listen address (default: "127.0.0.1:8390")
}

// Server is the mirror's HTTP control surface. A presence-detection service
// calls it from outside the process; nothing on the mirror depends on it.
type Server struct {
	app    *card.App
	notify func(name string) // pushes name changes into the TUI loop; may be nil
	motion MotionSink
	session string
	started time.Time
	addr    string
	router  chi.Router
	httpSrv *http.Server
}

// NewServer creates a control server around the given App. notify is invoked
// after each accepted user-name mutation; motion may be nil when presence
// control is disabled.
func NewServer(cfg ServerConfig, app *card.App, notify func(name string), motion MotionSink) *Server {
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8390"
	}

	s := &Server{
		app:     app,
		notify:  notify,
		motion:  motion,
		session: ulid.Make().String(),
		started: time.Now(),
		addr:    cfg.Addr,
	}
	s.router = s.buildRouter()
	s.httpSrv = &http.Server{Addr: cfg.Addr, Handler: s.router}
	return s
}

// Session returns the server's session identifier, also reported in /api/status.
func (s *Server) Session() string { return s.session }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the server and blocks until shutdown.
func (s *Server) ListenAndServe() error {
	log.Printf("component=web action=listening addr=%s session=%s", s.addr, s.session)
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

// buildRouter constructs the chi router with all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/status", s.handleStatus)
	r.Post("/api/user", s.handleSetUser)
	r.Post("/api/presence/motion", s.handleMotion)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// cardStatus is the wire shape of one card in the status payload.
type cardStatus struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Enabled    bool   `json:"enabled"`
	Interval   string `json:"interval"`
	LastUpdate string `json:"last_update,omitempty"`
	LastError  string `json:"last_error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	statuses := s.app.Statuses()
	out := struct {
		Session string       `json:"session"`
		Uptime  string       `json:"uptime"`
		User    string       `json:"user"`
		Cards   []cardStatus `json:"cards"`
	}{
		Session: s.session,
		Uptime:  time.Since(s.started).Truncate(time.Second).String(),
		User:    s.app.UserName(),
		Cards:   make([]cardStatus, 0, len(statuses)),
	}

	for _, st := range statuses {
		cs := cardStatus{
			Name:      st.Name,
			Position:  st.Position.String(),
			Enabled:   st.Enabled,
			Interval:  st.Interval.String(),
			LastError: st.LastError,
		}
		if !st.LastUpdate.IsZero() {
			cs.LastUpdate = st.LastUpdate.Format(time.RFC3339)
		}
		out.Cards = append(out.Cards, cs)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Printf("component=web action=status_encode_failed err=%v", err)
	}
}

// handleSetUser is the presence-detection integration point: a face or PIR
// service reports the recognized user, and the greeter picks it up.
func (s *Server) handleSetUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "name must not be empty", http.StatusBadRequest)
		return
	}

	s.app.SetUserName(req.Name)
	log.Printf("component=web action=user_name_set name=%s", req.Name)
	if s.notify != nil {
		s.notify(req.Name)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMotion(w http.ResponseWriter, r *http.Request) {
	if s.motion == nil {
		http.Error(w, "presence control disabled", http.StatusNotFound)
		return
	}
	s.motion.Motion()
	w.WriteHeader(http.StatusAccepted)
}

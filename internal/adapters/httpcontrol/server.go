package httpcontrol

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jose-valero/lcu-queue-bot/internal/app/service"
)

const TokenHeader = "X-Queuebot-Token"

// Control lo implementa service.Shell.
type Control interface {
	Status() service.Status
	Pause()
	Resume()
	TogglePause() bool
}

// StatusResponse es lo que devuelven /status y las acciones.
type StatusResponse struct {
	Paused    bool   `json:"paused"`
	Connected bool   `json:"connected"`
	Version   string `json:"version"`
}

// Server expone pausa/resume/stop por HTTP en loopback (reemplaza el tray).
type Server struct {
	token   string
	ctl     Control
	onStop  func()
	version string
	log     *slog.Logger
	mux     *http.ServeMux
}

func New(token string, ctl Control, onStop func(), version string, log *slog.Logger) *Server {
	s := &Server{token: token, ctl: ctl, onStop: onStop, version: version, log: log, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/status", s.auth(http.MethodGet, s.handleStatus))
	s.mux.HandleFunc("/pause", s.auth(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		s.ctl.Pause()
		s.log.Info("⏸️ monitoring paused")
		s.handleStatus(w, r)
	}))
	s.mux.HandleFunc("/resume", s.auth(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		s.ctl.Resume()
		s.log.Info("▶️ monitoring resumed")
		s.handleStatus(w, r)
	}))
	s.mux.HandleFunc("/toggle", s.auth(http.MethodPost, func(w http.ResponseWriter, r *http.Request) {
		if s.ctl.TogglePause() {
			s.log.Info("⏸️ monitoring paused")
		} else {
			s.log.Info("▶️ monitoring resumed")
		}
		s.handleStatus(w, r)
	}))
	s.mux.HandleFunc("/stop", s.auth(http.MethodPost, s.handleStop))
}

func (s *Server) auth(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.token != "" && subtle.ConstantTimeCompare([]byte(r.Header.Get(TokenHeader)), []byte(s.token)) != 1 {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	st := s.ctl.Status()
	writeJSON(w, http.StatusOK, StatusResponse{Paused: st.Paused, Connected: st.Connected, Version: s.version})
}

func (s *Server) handleStop(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusAccepted)
	if s.onStop != nil {
		// después de responder: onStop apaga también este server
		go s.onStop()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve escucha en addr hasta que ctx se cancela.
func (s *Server) Serve(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.mux, ReadHeaderTimeout: 5 * time.Second}
	stop := context.AfterFunc(ctx, func() {
		shCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
	})
	defer stop()

	s.log.Info("🌐 control API listening", "addr", ln.Addr().String())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

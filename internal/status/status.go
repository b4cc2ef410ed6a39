// Package status implements a read-only debug HTTP+WebSocket server:
// a JSON population/engine snapshot at GET /status and a live sentence
// tail at GET /ws. Repurposed from the teacher's web/server/main.go
// single-vessel start/stop/config dashboard into a read-only view over
// a population simulation -- the engine's lifecycle here is driven by
// the CLI/config file, not remote start/stop/config-mutation
// endpoints, so those handlers are not carried forward.
package status

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/nmeasim/nmeasim/internal/engine"
	"github.com/nmeasim/nmeasim/internal/logging"
	"github.com/nmeasim/nmeasim/internal/sink"
)

// Snapshot is the JSON body served by GET /status.
type Snapshot struct {
	State        string `json:"state"`
	Emitted      uint64 `json:"emitted"`
	EncodeErrors uint64 `json:"encode_errors"`
	VesselCount  int    `json:"vessel_count"`
	UptimeSec    float64 `json:"uptime_seconds"`
}

// Server serves the read-only status/tail endpoints for a running
// Engine. It also implements sink.Sink, so it can be registered
// directly as one of the engine's output sinks and receive every
// produced sentence for its live WebSocket tail.
type Server struct {
	eng         *engine.Engine
	log         *logging.Logger
	startedAt   time.Time
	vesselCount int

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	httpSrv *http.Server

	sent    atomic.Uint64
	dropped atomic.Uint64
}

// New builds a Server for eng, listening once Serve is called. Send
// distributes every sentence it is passed to all connected WebSocket
// clients.
func New(eng *engine.Engine, vesselCount int, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Default()
	}
	return &Server{
		eng:         eng,
		log:         log,
		startedAt:   time.Now(),
		vesselCount: vesselCount,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]bool),
	}
}

func (s *Server) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/ws", s.handleWebSocket).Methods(http.MethodGet)
	return r
}

// Serve binds addr and blocks serving requests until Shutdown is
// called; callers run it in its own goroutine.
func (s *Server) Serve(addr string) error {
	s.httpSrv = &http.Server{Addr: addr, Handler: s.router()}
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting new connections and closes existing
// WebSocket clients.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	for c := range s.clients {
		c.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.mu.Unlock()

	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Close()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.eng.Stats()
	snap := Snapshot{
		State:        s.eng.State().String(),
		Emitted:      stats.Emitted,
		EncodeErrors: stats.EncodeErrors,
		VesselCount:  s.vesselCount,
		UptimeSec:    time.Since(s.startedAt).Seconds(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "error", err.Error())
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	// The tail is push-only; block on reads so the handler exits (and
	// the client is unregistered) once the peer disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Name identifies this sink for logging and stats, satisfying
// sink.Sink.
func (s *Server) Name() string { return "status-ws" }

// Send pushes sentence to every connected WebSocket client, dropping
// clients whose write fails. There is no queue here (unlike the
// other sinks) since the number of debug clients is small and a
// stalled browser tab is simply disconnected rather than backing up a
// bounded queue.
func (s *Server) Send(sentence string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.clients) == 0 {
		return
	}
	for c := range s.clients {
		if err := c.WriteMessage(websocket.TextMessage, []byte(sentence)); err != nil {
			c.Close()
			delete(s.clients, c)
			s.dropped.Add(1)
			continue
		}
		s.sent.Add(1)
	}
}

// Stats satisfies sink.Sink.
func (s *Server) Stats() sink.Stats {
	return sink.Stats{Sent: s.sent.Load(), Dropped: s.dropped.Load()}
}

// Close satisfies sink.Sink by delegating to Shutdown.
func (s *Server) Close() error { return s.Shutdown() }

// Package transport accepts the standard channel upgrade at /wss,
// constructs a session for every accepted connection, and maintains
// the session registry a broadcast call fans out to.
//
// Grounded on the original's WebSocketManager: sessions.Mutex<Vec<Addr<..>>>
// becomes a mutex-guarded map of *session.Session keyed by session id
// here, and
// broadcast_message's best-effort fan-out becomes a per-session
// goroutine with logged, non-fatal failures.
package transport

import (
	"context"
	"net/http"
	"sync"

	"github.com/golang/glog"
	"github.com/gorilla/websocket"

	"github.com/sbl8/forcegraph/config"
	"github.com/sbl8/forcegraph/errs"
	"github.com/sbl8/forcegraph/metrics"
	"github.com/sbl8/forcegraph/registry"
	"github.com/sbl8/forcegraph/session"
)

// MaxUpgradePayload is the maximum inbound message size accepted on
// an upgraded connection (spec §6).
const MaxUpgradePayload = 32 * 1024 * 1024

// Supervisor accepts channel upgrade requests at /wss, registers every
// resulting session, and exposes Broadcast to fan a text payload out
// to all of them.
type Supervisor struct {
	reg      *registry.Registry
	settings config.Settings
	metrics  *metrics.Collector
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*session.Session
}

// NewSupervisor builds a Supervisor.
func NewSupervisor(reg *registry.Registry, settings config.Settings, m *metrics.Collector) *Supervisor {
	return &Supervisor{
		reg:      reg,
		settings: settings,
		metrics:  m,
		sessions: make(map[string]*session.Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request to a channel connection and drives
// the resulting session until it closes. Intended to be mounted at
// /wss.
func (sup *Supervisor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := sup.upgrader.Upgrade(w, r, nil)
	if err != nil {
		glog.Warningf("transport: upgrade failed: %v", errs.NewTransportError(err, "channel upgrade"))
		return
	}
	conn.SetReadLimit(MaxUpgradePayload)

	s := session.New(conn, sup.reg, sup.settings, sup.metrics)
	sup.register(s)
	defer sup.unregister(s)

	s.Run(r.Context())
}

func (sup *Supervisor) register(s *session.Session) {
	sup.mu.Lock()
	defer sup.mu.Unlock()
	sup.sessions[s.ID.String()] = s
}

func (sup *Supervisor) unregister(s *session.Session) {
	sup.mu.Lock()
	defer sup.mu.Unlock()
	delete(sup.sessions, s.ID.String())
}

// Count reports the number of currently registered sessions.
func (sup *Supervisor) Count() int {
	sup.mu.Lock()
	defer sup.mu.Unlock()
	return len(sup.sessions)
}

// Broadcast forwards a text payload to every registered session.
// Delivery is best-effort: a failure on one session is logged and
// does not affect delivery to any other.
func (sup *Supervisor) Broadcast(_ context.Context, payload string) {
	sup.mu.Lock()
	targets := make([]*session.Session, 0, len(sup.sessions))
	for _, s := range sup.sessions {
		targets = append(targets, s)
	}
	sup.mu.Unlock()

	var wg sync.WaitGroup
	for _, s := range targets {
		wg.Add(1)
		go func(s *session.Session) {
			defer wg.Done()
			if err := s.Notify([]byte(payload)); err != nil {
				glog.Warningf("transport: broadcast to session %s failed: %v", s.ID, err)
			}
		}(s)
	}
	wg.Wait()
}

// Package session implements one streaming connection end to end:
// the Opening/Established/Streaming/Closing lifecycle, the heartbeat,
// control-message handling, periodic physics-frame production through
// the deadband filter with optional compression, and inbound binary
// edits applied under the shared registry's write guard.
//
// Grounded on the original's actor-based socket handler
// (SocketFlowServer): the actor's started/StreamHandler split becomes
// a read-loop goroutine plus a heartbeat goroutine plus a per-session
// stream-production goroutine here, coordinated by a cancelable
// context instead of an actor mailbox.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/klauspost/compress/zlib"

	"github.com/sbl8/forcegraph/config"
	"github.com/sbl8/forcegraph/metrics"
	"github.com/sbl8/forcegraph/model"
	"github.com/sbl8/forcegraph/registry"
	"github.com/sbl8/forcegraph/wire"
)

// State is a streaming session's lifecycle state (spec §4.5).
type State int32

const (
	Opening State = iota
	Established
	Streaming
	Closing
)

func (s State) String() string {
	switch s {
	case Opening:
		return "Opening"
	case Established:
		return "Established"
	case Streaming:
		return "Streaming"
	case Closing:
		return "Closing"
	default:
		return "Unknown"
	}
}

const heartbeatInterval = 5 * time.Second
const defaultClientTimeout = 30 * time.Second

// Session drives one connection. Construct with New and run with Run;
// Run blocks until the connection closes or its context is cancelled.
type Session struct {
	ID       uuid.UUID
	conn     *websocket.Conn
	reg      *registry.Registry
	settings config.Settings
	metrics  *metrics.Collector

	writeMu sync.Mutex

	mu           sync.Mutex
	state        State
	lastActivity time.Time
	db           *deadband
}

// New builds a Session around an already-upgraded connection.
func New(conn *websocket.Conn, reg *registry.Registry, settings config.Settings, m *metrics.Collector) *Session {
	return &Session{
		ID:       uuid.New(),
		conn:     conn,
		reg:      reg,
		settings: settings,
		metrics:  m,
		state:    Opening,
		db:       newDeadband(DefaultPositionDeadband, DefaultVelocityDeadband),
	}
}

// Run drives the session until the connection closes or ctx is
// cancelled. It blocks; callers typically run it in its own goroutine
// per accepted connection.
func (s *Session) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer s.shutdown()

	if s.metrics != nil {
		s.metrics.SessionOpened()
		defer s.metrics.SessionClosed()
	}

	s.conn.SetPingHandler(func(string) error {
		s.touch()
		return s.conn.WriteControl(websocket.PongMessage, nil, time.Now().Add(time.Second))
	})
	s.conn.SetPongHandler(func(string) error {
		s.touch()
		return nil
	})

	s.sendText(connectionEstablishedMessage(time.Now().UnixMilli()))
	s.sendText(loadingStatusMessage())
	s.setState(Established)
	s.touch()

	go s.heartbeatLoop(ctx, cancel)
	go func() {
		<-ctx.Done()
		_ = s.conn.Close() // unblocks readLoop's ReadMessage
	}()

	s.readLoop(ctx, cancel)
}

func (s *Session) shutdown() {
	s.setState(Closing)
	_ = s.conn.Close()
}

func (s *Session) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// State reports the session's current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

func (s *Session) lastActivityAge() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastActivity.IsZero() {
		return 0
	}
	return time.Since(s.lastActivity)
}

func (s *Session) clientTimeout() time.Duration {
	if s.settings.Streaming.ClientTimeoutSeconds <= 0 {
		return defaultClientTimeout
	}
	return time.Duration(s.settings.Streaming.ClientTimeoutSeconds) * time.Second
}

func (s *Session) heartbeatLoop(ctx context.Context, cancel context.CancelFunc) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()
	timeout := s.clientTimeout()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.lastActivityAge() > timeout {
				glog.Warningf("session %s: heartbeat miss, closing", s.ID)
				s.setState(Closing)
				cancel()
				return
			}
			if err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(time.Second)); err != nil {
				glog.Warningf("session %s: ping write failed: %v", s.ID, err)
				cancel()
				return
			}
		}
	}
}

func (s *Session) readLoop(ctx context.Context, cancel context.CancelFunc) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		messageType, data, err := s.conn.ReadMessage()
		if err != nil {
			glog.V(1).Infof("session %s: read ended: %v", s.ID, err)
			return
		}
		s.touch()

		switch messageType {
		case websocket.TextMessage:
			s.handleText(ctx, data)
		case websocket.BinaryMessage:
			s.handleBinary(data)
		}
	}
}

func (s *Session) handleText(ctx context.Context, data []byte) {
	var msg controlMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		s.sendText(errorMessage("malformed control message"))
		return
	}

	switch msg.Type {
	case "ping":
		s.sendText(pongMessage(msg.Timestamp))
	case "requestInitialData":
		if s.State() != Streaming {
			s.setState(Streaming)
			go s.streamLoop(ctx)
		}
		s.sendText(updatesStartedMessage(time.Now().UnixMilli()))
	case "enableRandomization":
		glog.V(1).Infof("session %s: enableRandomization requested; server-side randomization is not supported, ignoring", s.ID)
	default:
		s.sendText(errorMessage("unknown message type: " + msg.Type))
	}
}

// handleBinary decodes an inbound client edit and applies it under
// the registry's write guard, preserving mass and flags. A decode
// error (bad length or more than wire.MaxInboundRecords records)
// replies with an error frame and never touches state.
func (s *Session) handleBinary(data []byte) {
	records, err := wire.DecodeInbound(data)
	if err != nil {
		s.sendText(errorMessage(err.Error()))
		return
	}

	s.reg.WriteBoth(func(g *model.Graph) {
		for _, rec := range records {
			target := findByNumericID(g, rec.NumericID)
			if target == nil {
				glog.V(2).Infof("session %s: inbound edit for unknown node %d", s.ID, rec.NumericID)
				continue
			}
			target.Physics.Position = rec.Position
			target.Physics.Velocity = rec.Velocity
		}
	})
}

func findByNumericID(g *model.Graph, id uint16) *model.Node {
	for _, n := range g.Nodes {
		if n.NumericID == id {
			return n
		}
	}
	return nil
}

func (s *Session) streamLoop(ctx context.Context) {
	interval := time.Second / 60
	if rate := s.settings.Streaming.BinaryUpdateRateHz; rate > 0 {
		interval = time.Duration(float64(time.Second) / rate)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.produceFrame()
		}
	}
}

// produceFrame runs one tick of §4.5's physics-frame production: copy
// positions under a read guard, filter through the deadband, encode,
// optionally compress, send, then commit the deadband's last-sent
// state for exactly the nodes included.
func (s *Session) produceFrame() {
	var changed []wire.Record
	s.reg.ReadGraph(func(g *model.Graph) {
		for _, n := range g.Nodes {
			pos, vel := n.Physics.Position, n.Physics.Velocity
			if s.db.qualifies(n.NumericID, pos, vel) {
				changed = append(changed, wire.Record{NumericID: n.NumericID, Position: pos, Velocity: vel})
			}
		}
	})
	if len(changed) == 0 {
		return
	}

	frame := wire.Encode(changed)
	payload := s.maybeCompress(frame)
	if err := s.sendBinary(payload); err != nil {
		glog.Warningf("session %s: binary send failed: %v", s.ID, err)
		return
	}
	for _, rec := range changed {
		s.db.commit(rec.NumericID, rec.Position, rec.Velocity)
	}
	if s.metrics != nil {
		s.metrics.RecordFrame(s.ID.String(), len(payload))
	}
}

func (s *Session) maybeCompress(data []byte) []byte {
	if !s.settings.Streaming.CompressionEnabled || len(data) <= s.settings.Streaming.CompressionThreshold {
		return data
	}
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return data
	}
	if err := w.Close(); err != nil {
		return data
	}
	if buf.Len() < len(data) {
		return buf.Bytes()
	}
	return data
}

func (s *Session) sendText(payload []byte) {
	if err := s.Notify(payload); err != nil {
		glog.V(1).Infof("session %s: text send failed: %v", s.ID, err)
	}
}

// Notify pushes an arbitrary text payload to this session's client,
// outside the normal control-message/physics-frame flow. Used by the
// session supervisor's broadcast entry point.
func (s *Session) Notify(payload []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, payload)
}

func (s *Session) sendBinary(payload []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteMessage(websocket.BinaryMessage, payload)
}

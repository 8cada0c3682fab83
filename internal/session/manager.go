// Package session owns the set of live simulations: creation, lookup,
// mutation, and idle reaping. Each Session drives its own Simulation on a
// dedicated goroutine ticking at the simulation's configured rate.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/greshilov/collider/internal/config"
	"github.com/greshilov/collider/internal/engine"
	"github.com/greshilov/collider/internal/store"
	"github.com/greshilov/collider/internal/ws"
)

// ErrNotFound is returned when a session ID doesn't resolve to a live
// session.
var ErrNotFound = errors.New("session: not found")

// Session wraps one Simulation with the bookkeeping needed to run it as a
// background goroutine and broadcast its state.
type Session struct {
	ID  string
	Sim *engine.Simulation

	mu           sync.RWMutex
	lastActivity time.Time
	stop         chan struct{}
	stopped      bool

	// OnTick, when set, is invoked with the session after every Tick.
	// CreateSession sets it to broadcastTick, which sends a tick snapshot
	// to the session's viewers through the ws hub.
	OnTick func(s *Session)
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastActivity = time.Now()
	s.mu.Unlock()
}

// IdleFor reports how long it's been since the session last saw activity
// (its creation or a Touch after a mutation). Ticks do not count as
// activity.
func (s *Session) IdleFor() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return time.Since(s.lastActivity)
}

// tickSnapshot is the payload broadcast to viewers after every tick.
type tickSnapshot struct {
	Type      string              `json:"type"`
	Tick      float64             `json:"tick"`
	Score     *uint32             `json:"score,omitempty"`
	Particles []engine.Particle   `json:"particles"`
}

func broadcastTick(s *Session) {
	snapshot := tickSnapshot{
		Type:      "tick",
		Tick:      s.Sim.CurrentTick(),
		Particles: s.Sim.Particles(),
	}
	if score, ok := s.Sim.CurrentScore(); ok {
		snapshot.Score = &score
	}
	ws.Hub().BroadcastToSession(s.ID, snapshot)
}

func (s *Session) run(tickInterval time.Duration) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sim.Tick()
			if s.OnTick != nil {
				s.OnTick(s)
			}
		}
	}
}

// Manager tracks every live session.
type Manager struct {
	cfg    *config.Config
	scores *store.ScoreStore

	mu       sync.RWMutex
	sessions map[string]*Session
}

// global is the package-level singleton, set up once at boot by
// InitializeManager, mirroring the rest of the backend's collaborators.
var global *Manager

// InitializeManager constructs the global session manager and starts its
// idle-reaper background goroutine.
func InitializeManager(cfg *config.Config, scores *store.ScoreStore) {
	global = NewManager(cfg, scores)
	go global.startIdleReaper()
}

// Get returns the global manager. Panics if InitializeManager hasn't run,
// the same contract the rest of the backend's package singletons use.
func Get() *Manager {
	if global == nil {
		panic("session: manager used before InitializeManager")
	}
	return global
}

// NewManager builds a manager without touching the package singleton,
// useful for tests that want an isolated instance.
func NewManager(cfg *config.Config, scores *store.ScoreStore) *Manager {
	return &Manager{
		cfg:      cfg,
		scores:   scores,
		sessions: make(map[string]*Session),
	}
}

func generateSessionID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return "sess_" + hex.EncodeToString(b)
}

// CreateSession starts a new simulation of the given size and tick rate
// (falling back to configured defaults when zero) and begins ticking it
// on a background goroutine.
func (m *Manager) CreateSession(width, height float64, ticksPerSec uint32) *Session {
	if width == 0 {
		width = m.cfg.DefaultWidth
	}
	if height == 0 {
		height = m.cfg.DefaultHeight
	}
	if ticksPerSec == 0 {
		ticksPerSec = uint32(m.cfg.DefaultTicksPerSec)
	}

	sim := engine.NewSimulation(width, height, ticksPerSec, engine.DrawParams{Borders: true})
	sess := &Session{
		ID:           generateSessionID(),
		Sim:          sim,
		lastActivity: time.Now(),
		stop:         make(chan struct{}),
	}
	sess.OnTick = broadcastTick

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	go sess.run(time.Duration(float64(time.Second) / float64(ticksPerSec)))

	log.Printf("[SESSION] created %s (%vx%v @ %d ticks/sec)", sess.ID, width, height, ticksPerSec)
	return sess
}

// Get returns the session with the given ID.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Remove stops and discards the session with the given ID.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return
	}
	sess.mu.Lock()
	if !sess.stopped {
		close(sess.stop)
		sess.stopped = true
	}
	sess.mu.Unlock()
	log.Printf("[SESSION] removed %s", id)
}

// Touch marks a session as recently active, resetting its idle timer.
// Call this from any handler that mutates a session on the caller's
// behalf (adding a particle, moving the player, etc).
func (m *Manager) Touch(id string) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		sess.touch()
	}
}

// ScoreStore exposes the manager's score persistence layer so handlers
// that need to record a signed game result don't need their own wiring.
func (m *Manager) ScoreStore() *store.ScoreStore {
	return m.scores
}

// startIdleReaper periodically sweeps sessions that have seen no
// activity for longer than the configured idle timeout and removes them,
// freeing their ticking goroutine.
func (m *Manager) startIdleReaper() {
	interval := time.Duration(m.cfg.SessionReaperPollSecs) * time.Second
	if interval <= 0 {
		interval = 30 * time.Second
	}
	timeout := time.Duration(m.cfg.SessionIdleTimeoutSecs) * time.Second

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.RLock()
		var stale []string
		for id, sess := range m.sessions {
			if sess.IdleFor() > timeout {
				stale = append(stale, id)
			}
		}
		m.mu.RUnlock()

		for _, id := range stale {
			log.Printf("[SESSION] reaping idle session %s", id)
			m.Remove(id)
		}
	}
}

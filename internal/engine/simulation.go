package engine

import (
	"github.com/greshilov/collider/internal/geom"
)

// DrawParams controls what a renderer driven by Particles/Segments draws;
// the engine itself never touches them.
type DrawParams struct {
	Borders bool `json:"borders"`
}

// Simulation owns the full state of one collision world: its boundary,
// any interior walls, the particles moving inside it, and the pending
// collision schedule.
type Simulation struct {
	w, h float64

	initialized bool
	segments    []geom.Segment
	particles   []Particle
	events      *eventQueue
	t           float64

	ticksPerSec uint32
	tickTime    float64

	game       *gameOverlay
	drawParams DrawParams
}

// NewSimulation creates a simulation of the given size, bounded by a
// rectangular domain with its origin at (0, 0). ticksPerSec sets the
// fixed step of a single Tick call: 1/ticksPerSec seconds of simulated
// time.
func NewSimulation(width, height float64, ticksPerSec uint32, drawParams DrawParams) *Simulation {
	return &Simulation{
		w:           width,
		h:           height,
		segments:    geom.CreateRectangleDomain(geom.Vec2{}, width, height),
		events:      newEventQueue(),
		ticksPerSec: ticksPerSec,
		tickTime:    1. / float64(ticksPerSec),
		drawParams:  drawParams,
	}
}

// GameModeEnabled reports whether a player particle has been added.
func (s *Simulation) GameModeEnabled() bool {
	return s.game != nil
}

// CurrentTick returns the simulated time elapsed since the simulation
// started, in seconds.
func (s *Simulation) CurrentTick() float64 {
	return s.t
}

// CurrentScore returns the player's current score and true, or
// (0, false) when game mode is inactive.
func (s *Simulation) CurrentScore() (uint32, bool) {
	if s.game == nil {
		return 0, false
	}
	return s.game.score(s.t), true
}

// Particles returns a copy of the current particle slice.
func (s *Simulation) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Segments returns a copy of the current segment slice, including the
// four boundary walls.
func (s *Simulation) Segments() []geom.Segment {
	out := make([]geom.Segment, len(s.segments))
	copy(out, s.segments)
	return out
}

// init discards the event queue and recomputes every particle's next
// collision from scratch. Called lazily the first time Tick runs after
// any particle, segment, or player-particle mutation.
func (s *Simulation) init() {
	s.events.Clear()
	for i := range s.particles {
		s.calculateParticleEvents(i)
	}
	s.initialized = true
}

// AddParticle adds p to the simulation and returns its index. It refuses
// to add a particle that overlaps an existing particle or segment.
func (s *Simulation) AddParticle(p Particle) (int, error) {
	if s.isColliding(p) {
		return 0, ErrOverlap
	}
	s.particles = append(s.particles, p)
	s.initialized = false
	return len(s.particles) - 1, nil
}

// AddPlayerParticle adds p as the player's particle (forcing its velocity
// to zero) and switches the simulation into game mode. onGameEnd is
// invoked synchronously, at most once, the instant the player particle
// collides with anything.
func (s *Simulation) AddPlayerParticle(p Particle, playerUUID, playerName string, secret []byte, onGameEnd GameEndFunc) (int, error) {
	p.V = geom.Vec2{}
	idx, err := s.AddParticle(p)
	if err != nil {
		return 0, err
	}
	s.game = newGameOverlay(idx, playerUUID, playerName, s.t, secret, onGameEnd)
	return idx, nil
}

// MovePlayerParticle teleports the player's particle to (px, py).
func (s *Simulation) MovePlayerParticle(px, py float64) error {
	if s.game == nil {
		return ErrGameModeInactive
	}
	s.particles[s.game.particleIdx].Pos = geom.Vec2{X: px, Y: py}
	s.initialized = false
	return nil
}

// AddSegment adds a wall to the simulation.
func (s *Simulation) AddSegment(seg geom.Segment) {
	s.segments = append(s.segments, seg)
	s.initialized = false
}

// RemoveWalls drops the four enclosing rectangle segments created by
// NewSimulation (always indices 0-3, per CreateRectangleDomain), leaving
// any additional segments added since in place. Particles then move
// through the domain boundary unobstructed, which is what a
// momentum-conservation experiment needs: no wall impulses to account
// for.
func (s *Simulation) RemoveWalls() {
	if len(s.segments) < 4 {
		s.segments = nil
	} else {
		s.segments = s.segments[4:]
	}
	s.initialized = false
}

// isColliding reports whether p currently overlaps any particle or
// segment already in the simulation.
func (s *Simulation) isColliding(p Particle) bool {
	for _, other := range s.particles {
		if pvpIsCollision(other, p) {
			return true
		}
	}
	for _, seg := range s.segments {
		if pvsIsCollision(p, seg) {
			return true
		}
	}
	return false
}

// explicitlyCheckPlayerParticle ends the game immediately if the player's
// particle already overlaps something. Tick calls this before draining
// the event queue because a player particle can be teleported (via
// MovePlayerParticle) straight into an overlap, which the predictive
// event queue alone would never schedule.
func (s *Simulation) explicitlyCheckPlayerParticle() {
	if s.game == nil {
		return
	}
	if s.isColliding(s.particles[s.game.particleIdx]) {
		s.game.gameOver(s.t, s.ticksPerSec)
	}
}

// updateParticle installs newParticle as particle i's new state after a
// collision and reschedules its future events. If i is the player's
// particle, the collision ends the game instead: the player's new
// (post-collision) velocity is discarded.
func (s *Simulation) updateParticle(i int, newParticle Particle) {
	if s.game != nil && s.game.particleIdx == i {
		s.game.gameOver(s.t, s.ticksPerSec)
		return
	}
	s.particles[i] = newParticle
	s.calculateParticleEvents(i)
}

// calculateParticleEvents predicts every future collision of particle l
// against every other particle and every segment, and schedules them on
// the event queue.
func (s *Simulation) calculateParticleEvents(l int) {
	left := s.particles[l]

	for r, right := range s.particles {
		if r == l {
			continue
		}
		if dt, ok := pvpTimeToHit(left, right); ok {
			s.events.PushEvent(CollisionEvent{
				T: s.t + dt,
				Collision: Collision{
					Kind: ParticleVsParticle,
					P1:   l, P2: r,
					P1CC: left.CollisionsCount, P2CC: right.CollisionsCount,
				},
			})
		}
	}

	for si, seg := range s.segments {
		if dt, ok := pvsTimeToHit(left, seg); ok {
			s.events.PushEvent(CollisionEvent{
				T: s.t + dt,
				Collision: Collision{
					Kind: ParticleVsSegment,
					P:    l, S: si,
					PCC: left.CollisionsCount,
				},
			})
		}
	}
}

// mv advances every particle's position up to time t and bumps the
// simulation clock. A no-op if the clock is already at or past t.
func (s *Simulation) mv(t float64) {
	if s.t >= t {
		return
	}
	dt := t - s.t
	for i := range s.particles {
		s.particles[i].Move(dt)
	}
	s.t = t
}

// Tick advances the simulation by exactly one fixed time step
// (1/ticksPerSec seconds), resolving every collision predicted to occur
// within that window in chronological order.
func (s *Simulation) Tick() {
	if !s.initialized {
		s.init()
	}

	s.explicitlyCheckPlayerParticle()

	// collisionsHappened dedups events against ones already resolved at
	// the current sub-tick instant. Two events can be pushed for the same
	// pair (e.g. a stale one left over from before a prior collision, and
	// a fresh one recalculated since); once the pair has been resolved
	// once at this instant, further hits on it this instant are ignored.
	// The set is reset every time the simulation clock actually advances
	// so it only ever suppresses same-instant duplicates, never genuinely
	// later recollisions.
	collisionsHappened := make(map[CollisionPair]struct{})
	targetTime := s.t + s.tickTime

	for {
		event, ok := s.events.PeekEvent()
		if !ok || event.T > targetTime {
			break
		}
		event, _ = s.events.PopEvent()

		pair := event.Collision.Pair().normalized()
		if _, seen := collisionsHappened[pair]; seen {
			continue
		}

		switch event.Collision.Kind {
		case ParticleVsParticle:
			c := event.Collision
			left := s.particles[c.P1]
			right := s.particles[c.P2]

			if left.CollisionsCount == c.P1CC && right.CollisionsCount == c.P2CC {
				newLeft, newRight := pvpCollide(left, right)
				s.updateParticle(c.P1, newLeft)
				s.updateParticle(c.P2, newRight)
				collisionsHappened[pair] = struct{}{}
			}

		case ParticleVsSegment:
			c := event.Collision
			particle := s.particles[c.P]

			if particle.CollisionsCount == c.PCC {
				seg := s.segments[c.S]
				newParticle := pvsCollide(particle, seg)
				s.updateParticle(c.P, newParticle)
				collisionsHappened[pair] = struct{}{}
			}
		}

		if s.t < event.T {
			collisionsHappened = make(map[CollisionPair]struct{})
			s.mv(event.T)
		}
	}

	s.mv(targetTime)
}

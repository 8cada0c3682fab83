package engine

import (
	"math"
	"testing"

	"github.com/greshilov/collider/internal/geom"
	"github.com/greshilov/collider/internal/security"
)

func TestSimulationStraightLineNoWalls(t *testing.T) {
	sim := NewSimulation(100, 100, 60, DrawParams{})
	idx, err := sim.AddParticle(NewParticle(geom.Vec2{X: 50, Y: 50}, geom.Vec2{X: 1, Y: 0}, 1, 1, nil))
	if err != nil {
		t.Fatalf("AddParticle: %v", err)
	}

	sim.Tick()

	got := sim.Particles()[idx]
	compareFloats(t, got.Pos.X, 50+1./60.)
	compareFloats(t, got.Pos.Y, 50)
}

func TestSimulationBouncesOffWall(t *testing.T) {
	sim := NewSimulation(10, 10, 60, DrawParams{})
	_, err := sim.AddParticle(NewParticle(geom.Vec2{X: 9, Y: 5}, geom.Vec2{X: 100, Y: 0}, 1, 1, nil))
	if err != nil {
		t.Fatalf("AddParticle: %v", err)
	}

	for i := 0; i < 120; i++ {
		sim.Tick()
	}

	got := sim.Particles()[0]
	if got.V.X >= 0 {
		t.Fatalf("expected the particle to have rebounded off the right wall, velocity is %v", got.V)
	}
	if got.Pos.X < 0 || got.Pos.X > 10 {
		t.Fatalf("particle escaped the domain: %v", got.Pos)
	}
}

func TestSimulationRefusesOverlappingParticle(t *testing.T) {
	sim := NewSimulation(100, 100, 60, DrawParams{})
	if _, err := sim.AddParticle(NewParticle(geom.Vec2{X: 50, Y: 50}, geom.Vec2{}, 1, 5, nil)); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}

	_, err := sim.AddParticle(NewParticle(geom.Vec2{X: 52, Y: 50}, geom.Vec2{}, 1, 5, nil))
	if err != ErrOverlap {
		t.Fatalf("expected ErrOverlap, got %v", err)
	}
}

func TestSimulationGameOverOnCollision(t *testing.T) {
	sim := NewSimulation(100, 100, 60, DrawParams{})

	var delivered bool
	_, err := sim.AddPlayerParticle(
		NewParticle(geom.Vec2{X: 50, Y: 50}, geom.Vec2{}, 1, 1, nil),
		"11111111-1111-1111-1111-111111111111",
		"player-one",
		[]byte("secret"),
		func(sr security.SignedGameResult) {
			delivered = true
		},
	)
	if err != nil {
		t.Fatalf("AddPlayerParticle: %v", err)
	}

	if _, err := sim.AddParticle(NewParticle(geom.Vec2{X: 53, Y: 50}, geom.Vec2{X: -10, Y: 0}, 1, 1, nil)); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}

	if !sim.GameModeEnabled() {
		t.Fatal("expected game mode to be enabled")
	}

	for i := 0; i < 30 && !delivered; i++ {
		sim.Tick()
	}

	if !delivered {
		t.Fatal("expected the game-over callback to fire once the incoming particle reached the player")
	}
}

// TestScenarioS1TwoBodyHeadOn is the spec's S1 end-to-end scenario:
// w=h=100, tps=100, P1 at (20,30) v(30,20) m=1 r=5 and P2 at (80,70)
// v(-30,-20) m=2 r=5 collide head-on around simulated t≈0.861s (~86
// ticks at 100 ticks/sec).
func TestScenarioS1TwoBodyHeadOn(t *testing.T) {
	sim := NewSimulation(100, 100, 100, DrawParams{})

	idx1, err := sim.AddParticle(NewParticle(geom.Vec2{X: 20, Y: 30}, geom.Vec2{X: 30, Y: 20}, 1, 5, nil))
	if err != nil {
		t.Fatalf("AddParticle p1: %v", err)
	}
	idx2, err := sim.AddParticle(NewParticle(geom.Vec2{X: 80, Y: 70}, geom.Vec2{X: -30, Y: -20}, 2, 5, nil))
	if err != nil {
		t.Fatalf("AddParticle p2: %v", err)
	}

	collided := false
	for i := 0; i < 120 && !collided; i++ {
		sim.Tick()
		particles := sim.Particles()
		collided = particles[idx1].CollisionsCount == 1 && particles[idx2].CollisionsCount == 1
	}
	if !collided {
		t.Fatal("expected the two particles to have collided within 120 ticks")
	}

	p1 := sim.Particles()[idx1]
	p2 := sim.Particles()[idx2]

	const velEPS = 0.1
	if math.Abs(p1.V.X-(-50)) > velEPS || math.Abs(p1.V.Y-(-100./3.)) > velEPS {
		t.Fatalf("P1 velocity after collision = %v, want approx (-50, -33.333)", p1.V)
	}
	if math.Abs(p2.V.X-10) > velEPS || math.Abs(p2.V.Y-(20./3.)) > velEPS {
		t.Fatalf("P2 velocity after collision = %v, want approx (10, 6.667)", p2.V)
	}

	const posEPS = 0.5
	if math.Abs(p1.Pos.X-45.3) > posEPS || math.Abs(p1.Pos.Y-46.8667) > posEPS {
		t.Fatalf("P1 position after collision = %v, want approx (45.3, 46.8667)", p1.Pos)
	}
	if math.Abs(p2.Pos.X-54.3) > posEPS || math.Abs(p2.Pos.Y-52.8667) > posEPS {
		t.Fatalf("P2 position after collision = %v, want approx (54.3, 52.8667)", p2.Pos)
	}
}

// TestScenarioS2WallBounce is the spec's S2 scenario: continuing S1's
// setup for roughly 80 further ticks, P1 (now moving at (-50,-33.333)
// after the S1 collision) reaches the left wall (x=0) and bounces.
func TestScenarioS2WallBounce(t *testing.T) {
	sim := NewSimulation(100, 100, 100, DrawParams{})

	idx1, err := sim.AddParticle(NewParticle(geom.Vec2{X: 20, Y: 30}, geom.Vec2{X: 30, Y: 20}, 1, 5, nil))
	if err != nil {
		t.Fatalf("AddParticle p1: %v", err)
	}
	idx2, err := sim.AddParticle(NewParticle(geom.Vec2{X: 80, Y: 70}, geom.Vec2{X: -30, Y: -20}, 2, 5, nil))
	if err != nil {
		t.Fatalf("AddParticle p2: %v", err)
	}

	bounced := false
	for i := 0; i < 220 && !bounced; i++ {
		sim.Tick()
		bounced = sim.Particles()[idx1].CollisionsCount == 2
	}
	_ = idx2
	if !bounced {
		t.Fatal("expected P1 to have bounced off the left wall within 220 ticks")
	}

	p1 := sim.Particles()[idx1]

	const velEPS = 0.1
	if math.Abs(p1.V.X-50) > velEPS || math.Abs(p1.V.Y-(-100./3.)) > velEPS {
		t.Fatalf("P1 velocity after wall bounce = %v, want approx (50, -33.333)", p1.V)
	}

	const posEPS = 0.5
	if math.Abs(p1.Pos.X-5.8) > posEPS || math.Abs(p1.Pos.Y-19.8667) > posEPS {
		t.Fatalf("P1 position after wall bounce = %v, want approx (5.8, 19.8667)", p1.Pos)
	}
}

// TestSimulationConservesMomentumWithoutWalls is spec.md §8's testable
// property 3: with RemoveWalls dropping every wall impulse from the
// picture, total momentum Σ m·v over all particles must be identical
// before and after any number of pvp collisions.
func TestSimulationConservesMomentumWithoutWalls(t *testing.T) {
	sim := NewSimulation(100, 100, 100, DrawParams{})
	sim.RemoveWalls()

	idx1, err := sim.AddParticle(NewParticle(geom.Vec2{X: 20, Y: 30}, geom.Vec2{X: 30, Y: 20}, 1, 5, nil))
	if err != nil {
		t.Fatalf("AddParticle p1: %v", err)
	}
	idx2, err := sim.AddParticle(NewParticle(geom.Vec2{X: 80, Y: 70}, geom.Vec2{X: -30, Y: -20}, 2, 5, nil))
	if err != nil {
		t.Fatalf("AddParticle p2: %v", err)
	}

	momentum := func() geom.Vec2 {
		var px, py float64
		for _, p := range sim.Particles() {
			px += p.M * p.V.X
			py += p.M * p.V.Y
		}
		return geom.Vec2{X: px, Y: py}
	}

	before := momentum()

	for i := 0; i < 120; i++ {
		sim.Tick()
	}

	if sim.Particles()[idx1].CollisionsCount == 0 {
		t.Fatal("expected at least one pvp collision to have occurred")
	}

	after := momentum()
	const momentumEPS = 1e-6
	if math.Abs(after.X-before.X) > momentumEPS || math.Abs(after.Y-before.Y) > momentumEPS {
		t.Fatalf("momentum not conserved: before %v, after %v", before, after)
	}
	_ = idx2
}

// TestSimulationConservesKineticEnergy is spec.md §8's testable property
// 2: total kinetic energy Σ ½·m·|v|² is unchanged by elastic pvp and pvs
// collisions (walls included, since wall reflections are also elastic).
func TestSimulationConservesKineticEnergy(t *testing.T) {
	sim := NewSimulation(100, 100, 100, DrawParams{})

	idx1, err := sim.AddParticle(NewParticle(geom.Vec2{X: 20, Y: 30}, geom.Vec2{X: 30, Y: 20}, 1, 5, nil))
	if err != nil {
		t.Fatalf("AddParticle p1: %v", err)
	}
	if _, err := sim.AddParticle(NewParticle(geom.Vec2{X: 80, Y: 70}, geom.Vec2{X: -30, Y: -20}, 2, 5, nil)); err != nil {
		t.Fatalf("AddParticle p2: %v", err)
	}

	kineticEnergy := func() float64 {
		var ke float64
		for _, p := range sim.Particles() {
			ke += 0.5 * p.M * p.V.Dot(p.V)
		}
		return ke
	}

	before := kineticEnergy()

	for i := 0; i < 220; i++ {
		sim.Tick()
	}

	if sim.Particles()[idx1].CollisionsCount < 2 {
		t.Fatal("expected at least a pvp collision and a wall bounce to have occurred")
	}

	after := kineticEnergy()
	const keEPS = 1e-6
	if math.Abs(after-before) > keEPS {
		t.Fatalf("kinetic energy not conserved: before %v, after %v", before, after)
	}
}

func TestSimulationMovePlayerParticleRequiresGameMode(t *testing.T) {
	sim := NewSimulation(100, 100, 60, DrawParams{})
	if err := sim.MovePlayerParticle(1, 1); err != ErrGameModeInactive {
		t.Fatalf("expected ErrGameModeInactive, got %v", err)
	}
}

package engine

// CollisionKind tags which variant a Collision carries. Collision is a
// closed, tagged struct rather than an interface: the tick loop switches
// on Kind directly instead of paying for virtual dispatch over two
// possibilities that will never grow a third.
type CollisionKind int

const (
	ParticleVsParticle CollisionKind = iota
	ParticleVsSegment
)

// Collision identifies the two indices involved in a predicted collision,
// along with the CollisionsCount each participant had at prediction time
// so a stale event (one superseded by an intervening collision) can be
// detected and discarded when it's popped off the event queue.
type Collision struct {
	Kind CollisionKind

	P1, P2 int // particle indices, valid when Kind == ParticleVsParticle
	P1CC   uint64
	P2CC   uint64

	P  int // particle index, valid when Kind == ParticleVsSegment
	S  int // segment index, valid when Kind == ParticleVsSegment
	PCC uint64
}

// Pair returns the dedup key identifying the objects this collision
// involves, independent of which one of (p1, p2) collided first.
func (c Collision) Pair() CollisionPair {
	if c.Kind == ParticleVsParticle {
		return CollisionPair{kind: pairPvP, a: c.P1, b: c.P2}
	}
	return CollisionPair{kind: pairPvS, a: c.P, b: c.S}
}

type pairKind int

const (
	pairPvP pairKind = iota
	pairPvS
)

// CollisionPair is a comparable, order-independent (for PvP) key used to
// deduplicate collisions already handled within the current sub-tick.
type CollisionPair struct {
	kind pairKind
	a, b int
}

// normalized returns a CollisionPair with PvP endpoints in a canonical
// order, so {a: 1, b: 2} and {a: 2, b: 1} compare equal as map keys.
func (p CollisionPair) normalized() CollisionPair {
	if p.kind == pairPvP && p.a > p.b {
		return CollisionPair{kind: p.kind, a: p.b, b: p.a}
	}
	return p
}

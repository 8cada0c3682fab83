package geom

import (
	"math"
	"testing"
)

const eps = 1e-10

func compareFloats(t *testing.T, got, want float64) {
	t.Helper()
	if math.Abs(got-want) >= eps {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func compareVec2(t *testing.T, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) >= eps || math.Abs(got.Y-want.Y) >= eps {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestVec2Arithmetic(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	b := Vec2{X: -3, Y: 5}

	compareVec2(t, a.Plus(b), Vec2{X: -2, Y: 7})
	compareVec2(t, a.Minus(b), Vec2{X: 4, Y: -3})
	compareVec2(t, a.Times(-3), Vec2{X: -3, Y: -6})
	compareFloats(t, a.Dot(b), 7)
}

func TestVec2Len(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	compareFloats(t, a.Len(), 5)
}

func TestVec2Normal(t *testing.T) {
	a := Vec2{X: 1, Y: 2}
	n := a.Normal()
	compareFloats(t, a.Dot(n), 0)
	compareFloats(t, n.Len(), 1)
}

func TestVec2NormalAxisAligned(t *testing.T) {
	a := Vec2{X: -2, Y: 0}
	compareVec2(t, a.Normal(), Vec2{X: 0, Y: 1})

	b := Vec2{X: 0, Y: 2}
	compareVec2(t, b.Normal(), Vec2{X: 1, Y: 0})
}

func TestLineDistanceToPoint(t *testing.T) {
	line := Line{A: -4, B: 3, C: -35}
	compareFloats(t, line.DistanceToPoint(Vec2{X: -1, Y: 2}), 5)
}

func TestLineIntersectCircle(t *testing.T) {
	circle := Circle{P: Vec2{X: 4, Y: 1}, R: 2}
	line := Line{A: 1, B: -1, C: -1}

	got := line.IntersectCircle(circle)
	if got.Kind != LCTwoPoint {
		t.Fatalf("expected two points, got %v", got.Kind)
	}
	compareVec2(t, got.P1, Vec2{X: 2, Y: 1})
	compareVec2(t, got.P2, Vec2{X: 4, Y: 3})

	circle = Circle{P: Vec2{X: -2, Y: 1}, R: 2}
	line = Line{A: 3, B: -1, C: 0}
	if got := line.IntersectCircle(circle); got.Kind != LCNone {
		t.Fatalf("expected no intersection, got %v", got.Kind)
	}

	circle = Circle{P: Vec2{X: 1, Y: -1}, R: math.Sqrt(5)}
	line = Line{A: 1, B: 2, C: -4}
	got = line.IntersectCircle(circle)
	if got.Kind != LCOnePoint {
		t.Fatalf("expected one point, got %v", got.Kind)
	}
	compareVec2(t, got.P1, Vec2{X: 2, Y: 1})
}

func TestSegmentContainsPoint(t *testing.T) {
	s := NewSegment(Vec2{X: 0, Y: 0}, Vec2{X: 10, Y: 0})
	if !s.ContainsPoint(Vec2{X: 5, Y: 0}) {
		t.Fatal("expected midpoint to be contained")
	}
	if !s.ContainsPoint(Vec2{X: 0, Y: 0}) {
		t.Fatal("expected endpoint to be contained (inclusive)")
	}
	if s.ContainsPoint(Vec2{X: 11, Y: 0}) {
		t.Fatal("expected point beyond the segment to be excluded")
	}
}

func TestCreateRectangleDomainHasFourSides(t *testing.T) {
	segs := CreateRectangleDomain(Vec2{X: 0, Y: 0}, 10, 20)
	if len(segs) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segs))
	}
}

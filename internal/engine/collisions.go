package engine

import (
	"math"

	"github.com/greshilov/collider/internal/geom"
)

// discriminantEPS absorbs rounding error in the pvp quadratic so a
// genuinely tangent approach resolves to a grazing contact at the time of
// closest approach rather than being missed.
const discriminantEPS = 1e-9

// pvpTimeToHit returns the time until left and right (already overlapping
// disks aside) would next touch, following straight-line motion at their
// current velocities. ok is false when no future collision occurs: both at
// rest, diverging, or the discriminant of the quadratic is negative.
func pvpTimeToHit(left, right Particle) (float64, bool) {
	if left.V.IsZero() && right.V.IsZero() {
		return 0, false
	}

	dr := left.Pos.Minus(right.Pos)
	sigma := left.R + right.R

	if dr.Len() < sigma {
		return 0, false
	}

	dv := left.V.Minus(right.V)
	dvDr := dv.Dot(dr)
	if dvDr > 0 {
		return 0, false
	}
	dvDv := dv.Dot(dv)
	if dvDv == 0 {
		return 0, false
	}

	d := dvDr*dvDr - dvDv*(dr.Dot(dr)-sigma*sigma)
	if d < -discriminantEPS {
		return 0, false
	}
	if d < 0 {
		d = 0
	}

	return -(dvDr + math.Sqrt(d)) / dvDv, true
}

// pvpIsCollision reports whether left and right overlap right now.
func pvpIsCollision(left, right Particle) bool {
	return right.Pos.Minus(left.Pos).Len() < right.R+left.R
}

// pvpCollide returns left and right after an elastic collision along their
// line of centers.
func pvpCollide(left, right Particle) (Particle, Particle) {
	dr := right.Pos.Minus(left.Pos)
	dv := right.V.Minus(left.V)
	dvDr := dv.Dot(dr)
	distSqr := dr.LenSqr()

	jNorm := 2 * left.M * right.M * dvDr / (left.M + right.M)
	j := dr.Times(jNorm / distSqr)

	newLeft := left
	newRight := right

	newLeft.V = newLeft.V.Plus(j.Times(1 / left.M))
	newRight.V = newRight.V.Minus(j.Times(1 / right.M))

	newLeft.CollisionsCount++
	newRight.CollisionsCount++

	return newLeft, newRight
}

// pvsTimeToHit returns the time until left would first touch segment s.
func pvsTimeToHit(left Particle, s geom.Segment) (float64, bool) {
	if left.V.IsZero() {
		return 0, false
	}

	movementLine := geom.NewLineFromVecAndPoint(left.V, left.Pos)

	intersectP, ok := movementLine.IntersectLine(s.Line)
	if !ok {
		return 0, false
	}

	ray := intersectP.Minus(left.Pos)
	if ray.Dot(left.V) < 0 {
		return 0, false
	}

	speedNorm := ray.Normal().Times(left.R)
	circleProj := s.V.Times(left.R * 1. / s.V.AngleCos(speedNorm))

	bp1 := intersectP.Minus(circleProj)
	bp2 := intersectP.Plus(circleProj)

	if !s.ContainsPoint(bp1) && !s.ContainsPoint(bp2) {
		return 0, false
	}

	proj := math.Abs(ray.Dot(s.N))
	speedProj := math.Abs(left.V.Dot(s.N))

	if proj < left.R {
		return 0, true
	}
	return (proj - left.R) / speedProj, true
}

// pvsIsCollision reports whether left overlaps segment s right now.
func pvsIsCollision(left Particle, s geom.Segment) bool {
	switch lc := s.Line.IntersectCircle(left.Circle()); lc.Kind {
	case geom.LCOnePoint:
		return s.ContainsPoint(lc.P1)
	case geom.LCTwoPoint:
		return s.ContainsPoint(lc.P1) || s.ContainsPoint(lc.P2)
	default:
		return false
	}
}

// pvsCollide returns left after a specular reflection off segment s.
func pvsCollide(left Particle, s geom.Segment) Particle {
	newLeft := left
	newLeft.V = newLeft.V.Minus(s.N.Times(newLeft.V.Dot(s.N) * 2))
	newLeft.CollisionsCount++
	return newLeft
}

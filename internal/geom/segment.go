package geom

// Segment is an immutable wall: a directed line from P1 to P2.
type Segment struct {
	P1   Vec2 `json:"p1"`
	P2   Vec2 `json:"p2"`
	V    Vec2 `json:"v"` // unit direction, P1 -> P2
	N    Vec2 `json:"n"` // unit normal
	Line Line `json:"line"`
}

// NewSegment builds the segment running from p1 to p2. p1 and p2 must
// differ, or V/N are undefined (zero-length direction has no normal).
func NewSegment(p1, p2 Vec2) Segment {
	v := p2.Minus(p1).Normalize()
	return Segment{
		P1:   p1,
		P2:   p2,
		V:    v,
		N:    v.Normal(),
		Line: NewLineFromTwoPoints(p1, p2),
	}
}

// ContainsPoint reports whether p (assumed to lie on the segment's line)
// falls between P1 and P2 inclusive.
func (s Segment) ContainsPoint(p Vec2) bool {
	return p.Minus(s.P1).Dot(p.Minus(s.P2)) <= 0
}

// CreateRectangleDomain returns the four boundary segments of the
// axis-aligned rectangle [origin, origin+(width,height)], in the order
// top, right, bottom, left. Each normal comes from Vec2.Normal, so the
// top and left normals point into the rectangle and the right and bottom
// normals point out of it.
func CreateRectangleDomain(origin Vec2, width, height float64) []Segment {
	topLeft := origin
	topRight := Vec2{X: origin.X + width, Y: origin.Y}
	bottomRight := Vec2{X: origin.X + width, Y: origin.Y + height}
	bottomLeft := Vec2{X: origin.X, Y: origin.Y + height}

	return []Segment{
		NewSegment(topLeft, topRight),
		NewSegment(topRight, bottomRight),
		NewSegment(bottomRight, bottomLeft),
		NewSegment(bottomLeft, topLeft),
	}
}

// Package engine implements the event-driven hard-disk collision
// simulation: particles, analytical collision prediction, the event
// queue, and the tick loop that advances the world.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/greshilov/collider/internal/geom"
)

// Particle is a moving disk.
type Particle struct {
	Pos             geom.Vec2 `json:"pos"`
	V               geom.Vec2 `json:"v"`
	M               float64   `json:"m"`
	R               float64   `json:"r"`
	CollisionsCount uint64    `json:"collisions_count"`
	Color           *RGBA     `json:"color,omitempty"`
}

// NewParticle builds a particle at rest or in motion.
func NewParticle(pos, v geom.Vec2, m, r float64, color *RGBA) Particle {
	return Particle{Pos: pos, V: v, M: m, R: r, Color: color}
}

// Move advances the particle's position by dt along its velocity. It does
// not touch CollisionsCount or velocity.
func (p *Particle) Move(dt float64) {
	p.Pos = p.Pos.Plus(p.V.Times(dt))
}

// Circle returns the particle's current bounding circle.
func (p Particle) Circle() geom.Circle {
	return geom.Circle{P: p.Pos, R: p.R}
}

// RGBA is an 8-bit-per-channel color tag attached to a particle for
// rendering; the engine itself never reads it.
type RGBA struct {
	Red   uint8 `json:"red"`
	Green uint8 `json:"green"`
	Blue  uint8 `json:"blue"`
	Alpha uint8 `json:"alpha"`
}

// NewRGBA builds a color from 0-255 channels and an optional 0-1 alpha.
// An alpha outside [0, 1) is treated as fully opaque.
func NewRGBA(red, green, blue uint8, alpha *float64) RGBA {
	a := 1.0
	if alpha != nil {
		a = *alpha
	}
	var ab uint8
	if a < 0 || a >= 1 {
		ab = 255
	} else {
		ab = uint8(255.0*a + 0.5)
	}
	return RGBA{Red: red, Green: green, Blue: blue, Alpha: ab}
}

// RGBAFromCSSHex parses a "#RRGGBB" or "#RRGGBBAA" string (leading '#'
// optional). It reports ok=false when the length doesn't match either
// form; malformed hex digits decode as 0, matching the permissive parser
// this was ported from.
func RGBAFromCSSHex(hex string) (RGBA, bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return RGBA{}, false
	}

	parse := func(s string) uint8 {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0
		}
		return uint8(v)
	}

	red := parse(hex[0:2])
	green := parse(hex[2:4])
	blue := parse(hex[4:6])
	alpha := uint8(255)
	if len(hex) == 8 {
		alpha = parse(hex[6:8])
	}
	return RGBA{Red: red, Green: green, Blue: blue, Alpha: alpha}, true
}

// AsCSSHex renders the color as "#RRGGBBAA".
func (c RGBA) AsCSSHex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.Red, c.Green, c.Blue, c.Alpha)
}

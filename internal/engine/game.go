package engine

import (
	"math"

	"github.com/greshilov/collider/internal/security"
)

// GameEndFunc is invoked exactly once, synchronously from within Tick, the
// moment the player's particle collides with anything. The callback must
// not call back into the owning Simulation: Tick is still on the stack.
type GameEndFunc func(security.SignedGameResult)

// gameOverlay tracks the optional single-player "survive as long as
// possible" mode layered on top of the simulation. A Simulation is in
// game mode from the moment AddPlayerParticle succeeds.
type gameOverlay struct {
	particleIdx int
	playerUUID  string
	playerName  string
	secret      []byte
	onGameEnd   GameEndFunc

	startedAtTick float64
	ended         bool
}

func newGameOverlay(particleIdx int, playerUUID, playerName string, startedAtTick float64, secret []byte, onGameEnd GameEndFunc) *gameOverlay {
	return &gameOverlay{
		particleIdx:   particleIdx,
		playerUUID:    playerUUID,
		playerName:    playerName,
		secret:        secret,
		onGameEnd:     onGameEnd,
		startedAtTick: startedAtTick,
	}
}

// score returns the current score: ten points per simulated second of
// survival, rounded to the nearest integer.
func (g *gameOverlay) score(tick float64) uint32 {
	return uint32(math.Round((tick - g.startedAtTick) * 10))
}

// gameOver ends the round exactly once, signing and delivering the final
// score through the registered callback.
func (g *gameOverlay) gameOver(tick float64, ticksPerSec uint32) {
	if g.ended {
		return
	}
	g.ended = true

	result := security.GameResult{
		PlayerUUID:  g.playerUUID,
		PlayerName:  g.playerName,
		Score:       g.score(tick),
		TicksPerSec: ticksPerSec,
	}
	signed := security.Sign(result, g.secret)
	if g.onGameEnd != nil {
		g.onGameEnd(signed)
	}
}

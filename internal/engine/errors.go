package engine

import "errors"

var (
	// ErrOverlap is returned when a particle or player particle can't be
	// added because it overlaps an existing particle or segment.
	ErrOverlap = errors.New("engine: particle overlaps an existing object")

	// ErrGameModeInactive is returned by player-particle operations when
	// no player particle has been added yet.
	ErrGameModeInactive = errors.New("engine: game mode is inactive, add the player particle first")
)

// Package store persists verified game results to Postgres.
package store

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// ScoreRecord is a row of the scores table.
type ScoreRecord struct {
	ID          int       `db:"id" json:"id"`
	PlayerName  string    `db:"player_name" json:"player_name"`
	PlayerUUID  string    `db:"player_uuid" json:"player_uuid"`
	Score       int       `db:"score" json:"score"`
	TicksPerSec int       `db:"ticks_per_sec" json:"ticks_per_sec"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// ScoreStore persists and retrieves score records.
type ScoreStore struct {
	db *sqlx.DB
}

// NewScoreStore wraps db for score persistence. db may be nil, in which
// case every method returns ErrStoreUnavailable: score submission is
// optional infrastructure, not a hard dependency of the simulation.
func NewScoreStore(db *sqlx.DB) *ScoreStore {
	return &ScoreStore{db: db}
}

// Insert records a verified score and returns its assigned ID.
func (s *ScoreStore) Insert(ctx context.Context, playerName, playerUUID string, score, ticksPerSec int) (int, error) {
	if s.db == nil {
		return 0, ErrStoreUnavailable
	}

	var id int
	err := s.db.QueryRowxContext(
		ctx,
		`INSERT INTO scores (player_name, player_uuid, score, ticks_per_sec)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		playerName, playerUUID, score, ticksPerSec,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Top returns the n highest scores, descending.
func (s *ScoreStore) Top(ctx context.Context, n int) ([]ScoreRecord, error) {
	if s.db == nil {
		return nil, ErrStoreUnavailable
	}

	var records []ScoreRecord
	err := s.db.SelectContext(
		ctx,
		&records,
		`SELECT id, player_name, player_uuid, score, ticks_per_sec, created_at
		 FROM scores
		 ORDER BY score DESC
		 LIMIT $1`,
		n,
	)
	if err != nil {
		return nil, err
	}
	return records, nil
}

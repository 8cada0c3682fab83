// Package security signs and verifies game results so a client-reported
// score can't be forged without the shared secret.
package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// GameResult is the outcome of a single play-through of the game overlay.
type GameResult struct {
	PlayerUUID  string `json:"player_uuid"`
	PlayerName  string `json:"player_name"`
	Score       uint32 `json:"score"`
	TicksPerSec uint32 `json:"ticks_per_sec"`
}

// SignedGameResult pairs a GameResult with its HMAC-SHA256 digest, hex
// encoded so it travels safely as a JSON string.
type SignedGameResult struct {
	GameResult GameResult `json:"game_result"`
	HexDigest  string     `json:"hex_digest"`
}

// mac returns the HMAC over the result's fields, in the exact order
// player name, player UUID, score (big-endian uint32), ticks per second
// (big-endian uint32). The order is part of the wire contract: changing
// it invalidates every digest signed so far.
func (r GameResult) mac(secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(r.PlayerName))
	mac.Write([]byte(r.PlayerUUID))

	var scoreBuf, tpsBuf [4]byte
	binary.BigEndian.PutUint32(scoreBuf[:], r.Score)
	binary.BigEndian.PutUint32(tpsBuf[:], r.TicksPerSec)
	mac.Write(scoreBuf[:])
	mac.Write(tpsBuf[:])

	return mac.Sum(nil)
}

// Sign computes the signed result for r under secret.
func Sign(r GameResult, secret []byte) SignedGameResult {
	return SignedGameResult{
		GameResult: r,
		HexDigest:  hex.EncodeToString(r.mac(secret)),
	}
}

// Verify reports whether sr's digest is a valid HMAC over its GameResult
// under secret, in constant time.
func (sr SignedGameResult) Verify(secret []byte) bool {
	digest, err := hex.DecodeString(sr.HexDigest)
	if err != nil {
		return false
	}
	return hmac.Equal(digest, sr.GameResult.mac(secret))
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/greshilov/collider/internal/config"
	"github.com/greshilov/collider/internal/security"
	"github.com/greshilov/collider/internal/store"
)

// SubmitScore verifies a client-reported, HMAC-signed game result and
// persists it. Scores that fail verification are rejected outright:
// the signature is the only thing standing between this endpoint and an
// arbitrary client-chosen score.
func SubmitScore(cfg *config.Config, scores *store.ScoreStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var signed security.SignedGameResult
		if err := c.ShouldBindJSON(&signed); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "msg": err.Error()})
			return
		}

		if !signed.Verify([]byte(cfg.SecretKey)) {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "msg": "invalid signature"})
			return
		}

		_, err := scores.Insert(
			c.Request.Context(),
			signed.GameResult.PlayerName,
			signed.GameResult.PlayerUUID,
			int(signed.GameResult.Score),
			int(signed.GameResult.TicksPerSec),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "msg": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// Top returns the leaderboard's highest scores.
func Top(scores *store.ScoreStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := scores.Top(c.Request.Context(), 20)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "msg": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "scores": records})
	}
}

package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/greshilov/collider/internal/config"
	"github.com/greshilov/collider/internal/engine"
	"github.com/greshilov/collider/internal/geom"
	"github.com/greshilov/collider/internal/security"
	"github.com/greshilov/collider/internal/session"
	"github.com/greshilov/collider/internal/ws"
)

type createSessionRequest struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	TicksPerSec int     `json:"ticks_per_sec"`
}

// CreateSession starts a new simulation and begins ticking it.
func CreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "msg": err.Error()})
			return
		}
	}

	sess := session.Get().CreateSession(req.Width, req.Height, uint32(req.TicksPerSec))
	c.JSON(http.StatusOK, gin.H{"status": "ok", "id": sess.ID})
}

type snapshotResponse struct {
	ID        string          `json:"id"`
	Tick      float64         `json:"tick"`
	Score     *uint32         `json:"score,omitempty"`
	Particles []engine.Particle `json:"particles"`
	Segments  []geom.Segment  `json:"segments"`
}

// GetSession returns a point-in-time snapshot of a session.
func GetSession(c *gin.Context) {
	sess, err := session.Get().Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "msg": "session not found"})
		return
	}

	resp := snapshotResponse{
		ID:        sess.ID,
		Tick:      sess.Sim.CurrentTick(),
		Particles: sess.Sim.Particles(),
		Segments:  sess.Sim.Segments(),
	}
	if score, ok := sess.Sim.CurrentScore(); ok {
		resp.Score = &score
	}
	c.JSON(http.StatusOK, resp)
}

type vec2Request struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v vec2Request) toVec2() geom.Vec2 {
	return geom.Vec2{X: v.X, Y: v.Y}
}

type addParticleRequest struct {
	Pos vec2Request `json:"pos"`
	V   vec2Request `json:"v"`
	M   float64     `json:"m"`
	R   float64     `json:"r"`
}

// AddParticle adds a non-player particle to the session.
func AddParticle(c *gin.Context) {
	sess, err := session.Get().Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "msg": "session not found"})
		return
	}

	var req addParticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "msg": err.Error()})
		return
	}

	idx, err := sess.Sim.AddParticle(engine.NewParticle(req.Pos.toVec2(), req.V.toVec2(), req.M, req.R, nil))
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"status": "error", "msg": err.Error()})
		return
	}
	session.Get().Touch(sess.ID)
	c.JSON(http.StatusOK, gin.H{"status": "ok", "index": idx})
}

type addSegmentRequest struct {
	P1 vec2Request `json:"p1"`
	P2 vec2Request `json:"p2"`
}

// AddSegment adds a wall to the session.
func AddSegment(c *gin.Context) {
	sess, err := session.Get().Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "msg": "session not found"})
		return
	}

	var req addSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "msg": err.Error()})
		return
	}

	sess.Sim.AddSegment(geom.NewSegment(req.P1.toVec2(), req.P2.toVec2()))
	session.Get().Touch(sess.ID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type addPlayerParticleRequest struct {
	addParticleRequest
	PlayerUUID string `json:"player_uuid"`
	PlayerName string `json:"player_name"`
}

// AddPlayerParticle registers the player's particle and switches the
// session into game mode. cfg carries the HMAC signing secret.
func AddPlayerParticle(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := session.Get().Get(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "msg": "session not found"})
			return
		}

		var req addPlayerParticleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "msg": err.Error()})
			return
		}

		sessionID := sess.ID
		onGameEnd := func(signed security.SignedGameResult) {
			log.Printf("[GAME] session %s ended: player=%s score=%d", sessionID, signed.GameResult.PlayerName, signed.GameResult.Score)

			if store := session.Get().ScoreStore(); store != nil {
				if _, err := store.Insert(context.Background(), signed.GameResult.PlayerName, signed.GameResult.PlayerUUID, int(signed.GameResult.Score), int(signed.GameResult.TicksPerSec)); err != nil {
					log.Printf("[GAME] failed to persist score for session %s: %v", sessionID, err)
				} else {
					ws.PublishLeaderboardUpdate(context.Background(), signed.GameResult.PlayerName, int(signed.GameResult.Score))
				}
			}

			ws.Hub().BroadcastToSession(sessionID, gin.H{"type": "game_over", "result": signed})

			// The game ended: tear the session down now instead of leaving
			// it to the idle reaper, per the "mark the session for expiry"
			// contract.
			session.Get().Remove(sessionID)
		}

		idx, err := sess.Sim.AddPlayerParticle(
			engine.NewParticle(req.Pos.toVec2(), req.V.toVec2(), req.M, req.R, nil),
			req.PlayerUUID, req.PlayerName, []byte(cfg.SecretKey), onGameEnd,
		)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"status": "error", "msg": err.Error()})
			return
		}
		session.Get().Touch(sess.ID)
		c.JSON(http.StatusOK, gin.H{"status": "ok", "index": idx})
	}
}

// MovePlayerParticle teleports the player's particle to a new position.
func MovePlayerParticle(c *gin.Context) {
	sess, err := session.Get().Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "msg": "session not found"})
		return
	}

	var req vec2Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "msg": err.Error()})
		return
	}

	if err := sess.Sim.MovePlayerParticle(req.X, req.Y); err != nil {
		c.JSON(http.StatusConflict, gin.H{"status": "error", "msg": err.Error()})
		return
	}
	session.Get().Touch(sess.ID)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteSession tears down a session out-of-band, ahead of its idle
// timeout. Disabled unless cfg.AdminAPIKeyHash is set, the same
// nil-safe pattern the teacher applies to its optional clients.
func DeleteSession(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.AdminAPIKeyHash == "" {
			c.JSON(http.StatusForbidden, gin.H{"status": "error", "msg": "admin deletion is disabled"})
			return
		}

		key := c.GetHeader("X-Admin-Key")
		if key == "" || bcrypt.CompareHashAndPassword([]byte(cfg.AdminAPIKeyHash), []byte(key)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "msg": "invalid admin key"})
			return
		}

		id := c.Param("id")
		if _, err := session.Get().Get(id); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "msg": "session not found"})
			return
		}
		session.Get().Remove(id)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// HandleSessionWebSocket upgrades the connection and streams the
// session's tick broadcasts to it.
func HandleSessionWebSocket(c *gin.Context) {
	id := c.Param("id")
	if _, err := session.Get().Get(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "msg": "session not found"})
		return
	}
	ws.Hub().HandleConnection(c.Writer, c.Request, id)
}

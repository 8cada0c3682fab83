package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
)

var rdbClient *redis.Client

// SetRedisClient wires a Redis client into the package so leaderboard
// updates published on one backend instance reach viewers connected to
// another.
func SetRedisClient(r *redis.Client) {
	rdbClient = r
}

// PublishLeaderboardUpdate announces a newly recorded score to every
// instance's subscribers. Local broadcast to connected sessions happens separately;
// this only carries the leaderboard-relevant fields.
func PublishLeaderboardUpdate(ctx context.Context, playerName string, score int) {
	if rdbClient == nil {
		return
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"type":        "leaderboard_update",
		"player_name": playerName,
		"score":       score,
	})
	if err := rdbClient.Publish(ctx, "leaderboard_events", payload).Err(); err != nil {
		log.Printf("[WS] failed to publish leaderboard update: %v", err)
	}
}

// StartLeaderboardSubscriber subscribes to leaderboard_events and
// broadcasts each update to every session room, so viewers see a newly
// recorded score regardless of which instance recorded it.
func StartLeaderboardSubscriber(ctx context.Context, hub *Hub) {
	if rdbClient == nil {
		log.Println("[WS] Redis client not set; leaderboard subscriber not started")
		return
	}

	pubsub := rdbClient.Subscribe(ctx, "leaderboard_events")
	ch := pubsub.Channel()
	go func() {
		log.Println("[WS] leaderboard_events subscriber started")
		for msg := range ch {
			var payload map[string]interface{}
			if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
				log.Printf("[WS] invalid leaderboard payload: %v", err)
				continue
			}
			hub.mu.RLock()
			sessionIDs := make([]string, 0, len(hub.rooms))
			for sessionID := range hub.rooms {
				sessionIDs = append(sessionIDs, sessionID)
			}
			hub.mu.RUnlock()

			for _, sessionID := range sessionIDs {
				hub.BroadcastToSession(sessionID, payload)
			}
		}
	}()
}
